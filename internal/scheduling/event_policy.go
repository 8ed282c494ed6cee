package scheduling

import (
	"fmt"
	"time"

	"centroespirita/internal/domain"
)

// EventPolicy captures the scheduling preferences for one event type:
// which weekdays the house prefers for it and how long it usually runs.
type EventPolicy struct {
	PreferredWeekdays []time.Weekday
	EstimatedDuration time.Duration
}

// PrefersWeekday reports whether d is one of the policy's preferred weekdays.
func (p EventPolicy) PrefersWeekday(d time.Weekday) bool {
	for _, w := range p.PreferredWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

var eventPolicies = map[domain.EventType]EventPolicy{
	domain.EventFestival: {
		PreferredWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		EstimatedDuration: 8 * time.Hour,
	},
	domain.EventGeneric: {
		PreferredWeekdays: []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		EstimatedDuration: 4 * time.Hour,
	},
	domain.EventCommemoration: {
		PreferredWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		EstimatedDuration: 3 * time.Hour,
	},
	domain.EventBazaar: {
		PreferredWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		EstimatedDuration: 6 * time.Hour,
	},
	domain.EventLecture: {
		PreferredWeekdays: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		EstimatedDuration: 2 * time.Hour,
	},
}

// EventPolicyFor returns the policy for the given event type. Unknown types
// are a caller bug and panic.
func EventPolicyFor(t domain.EventType) EventPolicy {
	policy, ok := eventPolicies[t]
	if !ok {
		panic(fmt.Sprintf("scheduling: unknown event type %q", t))
	}
	return policy
}
