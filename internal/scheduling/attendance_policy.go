package scheduling

import (
	"fmt"
	"time"

	"centroespirita/internal/domain"
)

// AttendancePolicy is the static per-type rule set for attendances: which
// weekdays the session may be held, the permitted wall-clock window, the
// duration bounds, and the house-standard default times.
type AttendancePolicy struct {
	Weekdays     []time.Weekday
	WindowStart  domain.TimeOfDay
	WindowEnd    domain.TimeOfDay
	MinDuration  time.Duration
	MaxDuration  time.Duration
	DefaultStart domain.TimeOfDay
	DefaultEnd   domain.TimeOfDay
}

// AllowsWeekday reports whether the policy permits the given weekday.
func (p AttendancePolicy) AllowsWeekday(d time.Weekday) bool {
	for _, w := range p.Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

var attendancePolicies = map[domain.AttendanceType]AttendancePolicy{
	domain.AttendanceKardecist: {
		Weekdays:     []time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
		WindowStart:  domain.NewTimeOfDay(18, 0),
		WindowEnd:    domain.NewTimeOfDay(22, 0),
		MinDuration:  90 * time.Minute,
		MaxDuration:  3 * time.Hour,
		DefaultStart: domain.NewTimeOfDay(19, 0),
		DefaultEnd:   domain.NewTimeOfDay(21, 0),
	},
	domain.AttendanceUmbanda: {
		Weekdays:     []time.Weekday{time.Friday, time.Saturday},
		WindowStart:  domain.NewTimeOfDay(19, 0),
		WindowEnd:    domain.NewTimeOfDay(23, 0),
		MinDuration:  2 * time.Hour,
		MaxDuration:  4 * time.Hour,
		DefaultStart: domain.NewTimeOfDay(20, 0),
		DefaultEnd:   domain.NewTimeOfDay(22, 0),
	},
	domain.AttendanceLecture: {
		Weekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		WindowStart:  domain.NewTimeOfDay(8, 0),
		WindowEnd:    domain.NewTimeOfDay(22, 0),
		MinDuration:  time.Hour,
		MaxDuration:  150 * time.Minute,
		DefaultStart: domain.NewTimeOfDay(19, 30),
		DefaultEnd:   domain.NewTimeOfDay(21, 0),
	},
	domain.AttendanceCourse: {
		Weekdays:     []time.Weekday{time.Saturday, time.Sunday},
		WindowStart:  domain.NewTimeOfDay(8, 0),
		WindowEnd:    domain.NewTimeOfDay(18, 0),
		MinDuration:  2 * time.Hour,
		MaxDuration:  8 * time.Hour,
		DefaultStart: domain.NewTimeOfDay(9, 0),
		DefaultEnd:   domain.NewTimeOfDay(12, 0),
	},
}

// AttendancePolicyFor returns the policy for the given attendance type.
// Panics on an unknown type: that is a caller bug, not a rule violation.
func AttendancePolicyFor(t domain.AttendanceType) AttendancePolicy {
	p, ok := attendancePolicies[t]
	if !ok {
		panic(fmt.Sprintf("scheduling: no policy for attendance type %q", t))
	}
	return p
}
