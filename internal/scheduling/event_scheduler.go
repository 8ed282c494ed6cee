package scheduling

import (
	"fmt"
	"strings"
	"time"

	"centroespirita/internal/domain"
)

// Sunday events must not start before this time, so they do not collide with
// the morning study programme.
var sundayEarliestStart = domain.NewTimeOfDay(14, 0)

const minFestivalDuration = 2 * time.Hour

// Title keywords that mark an event as special regardless of its type.
var specialEventKeywords = []string{"party", "celebration", "anniversary"}

// EventScheduler decides whether a proposed event may be placed on the
// calendar. Like AttendanceScheduler it is stateless and safe for concurrent
// use.
type EventScheduler struct {
	now Clock
}

// NewEventScheduler returns an EventScheduler using the given clock, or
// time.Now when clock is nil.
func NewEventScheduler(clock Clock) *EventScheduler {
	if clock == nil {
		clock = time.Now
	}
	return &EventScheduler{now: clock}
}

// HasTimeConflict reports whether candidate collides with existing. All-day
// events on a shared date always conflict; timed events conflict on range
// overlap. Inactive entries and the candidate itself never conflict.
func (s *EventScheduler) HasTimeConflict(existing, candidate *domain.Event) bool {
	if existing == nil || candidate == nil {
		panic("scheduling: nil event")
	}
	if !existing.IsActive || !candidate.IsActive {
		return false
	}
	if existing.ID == candidate.ID {
		return false
	}
	if !existing.Occurrence.SameDay(candidate.Occurrence) {
		return false
	}
	if existing.Occurrence.IsAllDay() || candidate.Occurrence.IsAllDay() {
		return true
	}
	if existing.Occurrence.HasTimeRange() && candidate.Occurrence.HasTimeRange() {
		return candidate.Occurrence.Overlaps(existing.Occurrence)
	}
	// Unreachable given the checks above, but kept so the mixed case stays
	// an explicit non-conflict.
	return false
}

// ValidateBusinessRules checks every calendar rule for the candidate and
// returns all violations at once. The event must carry a known type; anything
// else is a caller bug and panics.
func (s *EventScheduler) ValidateBusinessRules(candidate *domain.Event) (bool, []string) {
	if candidate == nil {
		panic("scheduling: nil event")
	}
	if !candidate.Type.Valid() {
		panic(fmt.Sprintf("scheduling: unknown event type %q", candidate.Type))
	}

	var violations []string
	today := s.now()
	date := candidate.Occurrence.Date

	if domain.CompareDates(date, today) <= 0 {
		violations = append(violations, "event date must be in the future")
	}
	if !s.IsSpecialEvent(candidate) && domain.CompareDates(date, today.AddDate(0, 0, 1)) < 0 {
		violations = append(violations, "events need at least one day of notice")
	}
	if candidate.Type == domain.EventFestival && candidate.Occurrence.HasTimeRange() && candidate.Occurrence.Duration() < minFestivalDuration {
		violations = append(violations, fmt.Sprintf("festivals must last at least %s", minFestivalDuration))
	}
	if candidate.Type == domain.EventLecture && !candidate.Occurrence.HasTimeRange() {
		violations = append(violations, "lectures must define a start and end time")
	}
	if candidate.Occurrence.Weekday() == time.Sunday && candidate.Occurrence.HasTimeRange() && *candidate.Occurrence.Start < sundayEarliestStart {
		violations = append(violations, fmt.Sprintf("Sunday events cannot start before %s", sundayEarliestStart))
	}
	return len(violations) == 0, violations
}

// CanScheduleEvent reports whether the candidate passes every business rule
// and collides with none of the existing events.
func (s *EventScheduler) CanScheduleEvent(candidate *domain.Event, existing []*domain.Event) bool {
	if ok, _ := s.ValidateBusinessRules(candidate); !ok {
		return false
	}
	for _, e := range existing {
		if e == nil {
			continue
		}
		if s.HasTimeConflict(e, candidate) {
			return false
		}
	}
	return true
}

// NextAvailableDate scans up to a year ahead, starting tomorrow, for the
// first date that matches the type's preferred weekdays and is not blocked by
// an all-day or special event. When the whole year is blocked it falls back
// to one week from today.
func (s *EventScheduler) NextAvailableDate(typ domain.EventType, existing []*domain.Event) time.Time {
	policy := EventPolicyFor(typ)
	today := domain.NormalizeDate(s.now())

	for day := 1; day <= nextAvailableHorizonDays; day++ {
		date := today.AddDate(0, 0, day)
		if !policy.PrefersWeekday(date.Weekday()) {
			continue
		}
		if !s.dateIsBlocked(date, existing) {
			return date
		}
	}
	return today.AddDate(0, 0, nextAvailableFallbackDays)
}

// dateIsBlocked reports whether an active all-day or special event already
// claims the date.
func (s *EventScheduler) dateIsBlocked(date time.Time, existing []*domain.Event) bool {
	day := domain.NewOccurrenceDate(date)
	for _, e := range existing {
		if e == nil || !e.IsActive {
			continue
		}
		if !e.Occurrence.SameDay(day) {
			continue
		}
		if e.Occurrence.IsAllDay() || s.IsSpecialEvent(e) {
			return true
		}
	}
	return false
}

// SuggestAlternativeDates scans thirty days forward from the candidate's date
// and collects dates on a preferred weekday where an otherwise identical
// event could be scheduled. maxSuggestions values of zero or less fall back
// to five.
func (s *EventScheduler) SuggestAlternativeDates(candidate *domain.Event, existing []*domain.Event, maxSuggestions int) []time.Time {
	if candidate == nil {
		panic("scheduling: nil event")
	}
	if maxSuggestions <= 0 {
		maxSuggestions = defaultMaxSuggestions
	}
	policy := EventPolicyFor(candidate.Type)

	suggestions := make([]time.Time, 0, maxSuggestions)
	for day := 1; day <= suggestionHorizonDays; day++ {
		if len(suggestions) == maxSuggestions {
			break
		}
		date := candidate.Occurrence.Date.AddDate(0, 0, day)
		if !policy.PrefersWeekday(date.Weekday()) {
			continue
		}
		trial := *candidate
		trial.Occurrence = candidate.Occurrence.WithDate(date)
		if s.CanScheduleEvent(&trial, existing) {
			suggestions = append(suggestions, domain.NormalizeDate(date))
		}
	}
	return suggestions
}

// IsSpecialEvent reports whether the event is a festival or commemoration, or
// carries a celebratory keyword in its title.
func (s *EventScheduler) IsSpecialEvent(e *domain.Event) bool {
	if e == nil {
		panic("scheduling: nil event")
	}
	if e.Type == domain.EventFestival || e.Type == domain.EventCommemoration {
		return true
	}
	title := strings.ToLower(e.Title)
	for _, kw := range specialEventKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// EstimatedDuration returns the typical duration for the event's type.
func (s *EventScheduler) EstimatedDuration(e *domain.Event) time.Duration {
	if e == nil {
		panic("scheduling: nil event")
	}
	return EventPolicyFor(e.Type).EstimatedDuration
}
