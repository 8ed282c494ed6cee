package scheduling

import (
	"fmt"
	"time"

	"centroespirita/internal/domain"
)

// Clock supplies the current time. Schedulers take one at construction so
// date-relative rules are testable; nil means time.Now.
type Clock func() time.Time

// Horizon and cap for alternative-date searches.
const (
	suggestionHorizonDays     = 30
	defaultMaxSuggestions     = 5
	nextAvailableHorizonDays  = 365
	nextAvailableFallbackDays = 7
)

// AttendanceScheduler decides whether a proposed attendance occurrence may be
// placed on the calendar. It is stateless and pure: every method is a
// function of its arguments, safe for concurrent use.
type AttendanceScheduler struct {
	now Clock
}

// NewAttendanceScheduler returns an AttendanceScheduler using the given
// clock, or time.Now when clock is nil.
func NewAttendanceScheduler(clock Clock) *AttendanceScheduler {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceScheduler{now: clock}
}

// HasConflict reports whether candidate collides with existing: same calendar
// date and overlapping time ranges (half-open, so touching endpoints do not
// collide). Inactive entries and the candidate itself never conflict.
func (s *AttendanceScheduler) HasConflict(existing, candidate *domain.Attendance) bool {
	if existing == nil || candidate == nil {
		panic("scheduling: nil attendance")
	}
	if !existing.IsActive {
		return false
	}
	if existing.ID == candidate.ID {
		return false
	}
	if !existing.Occurrence.SameDay(candidate.Occurrence) {
		return false
	}
	return candidate.Occurrence.Overlaps(existing.Occurrence)
}

// ValidateBusinessRules checks every type-specific rule for the candidate and
// returns all violations at once. The attendance must carry a time range and
// a known type; anything else is a caller bug and panics.
func (s *AttendanceScheduler) ValidateBusinessRules(candidate *domain.Attendance) (bool, []string) {
	if candidate == nil {
		panic("scheduling: nil attendance")
	}
	if !candidate.Occurrence.HasTimeRange() {
		panic("scheduling: attendance without time range")
	}
	policy := AttendancePolicyFor(candidate.Type)

	var violations []string
	today := s.now()
	date := candidate.Occurrence.Date

	if domain.CompareDates(date, today) < 0 {
		violations = append(violations, "date cannot be in the past")
	}
	if !policy.AllowsWeekday(candidate.Occurrence.Weekday()) {
		violations = append(violations, fmt.Sprintf("%s sessions are not held on %s", candidate.Type, candidate.Occurrence.Weekday()))
	}
	start, end := *candidate.Occurrence.Start, *candidate.Occurrence.End
	if start < policy.WindowStart {
		violations = append(violations, fmt.Sprintf("%s sessions cannot start before %s", candidate.Type, policy.WindowStart))
	}
	if end > policy.WindowEnd {
		violations = append(violations, fmt.Sprintf("%s sessions cannot end after %s", candidate.Type, policy.WindowEnd))
	}
	duration := candidate.Occurrence.Duration()
	if duration < policy.MinDuration || duration > policy.MaxDuration {
		violations = append(violations, fmt.Sprintf("%s sessions must last between %s and %s", candidate.Type, policy.MinDuration, policy.MaxDuration))
	}
	if candidate.MaxCapacity != nil {
		if *candidate.MaxCapacity <= 0 {
			violations = append(violations, "maximum capacity must be greater than zero")
		} else if *candidate.MaxCapacity > domain.MaxAttendanceCapacity {
			violations = append(violations, fmt.Sprintf("maximum capacity cannot exceed %d", domain.MaxAttendanceCapacity))
		}
	}
	return len(violations) == 0, violations
}

// CanSchedule reports whether the candidate passes every business rule and
// collides with none of the existing attendances.
func (s *AttendanceScheduler) CanSchedule(candidate *domain.Attendance, existing []*domain.Attendance) bool {
	if ok, _ := s.ValidateBusinessRules(candidate); !ok {
		return false
	}
	for _, a := range existing {
		if s.HasConflict(a, candidate) {
			return false
		}
	}
	return true
}

// HasConflictWithEvents reports whether any active same-day event blocks the
// candidate: all-day events block the whole date, timed events block on
// overlap.
func (s *AttendanceScheduler) HasConflictWithEvents(candidate *domain.Attendance, events []*domain.Event) bool {
	if candidate == nil {
		panic("scheduling: nil attendance")
	}
	for _, e := range events {
		if e == nil || !e.IsActive {
			continue
		}
		if !e.Occurrence.SameDay(candidate.Occurrence) {
			continue
		}
		if e.Occurrence.IsAllDay() {
			return true
		}
		if candidate.Occurrence.Overlaps(e.Occurrence) {
			return true
		}
	}
	return false
}

// SuggestAlternatives scans forward day by day from the candidate's date,
// skipping weekdays the type does not allow, and collects up to five dates on
// which an otherwise identical attendance could be scheduled. The search
// horizon is thirty days.
func (s *AttendanceScheduler) SuggestAlternatives(candidate *domain.Attendance, existing []*domain.Attendance) []time.Time {
	if candidate == nil {
		panic("scheduling: nil attendance")
	}
	policy := AttendancePolicyFor(candidate.Type)

	suggestions := make([]time.Time, 0, defaultMaxSuggestions)
	for day := 1; day <= suggestionHorizonDays; day++ {
		if len(suggestions) == defaultMaxSuggestions {
			break
		}
		date := candidate.Occurrence.Date.AddDate(0, 0, day)
		if !policy.AllowsWeekday(date.Weekday()) {
			continue
		}
		trial := *candidate
		trial.Occurrence = candidate.Occurrence.WithDate(date)
		if s.CanSchedule(&trial, existing) {
			suggestions = append(suggestions, domain.NormalizeDate(date))
		}
	}
	return suggestions
}

// TotalCapacity sums MaxCapacity over active attendances that define one.
func (s *AttendanceScheduler) TotalCapacity(attendances []*domain.Attendance) int {
	total := 0
	for _, a := range attendances {
		if a == nil || !a.IsActive || a.MaxCapacity == nil {
			continue
		}
		total += *a.MaxCapacity
	}
	return total
}

// StandardTimes returns the house-standard start and end times for the type.
func (s *AttendanceScheduler) StandardTimes(t domain.AttendanceType) (domain.TimeOfDay, domain.TimeOfDay) {
	policy := AttendancePolicyFor(t)
	return policy.DefaultStart, policy.DefaultEnd
}
