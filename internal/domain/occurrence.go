package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// It serializes as "HH:MM".
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return NewTimeOfDay(hour, minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Sub returns the duration between t and an earlier time u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(u)) * time.Minute
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NormalizeDate strips the time-of-day portion, keeping the calendar date.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CompareDates orders two calendar dates by their year, month, and day
// components, ignoring time-of-day and Location. Instant comparison is wrong
// here: a UTC-parsed date and a local clock disagree near midnight. Returns
// -1 when a is an earlier date than b, 0 when they are the same date, 1 when
// a is later.
func CompareDates(a, b time.Time) int {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	switch {
	case y1 != y2:
		return sign(y1 - y2)
	case m1 != m2:
		return sign(int(m1) - int(m2))
	default:
		return sign(d1 - d2)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// OccurrenceDate is a calendar date with an optional start/end time-of-day
// pair. Either both times are present or neither is; an occurrence without
// times is all-day.
type OccurrenceDate struct {
	Date  time.Time  `json:"date"`
	Start *TimeOfDay `json:"start_time,omitempty"`
	End   *TimeOfDay `json:"end_time,omitempty"`
}

// NewOccurrenceDate returns an all-day occurrence on the given date.
func NewOccurrenceDate(date time.Time) OccurrenceDate {
	return OccurrenceDate{Date: NormalizeDate(date)}
}

// NewTimedOccurrence returns an occurrence with a time range. The range must
// be well formed: start strictly before end.
func NewTimedOccurrence(date time.Time, start, end TimeOfDay) (OccurrenceDate, error) {
	if start >= end {
		return OccurrenceDate{}, fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, start, end)
	}
	return OccurrenceDate{Date: NormalizeDate(date), Start: &start, End: &end}, nil
}

// HasTimeRange reports whether both start and end times are set.
func (o OccurrenceDate) HasTimeRange() bool {
	return o.Start != nil && o.End != nil
}

// IsAllDay reports whether the occurrence has no time range.
func (o OccurrenceDate) IsAllDay() bool {
	return !o.HasTimeRange()
}

// SameDay reports whether both occurrences fall on the same calendar date.
func (o OccurrenceDate) SameDay(p OccurrenceDate) bool {
	y1, m1, d1 := o.Date.Date()
	y2, m2, d2 := p.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether the two time ranges intersect, using half-open
// intervals: touching endpoints do not overlap. Returns false when either
// side has no time range.
func (o OccurrenceDate) Overlaps(p OccurrenceDate) bool {
	if !o.HasTimeRange() || !p.HasTimeRange() {
		return false
	}
	return *o.Start < *p.End && *o.End > *p.Start
}

// Weekday returns the weekday of the calendar date.
func (o OccurrenceDate) Weekday() time.Weekday {
	return o.Date.Weekday()
}

// Duration returns the length of the time range, or zero for all-day.
func (o OccurrenceDate) Duration() time.Duration {
	if !o.HasTimeRange() {
		return 0
	}
	return o.End.Sub(*o.Start)
}

// WithDate returns a copy of the occurrence moved to another calendar date,
// keeping the time range.
func (o OccurrenceDate) WithDate(date time.Time) OccurrenceDate {
	moved := OccurrenceDate{Date: NormalizeDate(date)}
	if o.Start != nil {
		s := *o.Start
		moved.Start = &s
	}
	if o.End != nil {
		e := *o.End
		moved.End = &e
	}
	return moved
}

// StartAt returns the occurrence start as an absolute time. All-day
// occurrences start at midnight.
func (o OccurrenceDate) StartAt() time.Time {
	if o.Start == nil {
		return o.Date
	}
	return o.Date.Add(time.Duration(*o.Start) * time.Minute)
}

// EndAt returns the occurrence end as an absolute time. All-day occurrences
// end at the next midnight.
func (o OccurrenceDate) EndAt() time.Time {
	if o.End == nil {
		return o.Date.AddDate(0, 0, 1)
	}
	return o.Date.Add(time.Duration(*o.End) * time.Minute)
}
