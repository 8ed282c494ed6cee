// Package ics renders the public calendar feed. The feed carries every active
// event and attendance so members can subscribe from their own calendar apps.
package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"centroespirita/internal/domain"
)

const uidSuffix = "@centroespirita"

// BuildCalendar serializes events and attendances into a single iCalendar
// document. All-day occurrences become all-day VEVENTs; timed ones carry
// their exact start and end.
func BuildCalendar(events []*domain.Event, attendances []*domain.Attendance) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		if e == nil || !e.IsActive {
			continue
		}
		ve := cal.AddEvent("event-" + e.ID + uidSuffix)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != nil {
			ve.SetLocation(*e.Location)
		}
		setOccurrence(ve, e.Occurrence)
	}

	for _, a := range attendances {
		if a == nil || !a.IsActive {
			continue
		}
		ve := cal.AddEvent("attendance-" + a.ID + uidSuffix)
		ve.SetSummary(attendanceSummary(a.Type))
		if a.Observations != "" {
			ve.SetDescription(a.Observations)
		}
		setOccurrence(ve, a.Occurrence)
	}

	return cal.Serialize()
}

func setOccurrence(ve *ical.VEvent, occ domain.OccurrenceDate) {
	if occ.IsAllDay() {
		ve.SetAllDayStartAt(occ.StartAt())
		ve.SetAllDayEndAt(occ.EndAt())
		return
	}
	ve.SetStartAt(occ.StartAt())
	ve.SetEndAt(occ.EndAt())
}

func attendanceSummary(t domain.AttendanceType) string {
	switch t {
	case domain.AttendanceKardecist:
		return "Kardecist session"
	case domain.AttendanceUmbanda:
		return "Umbanda session"
	case domain.AttendanceLecture:
		return "Lecture"
	case domain.AttendanceCourse:
		return "Course"
	}
	return fmt.Sprintf("Attendance (%s)", t)
}
