package controllers

import (
	"log/slog"
	"net/http"

	"centroespirita/internal/adapters/ics"
	"centroespirita/internal/domain"
)

type CalendarController struct {
	Logger      *slog.Logger
	Events      domain.EventService
	Attendances domain.AttendanceService
}

func NewCalendarController(logger *slog.Logger, events domain.EventService, attendances domain.AttendanceService) *CalendarController {
	return &CalendarController{
		Logger:      logger,
		Events:      events,
		Attendances: attendances,
	}
}

// Feed godoc
// @Summary iCalendar feed
// @Description Serves the active events and attendances as an iCalendar (.ics) document for calendar subscriptions.
// @Tags calendar
// @Produce text/calendar
// @Success 200 {string} string "iCalendar document"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar.ics [get]
func (c *CalendarController) Feed(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.List(r.Context(), true)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	attendances, err := c.Attendances.List(r.Context(), true)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="centroespirita.ics"`)
	_, _ = w.Write([]byte(ics.BuildCalendar(events, attendances)))
}
