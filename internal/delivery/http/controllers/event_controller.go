package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"centroespirita/internal/delivery/http/helpers"
	"centroespirita/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string            `json:"title" example:"June festival"`
	Description string            `json:"description,omitempty"`
	Occurrence  OccurrenceRequest `json:"occurrence"`
	Type        string            `json:"type" example:"festival"`
	Location    *string           `json:"location,omitempty"`
	ImageURL    *string           `json:"image_url,omitempty"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	errs := c.Occurrence.Validate()
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if !domain.EventType(c.Type).Valid() {
		errs = append(errs, "type must be one of: festival, generic, commemoration, bazaar, lecture")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Create a one-off event. The slot must pass the type's business rules and must not collide with other events.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	now := time.Now()
	event, err := domain.NewEvent(req.Title, req.Description, occ, domain.EventType(req.Type), req.Location, req.ImageURL, now, now)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if err := c.Service.Create(r.Context(), event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List events
// @Description Returns events, soonest occurrence first. Pass include_inactive=true to include cancelled entries.
// @Tags events
// @Produce json
// @Param include_inactive query bool false "Include cancelled events"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("include_inactive") != "true"
	events, err := c.Service.List(r.Context(), onlyActive)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
type UpdateEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Validate implements Validator.
func (c UpdateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// Update godoc
// @Summary Update event details
// @Description Updates title, description, location, and image. Rescheduling has its own endpoint.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "New details"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateDetails(r.Context(), id, req.Title, req.Description, req.Location, req.ImageURL)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// RescheduleEventRequest is the request body for PUT /events/{eventID}/occurrence.
type RescheduleEventRequest struct {
	Occurrence OccurrenceRequest `json:"occurrence"`
}

// Validate implements Validator.
func (c RescheduleEventRequest) Validate() []string {
	return c.Occurrence.Validate()
}

// Reschedule godoc
// @Summary Move an event to a new occurrence
// @Description The new slot is re-checked against business rules and other events.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RescheduleEventRequest true "New occurrence"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Router /events/{eventID}/occurrence [put]
func (c *EventController) Reschedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RescheduleEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	event, err := c.Service.Reschedule(r.Context(), id, occ)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Deactivate godoc
// @Summary Cancel an event
// @Description Soft-deletes the event. It stops blocking other entries.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Deactivate(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NextAvailableResponse is the data payload for GET /events/next-available.
type NextAvailableResponse struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// NextAvailableSuccessResponse is the success envelope for GET /events/next-available (200).
type NextAvailableSuccessResponse struct {
	Data  NextAvailableResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// NextAvailable godoc
// @Summary Next available date for an event type
// @Description Finds the nearest preferred weekday, within a year, not blocked by all-day or special events.
// @Tags events
// @Produce json
// @Param type query string true "Event type" Enums(festival, generic, commemoration, bazaar, lecture)
// @Success 200 {object} controllers.NextAvailableSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/next-available [get]
func (c *EventController) NextAvailable(w http.ResponseWriter, r *http.Request) {
	typ := domain.EventType(r.URL.Query().Get("type"))
	date, err := c.Service.NextAvailableDate(r.Context(), typ)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NextAvailableResponse{
		Type: string(typ),
		Date: date.Format("2006-01-02"),
	})
}

// Suggestions godoc
// @Summary Suggest alternative dates for an event
// @Description Returns future dates, on the type's preferred weekdays within thirty days, where the proposed event could be scheduled. max caps the result count and defaults to five.
// @Tags events
// @Accept json
// @Produce json
// @Param max query int false "Maximum number of suggestions"
// @Param event body CreateEventRequest true "Proposed event"
// @Success 200 {object} controllers.SuggestionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events/suggestions [post]
func (c *EventController) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	maxSuggestions := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "max must be a non-negative integer")
			return
		}
		maxSuggestions = n
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	now := time.Now()
	event, err := domain.NewEvent(req.Title, req.Description, occ, domain.EventType(req.Type), req.Location, req.ImageURL, now, now)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	dates, err := c.Service.SuggestAlternativeDates(r.Context(), event, maxSuggestions)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SuggestionsResponse{Dates: formatDates(dates)})
}
