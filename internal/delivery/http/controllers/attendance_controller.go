package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"centroespirita/internal/delivery/http/helpers"
	"centroespirita/internal/domain"
)

// CreateAttendanceRequest is the request body for POST /attendances.
type CreateAttendanceRequest struct {
	Occurrence           OccurrenceRequest `json:"occurrence"`
	Type                 string            `json:"type" example:"kardecist"`
	Observations         string            `json:"observations,omitempty"`
	RequiresRegistration bool              `json:"requires_registration,omitempty"`
	MaxCapacity          *int              `json:"max_capacity,omitempty"`
}

// Validate implements Validator.
func (c CreateAttendanceRequest) Validate() []string {
	errs := c.Occurrence.Validate()
	if !domain.AttendanceType(c.Type).Valid() {
		errs = append(errs, "type must be one of: kardecist, umbanda, lecture, course")
	}
	if c.Occurrence.StartTime == "" {
		errs = append(errs, "attendances require start_time and end_time")
	}
	return errs
}

// CreateAttendanceSuccessResponse is the success response envelope for POST /attendances (201).
type CreateAttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an attendance
// @Description Create a recurring session occurrence. The slot must pass the type's business rules and must not collide with other attendances or with events.
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendance body CreateAttendanceRequest true "Attendance data"
// @Success 201 {object} controllers.CreateAttendanceSuccessResponse "data contains the created attendance"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendances [post]
func (c *AttendanceController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	now := time.Now()
	attendance, err := domain.NewAttendance(occ, domain.AttendanceType(req.Type), req.Observations, req.RequiresRegistration, req.MaxCapacity, now, now)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if err := c.Service.Create(r.Context(), attendance); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendance)
}

// ListAttendancesSuccessResponse is the success response envelope for GET /attendances (200).
type ListAttendancesSuccessResponse struct {
	Data  []*domain.Attendance `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// List godoc
// @Summary List attendances
// @Description Returns attendances ordered by occurrence. Pass include_inactive=true to include deactivated entries; type narrows to one attendance type.
// @Tags attendances
// @Produce json
// @Param include_inactive query bool false "Include deactivated attendances"
// @Param type query string false "Filter by attendance type" Enums(kardecist, umbanda, lecture, course)
// @Success 200 {object} controllers.ListAttendancesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendances [get]
func (c *AttendanceController) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("include_inactive") != "true"
	attendances, err := c.Service.List(r.Context(), onlyActive)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ := domain.AttendanceType(raw)
		if !typ.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "type must be one of: kardecist, umbanda, lecture, course")
			return
		}
		filtered := attendances[:0]
		for _, a := range attendances {
			if a.Type == typ {
				filtered = append(filtered, a)
			}
		}
		attendances = filtered
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendances)
}

// GetByID godoc
// @Summary Get an attendance by ID
// @Tags attendances
// @Produce json
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Success 200 {object} controllers.CreateAttendanceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendances/{attendanceID} [get]
func (c *AttendanceController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("attendanceID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	attendance, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendance)
}

// RescheduleAttendanceRequest is the request body for PUT /attendances/{attendanceID}/occurrence.
type RescheduleAttendanceRequest struct {
	Occurrence OccurrenceRequest `json:"occurrence"`
}

// Validate implements Validator.
func (c RescheduleAttendanceRequest) Validate() []string {
	errs := c.Occurrence.Validate()
	if c.Occurrence.StartTime == "" {
		errs = append(errs, "attendances require start_time and end_time")
	}
	return errs
}

// Reschedule godoc
// @Summary Move an attendance to a new occurrence
// @Description The new slot is re-checked against business rules, other attendances, and events.
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Param body body RescheduleAttendanceRequest true "New occurrence"
// @Success 200 {object} controllers.CreateAttendanceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable"
// @Router /attendances/{attendanceID}/occurrence [put]
func (c *AttendanceController) Reschedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("attendanceID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	var req RescheduleAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	attendance, err := c.Service.Reschedule(r.Context(), id, occ)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendance)
}

// UpdateAttendanceRequest is the request body for PATCH /attendances/{attendanceID}.
// Fields that are nil are left unchanged.
type UpdateAttendanceRequest struct {
	Observations         *string `json:"observations,omitempty"`
	RequiresRegistration *bool   `json:"requires_registration,omitempty"`
	MaxCapacity          *int    `json:"max_capacity,omitempty"`
	ClearMaxCapacity     bool    `json:"clear_max_capacity,omitempty"`
}

// Update godoc
// @Summary Update attendance settings
// @Description Partially updates observations, registration requirement, or capacity. Set clear_max_capacity to remove the capacity limit.
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Param body body UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} controllers.CreateAttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /attendances/{attendanceID} [patch]
func (c *AttendanceController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("attendanceID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	var req UpdateAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	var attendance *domain.Attendance
	var err error
	if req.Observations != nil {
		if attendance, err = c.Service.UpdateObservations(r.Context(), id, *req.Observations); err != nil {
			writeServiceError(c.Logger, w, r, err)
			return
		}
	}
	if req.RequiresRegistration != nil {
		if attendance, err = c.Service.SetRequiresRegistration(r.Context(), id, *req.RequiresRegistration); err != nil {
			writeServiceError(c.Logger, w, r, err)
			return
		}
	}
	if req.MaxCapacity != nil || req.ClearMaxCapacity {
		capacity := req.MaxCapacity
		if req.ClearMaxCapacity {
			capacity = nil
		}
		if attendance, err = c.Service.UpdateCapacity(r.Context(), id, capacity); err != nil {
			writeServiceError(c.Logger, w, r, err)
			return
		}
	}
	if attendance == nil {
		if attendance, err = c.Service.GetByID(r.Context(), id); err != nil {
			writeServiceError(c.Logger, w, r, err)
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendance)
}

// Deactivate godoc
// @Summary Deactivate an attendance
// @Description Soft-deletes the attendance. It stops taking part in conflict checks and capacity totals.
// @Tags attendances
// @Produce json
// @Security BearerAuth
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /attendances/{attendanceID} [delete]
func (c *AttendanceController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("attendanceID")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	if err := c.Service.Deactivate(r.Context(), id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SuggestionsResponse is the data payload for suggestion endpoints.
type SuggestionsResponse struct {
	Dates []string `json:"dates"`
}

// SuggestionsSuccessResponse is the success envelope for suggestion endpoints (200).
type SuggestionsSuccessResponse struct {
	Data  SuggestionsResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// Suggestions godoc
// @Summary Suggest alternative dates for an attendance
// @Description Returns up to five future dates, within thirty days of the requested one, where the proposed attendance could be scheduled.
// @Tags attendances
// @Accept json
// @Produce json
// @Param attendance body CreateAttendanceRequest true "Proposed attendance"
// @Success 200 {object} controllers.SuggestionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /attendances/suggestions [post]
func (c *AttendanceController) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req CreateAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	occ, err := req.Occurrence.ToOccurrence()
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	now := time.Now()
	attendance, err := domain.NewAttendance(occ, domain.AttendanceType(req.Type), req.Observations, req.RequiresRegistration, req.MaxCapacity, now, now)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	dates, err := c.Service.SuggestAlternatives(r.Context(), attendance)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SuggestionsResponse{Dates: formatDates(dates)})
}

// CapacityResponse is the data payload for GET /attendances/capacity.
type CapacityResponse struct {
	TotalCapacity int `json:"total_capacity"`
}

// CapacitySuccessResponse is the success envelope for GET /attendances/capacity (200).
type CapacitySuccessResponse struct {
	Data  CapacityResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Capacity godoc
// @Summary Total capacity of active attendances
// @Description Sums the capacity limits of active attendances that define one.
// @Tags attendances
// @Produce json
// @Success 200 {object} controllers.CapacitySuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendances/capacity [get]
func (c *AttendanceController) Capacity(w http.ResponseWriter, r *http.Request) {
	total, err := c.Service.TotalCapacity(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CapacityResponse{TotalCapacity: total})
}

// StandardTimesResponse is the data payload for GET /attendances/standard-times.
type StandardTimesResponse struct {
	Type      string `json:"type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// StandardTimesSuccessResponse is the success envelope for GET /attendances/standard-times (200).
type StandardTimesSuccessResponse struct {
	Data  StandardTimesResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// StandardTimes godoc
// @Summary House-standard times for an attendance type
// @Tags attendances
// @Produce json
// @Param type query string true "Attendance type" Enums(kardecist, umbanda, lecture, course)
// @Success 200 {object} controllers.StandardTimesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /attendances/standard-times [get]
func (c *AttendanceController) StandardTimes(w http.ResponseWriter, r *http.Request) {
	typ := domain.AttendanceType(r.URL.Query().Get("type"))
	if !typ.Valid() {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "type must be one of: kardecist, umbanda, lecture, course")
		return
	}
	start, end := c.Service.StandardTimes(typ)
	helpers.WriteJSONSuccess(w, http.StatusOK, StandardTimesResponse{
		Type:      string(typ),
		StartTime: start.String(),
		EndTime:   end.String(),
	})
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}
