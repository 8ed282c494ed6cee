package controllers

import (
	"fmt"
	"time"

	"centroespirita/internal/domain"
)

// OccurrenceRequest is the shared occurrence payload: a calendar date plus an
// optional time range. Both times must be present or both absent.
type OccurrenceRequest struct {
	Date      string `json:"date" example:"2026-03-07"`
	StartTime string `json:"start_time,omitempty" example:"19:00"`
	EndTime   string `json:"end_time,omitempty" example:"21:00"`
}

// Validate implements Validator.
func (o OccurrenceRequest) Validate() []string {
	var errs []string
	if o.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse("2006-01-02", o.Date); err != nil {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	if (o.StartTime == "") != (o.EndTime == "") {
		errs = append(errs, "start_time and end_time must be provided together")
	}
	if o.StartTime != "" {
		if _, err := domain.ParseTimeOfDay(o.StartTime); err != nil {
			errs = append(errs, "start_time must be in HH:MM format")
		}
	}
	if o.EndTime != "" {
		if _, err := domain.ParseTimeOfDay(o.EndTime); err != nil {
			errs = append(errs, "end_time must be in HH:MM format")
		}
	}
	return errs
}

// ToOccurrence converts the validated request into a domain occurrence.
func (o OccurrenceRequest) ToOccurrence() (domain.OccurrenceDate, error) {
	date, err := time.Parse("2006-01-02", o.Date)
	if err != nil {
		return domain.OccurrenceDate{}, fmt.Errorf("%w: invalid date", domain.ErrInvalidInput)
	}
	if o.StartTime == "" {
		return domain.NewOccurrenceDate(date), nil
	}
	start, err := domain.ParseTimeOfDay(o.StartTime)
	if err != nil {
		return domain.OccurrenceDate{}, fmt.Errorf("%w: invalid start_time", domain.ErrInvalidInput)
	}
	end, err := domain.ParseTimeOfDay(o.EndTime)
	if err != nil {
		return domain.OccurrenceDate{}, fmt.Errorf("%w: invalid end_time", domain.ErrInvalidInput)
	}
	return domain.NewTimedOccurrence(date, start, end)
}
