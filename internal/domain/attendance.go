package domain

import (
	"context"
	"fmt"
	"time"
)

// AttendanceType identifies the liturgical purpose of a recurring session.
type AttendanceType string

const (
	AttendanceKardecist AttendanceType = "kardecist"
	AttendanceUmbanda   AttendanceType = "umbanda"
	AttendanceLecture   AttendanceType = "lecture"
	AttendanceCourse    AttendanceType = "course"
)

// AttendanceTypes lists every valid attendance type.
var AttendanceTypes = []AttendanceType{
	AttendanceKardecist,
	AttendanceUmbanda,
	AttendanceLecture,
	AttendanceCourse,
}

// Valid reports whether t is a known attendance type.
func (t AttendanceType) Valid() bool {
	switch t {
	case AttendanceKardecist, AttendanceUmbanda, AttendanceLecture, AttendanceCourse:
		return true
	}
	return false
}

// MaxAttendanceCapacity is the hard upper bound for an attendance room.
const MaxAttendanceCapacity = 200

// Attendance represents a recurring spiritual session occurrence.
// swagger:model Attendance
type Attendance struct {
	ID                   string         `json:"id"`
	Occurrence           OccurrenceDate `json:"occurrence"`
	Type                 AttendanceType `json:"type"`
	Observations         string         `json:"observations"`
	RequiresRegistration bool           `json:"requires_registration"`
	MaxCapacity          *int           `json:"max_capacity,omitempty"`
	IsActive             bool           `json:"is_active"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// NewAttendance returns a validated Attendance. The time range is mandatory;
// capacity, when present, must be between 1 and MaxAttendanceCapacity.
// ID is typically set by the repository on create.
func NewAttendance(occ OccurrenceDate, typ AttendanceType, observations string, requiresRegistration bool, maxCapacity *int, createdAt, updatedAt time.Time) (*Attendance, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown attendance type %q", ErrInvalidInput, typ)
	}
	if !occ.HasTimeRange() {
		return nil, fmt.Errorf("%w: attendance requires a time range", ErrInvalidInput)
	}
	if err := validateCapacity(maxCapacity); err != nil {
		return nil, err
	}
	return &Attendance{
		Occurrence:           occ,
		Type:                 typ,
		Observations:         observations,
		RequiresRegistration: requiresRegistration,
		MaxCapacity:          maxCapacity,
		IsActive:             true,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}, nil
}

func validateCapacity(maxCapacity *int) error {
	if maxCapacity == nil {
		return nil
	}
	if *maxCapacity <= 0 {
		return fmt.Errorf("%w: maximum capacity must be greater than zero", ErrInvalidInput)
	}
	if *maxCapacity > MaxAttendanceCapacity {
		return fmt.Errorf("%w: maximum capacity cannot exceed %d", ErrInvalidInput, MaxAttendanceCapacity)
	}
	return nil
}

// Reschedule moves the attendance to a new occurrence. The time range stays
// mandatory.
func (a *Attendance) Reschedule(occ OccurrenceDate, now time.Time) error {
	if !occ.HasTimeRange() {
		return fmt.Errorf("%w: attendance requires a time range", ErrInvalidInput)
	}
	a.Occurrence = occ
	a.UpdatedAt = now
	return nil
}

// SetCapacity updates the capacity limit. Nil removes the limit.
func (a *Attendance) SetCapacity(maxCapacity *int, now time.Time) error {
	if err := validateCapacity(maxCapacity); err != nil {
		return err
	}
	a.MaxCapacity = maxCapacity
	a.UpdatedAt = now
	return nil
}

// SetRequiresRegistration toggles the registration requirement.
func (a *Attendance) SetRequiresRegistration(v bool, now time.Time) {
	a.RequiresRegistration = v
	a.UpdatedAt = now
}

// UpdateObservations replaces the free-text notes.
func (a *Attendance) UpdateObservations(observations string, now time.Time) {
	a.Observations = observations
	a.UpdatedAt = now
}

// Deactivate soft-deletes the attendance. It stays in storage but no longer
// takes part in conflict checks.
func (a *Attendance) Deactivate(now time.Time) {
	a.IsActive = false
	a.UpdatedAt = now
}

// AttendanceRepository defines the interface for attendance storage.
type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	List(ctx context.Context, onlyActive bool) ([]*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

// AttendanceService defines the business logic for managing attendances.
type AttendanceService interface {
	Create(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	List(ctx context.Context, onlyActive bool) ([]*Attendance, error)
	Reschedule(ctx context.Context, id string, occ OccurrenceDate) (*Attendance, error)
	UpdateCapacity(ctx context.Context, id string, maxCapacity *int) (*Attendance, error)
	SetRequiresRegistration(ctx context.Context, id string, v bool) (*Attendance, error)
	UpdateObservations(ctx context.Context, id string, observations string) (*Attendance, error)
	Deactivate(ctx context.Context, id string) error
	SuggestAlternatives(ctx context.Context, a *Attendance) ([]time.Time, error)
	TotalCapacity(ctx context.Context) (int, error)
	StandardTimes(typ AttendanceType) (TimeOfDay, TimeOfDay)
}
