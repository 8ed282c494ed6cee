package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"centroespirita/internal/domain"
	"centroespirita/internal/scheduling"
)

type attendanceService struct {
	attendanceRepo domain.AttendanceRepository
	eventRepo      domain.EventRepository
	scheduler      *scheduling.AttendanceScheduler
	contextTimeout time.Duration
}

// NewAttendanceService creates an AttendanceService backed by the given
// repositories and scheduler.
func NewAttendanceService(attendanceRepo domain.AttendanceRepository, eventRepo domain.EventRepository, scheduler *scheduling.AttendanceScheduler, timeout time.Duration) domain.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		scheduler:      scheduler,
		contextTimeout: timeout,
	}
}

func (s *attendanceService) Create(ctx context.Context, a *domain.Attendance) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkPlacement(ctx, a); err != nil {
		return err
	}

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.attendanceRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (s *attendanceService) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return a, nil
}

func (s *attendanceService) List(ctx context.Context, onlyActive bool) ([]*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendances, err := s.attendanceRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	if attendances == nil {
		attendances = []*domain.Attendance{}
	}
	return attendances, nil
}

func (s *attendanceService) Reschedule(ctx context.Context, id string, occ domain.OccurrenceDate) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if err := a.Reschedule(occ, time.Now()); err != nil {
		return nil, err
	}
	if err := s.checkPlacement(ctx, a); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return a, nil
}

func (s *attendanceService) UpdateCapacity(ctx context.Context, id string, maxCapacity *int) (*domain.Attendance, error) {
	return s.mutate(ctx, id, func(a *domain.Attendance, now time.Time) error {
		return a.SetCapacity(maxCapacity, now)
	})
}

func (s *attendanceService) SetRequiresRegistration(ctx context.Context, id string, v bool) (*domain.Attendance, error) {
	return s.mutate(ctx, id, func(a *domain.Attendance, now time.Time) error {
		a.SetRequiresRegistration(v, now)
		return nil
	})
}

func (s *attendanceService) UpdateObservations(ctx context.Context, id string, observations string) (*domain.Attendance, error) {
	return s.mutate(ctx, id, func(a *domain.Attendance, now time.Time) error {
		a.UpdateObservations(observations, now)
		return nil
	})
}

func (s *attendanceService) Deactivate(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, func(a *domain.Attendance, now time.Time) error {
		a.Deactivate(now)
		return nil
	})
	return err
}

func (s *attendanceService) SuggestAlternatives(ctx context.Context, a *domain.Attendance) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.attendanceRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	return s.scheduler.SuggestAlternatives(a, existing), nil
}

func (s *attendanceService) TotalCapacity(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendances, err := s.attendanceRepo.List(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("list attendances: %w", err)
	}
	return s.scheduler.TotalCapacity(attendances), nil
}

func (s *attendanceService) StandardTimes(typ domain.AttendanceType) (domain.TimeOfDay, domain.TimeOfDay) {
	return s.scheduler.StandardTimes(typ)
}

// checkPlacement runs the business rules and both conflict checks for a
// proposed occurrence. Attendances must clear other attendances and the
// event calendar.
func (s *attendanceService) checkPlacement(ctx context.Context, a *domain.Attendance) error {
	if ok, violations := s.scheduler.ValidateBusinessRules(a); !ok {
		return &domain.RuleViolationError{Violations: violations}
	}

	existing, err := s.attendanceRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list attendances: %w", err)
	}
	for _, other := range existing {
		if s.scheduler.HasConflict(other, a) {
			return fmt.Errorf("%w: overlaps attendance %s", domain.ErrScheduleConflict, other.ID)
		}
	}

	events, err := s.eventRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	if s.scheduler.HasConflictWithEvents(a, events) {
		return fmt.Errorf("%w: overlaps an event on the same date", domain.ErrScheduleConflict)
	}
	return nil
}

func (s *attendanceService) mutate(ctx context.Context, id string, fn func(*domain.Attendance, time.Time) error) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if err := fn(a, time.Now()); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return a, nil
}
