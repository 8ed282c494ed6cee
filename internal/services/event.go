package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"centroespirita/internal/domain"
	"centroespirita/internal/scheduling"
)

type eventService struct {
	eventRepo      domain.EventRepository
	scheduler      *scheduling.EventScheduler
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository and
// scheduler. Events are checked against other events only; attendances do not
// block them.
func NewEventService(eventRepo domain.EventRepository, scheduler *scheduling.EventScheduler, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		scheduler:      scheduler,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkPlacement(ctx, e); err != nil {
		return err
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, e); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context, onlyActive bool) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateDetails(ctx context.Context, id, title, description string, location, imageURL *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := e.UpdateDetails(title, description, location, imageURL, time.Now()); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (s *eventService) Reschedule(ctx context.Context, id string, occ domain.OccurrenceDate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	e.Reschedule(occ, time.Now())
	if err := s.checkPlacement(ctx, e); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (s *eventService) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	e.Deactivate(time.Now())
	if err := s.eventRepo.Update(ctx, e); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) NextAvailableDate(ctx context.Context, typ domain.EventType) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !typ.Valid() {
		return time.Time{}, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, typ)
	}
	existing, err := s.eventRepo.List(ctx, true)
	if err != nil {
		return time.Time{}, fmt.Errorf("list events: %w", err)
	}
	return s.scheduler.NextAvailableDate(typ, existing), nil
}

func (s *eventService) SuggestAlternativeDates(ctx context.Context, e *domain.Event, maxSuggestions int) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.scheduler.SuggestAlternativeDates(e, existing, maxSuggestions), nil
}

func (s *eventService) checkPlacement(ctx context.Context, e *domain.Event) error {
	if ok, violations := s.scheduler.ValidateBusinessRules(e); !ok {
		return &domain.RuleViolationError{Violations: violations}
	}

	existing, err := s.eventRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	for _, other := range existing {
		if other == nil {
			continue
		}
		if s.scheduler.HasTimeConflict(other, e) {
			return fmt.Errorf("%w: overlaps event %s", domain.ErrScheduleConflict, other.ID)
		}
	}
	return nil
}
