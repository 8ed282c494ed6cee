package domain

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// EventType identifies the kind of one-off event.
type EventType string

const (
	EventFestival      EventType = "festival"
	EventGeneric       EventType = "generic"
	EventCommemoration EventType = "commemoration"
	EventBazaar        EventType = "bazaar"
	EventLecture       EventType = "lecture"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{
	EventFestival,
	EventGeneric,
	EventCommemoration,
	EventBazaar,
	EventLecture,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventFestival, EventGeneric, EventCommemoration, EventBazaar, EventLecture:
		return true
	}
	return false
}

// Title and description limits for events.
const (
	MaxEventTitleLen       = 200
	MaxEventDescriptionLen = 2000
)

// Event represents a one-off event such as a festival, talk, or bazaar.
// swagger:model Event
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Occurrence  OccurrenceDate `json:"occurrence"`
	Type        EventType      `json:"type"`
	Location    *string        `json:"location,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewEvent returns a validated Event. The time range is optional; an event
// without one is all-day. ID is typically set by the repository on create.
func NewEvent(title, description string, occ OccurrenceDate, typ EventType, location, imageURL *string, createdAt, updatedAt time.Time) (*Event, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, typ)
	}
	if err := validateEventText(title, description); err != nil {
		return nil, err
	}
	return &Event{
		Title:       title,
		Description: description,
		Occurrence:  occ,
		Type:        typ,
		Location:    location,
		ImageURL:    imageURL,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func validateEventText(title, description string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > MaxEventTitleLen {
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrInvalidInput, MaxEventTitleLen)
	}
	if utf8.RuneCountInString(description) > MaxEventDescriptionLen {
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrInvalidInput, MaxEventDescriptionLen)
	}
	return nil
}

// UpdateDetails replaces title, description, location, and image reference.
func (e *Event) UpdateDetails(title, description string, location, imageURL *string, now time.Time) error {
	if err := validateEventText(title, description); err != nil {
		return err
	}
	e.Title = title
	e.Description = description
	e.Location = location
	e.ImageURL = imageURL
	e.UpdatedAt = now
	return nil
}

// Reschedule moves the event to a new occurrence.
func (e *Event) Reschedule(occ OccurrenceDate, now time.Time) {
	e.Occurrence = occ
	e.UpdatedAt = now
}

// Deactivate soft-deletes the event. It stays in storage but no longer takes
// part in conflict checks.
func (e *Event) Deactivate(now time.Time) {
	e.IsActive = false
	e.UpdatedAt = now
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, onlyActive bool) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
}

// EventService defines the business logic for managing events.
type EventService interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, onlyActive bool) ([]*Event, error)
	UpdateDetails(ctx context.Context, id, title, description string, location, imageURL *string) (*Event, error)
	Reschedule(ctx context.Context, id string, occ OccurrenceDate) (*Event, error)
	Deactivate(ctx context.Context, id string) error
	NextAvailableDate(ctx context.Context, typ EventType) (time.Time, error)
	SuggestAlternativeDates(ctx context.Context, e *Event, maxSuggestions int) ([]time.Time, error)
}
