package postgres

import (
	"context"
	"database/sql"

	"centroespirita/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// Event times are optional: both minute columns NULL means all-day.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, occurrence_date, start_minute, end_minute, type, location, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Occurrence.Date,
		nullableMinute(e.Occurrence.Start), nullableMinute(e.Occurrence.End),
		e.Type, nullableString(e.Location), nullableString(e.ImageURL),
		e.IsActive, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, occurrence_date, start_minute, end_minute, type, location, image_url, is_active, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, occurrence_date, start_minute, end_minute, type, location, image_url, is_active, created_at, updated_at
		FROM events
		WHERE ($1 = false OR is_active = true)
		ORDER BY occurrence_date, start_minute NULLS FIRST
	`
	rows, err := r.DB.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, occurrence_date = $4, start_minute = $5, end_minute = $6, location = $7, image_url = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Occurrence.Date,
		nullableMinute(e.Occurrence.Start), nullableMinute(e.Occurrence.End),
		nullableString(e.Location), nullableString(e.ImageURL),
		e.IsActive, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var startNull, endNull sql.NullInt64
	var locationNull, imageNull sql.NullString
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Occurrence.Date, &startNull, &endNull, &e.Type, &locationNull, &imageNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if startNull.Valid {
		start := domain.TimeOfDay(startNull.Int64)
		e.Occurrence.Start = &start
	}
	if endNull.Valid {
		end := domain.TimeOfDay(endNull.Int64)
		e.Occurrence.End = &end
	}
	if locationNull.Valid {
		e.Location = &locationNull.String
	}
	if imageNull.Valid {
		e.ImageURL = &imageNull.String
	}
	return e, nil
}

func nullableMinute(t *domain.TimeOfDay) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*t), Valid: true}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
