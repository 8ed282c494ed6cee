package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"centroespirita/internal/domain"
)

func eventColumns() []string {
	return []string{"id", "title", "description", "occurrence_date", "start_minute", "end_minute", "type", "location", "image_url", "is_active", "created_at", "updated_at"}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("all-day event stores null minutes", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		event := &domain.Event{
			Title:      "June festival",
			Occurrence: domain.NewOccurrenceDate(date),
			Type:       domain.EventFestival,
			IsActive:   true,
		}
		mock.ExpectQuery(`INSERT INTO events`).
			WithArgs("June festival", "", date, sql.NullInt64{}, sql.NullInt64{}, domain.EventFestival, sql.NullString{}, sql.NullString{}, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Create(ctx, event))
		require.Equal(t, "ev-uuid-1", event.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("timed event stores minutes", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		occ, err := domain.NewTimedOccurrence(date, domain.NewTimeOfDay(15, 0), domain.NewTimeOfDay(18, 0))
		require.NoError(t, err)
		location := "main hall"
		event := &domain.Event{
			Title:      "Spring bazaar",
			Occurrence: occ,
			Type:       domain.EventBazaar,
			Location:   &location,
			IsActive:   true,
		}
		mock.ExpectQuery(`INSERT INTO events`).
			WithArgs("Spring bazaar", "", date,
				sql.NullInt64{Int64: 900, Valid: true}, sql.NullInt64{Int64: 1080, Valid: true},
				domain.EventBazaar, sql.NullString{String: "main hall", Valid: true}, sql.NullString{},
				true, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-2"))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Create(ctx, event))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("all-day row maps to nil times", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, occurrence_date`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventColumns()).
				AddRow("ev-1", "June festival", "annual gathering", date, nil, nil, "festival", "main hall", nil, true, created, created))

		repo := NewEventRepository(db)
		e, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.True(t, e.Occurrence.IsAllDay())
		require.Equal(t, domain.EventFestival, e.Type)
		require.NotNil(t, e.Location)
		require.Equal(t, "main hall", *e.Location)
		require.Nil(t, e.ImageURL)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, description, occurrence_date`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(eventColumns()).
			AddRow("ev-1", "June festival", "", date, nil, nil, "festival", nil, nil, true, created, created).
			AddRow("ev-2", "Open lecture", "", date, 1170, 1290, "lecture", nil, nil, true, created, created))

	repo := NewEventRepository(db)
	events, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.True(t, events[0].Occurrence.IsAllDay())
	require.Equal(t, "19:30", events[1].Occurrence.Start.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("missing row returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.Update(ctx, &domain.Event{ID: "missing", Title: "x", Occurrence: domain.NewOccurrenceDate(date), Type: domain.EventGeneric})
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
