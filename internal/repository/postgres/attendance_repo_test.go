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

func attendanceColumns() []string {
	return []string{"id", "occurrence_date", "start_minute", "end_minute", "type", "observations", "requires_registration", "max_capacity", "is_active", "created_at", "updated_at"}
}

func TestAttendanceRepository_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	occ, err := domain.NewTimedOccurrence(date, domain.NewTimeOfDay(19, 0), domain.NewTimeOfDay(21, 0))
	require.NoError(t, err)

	tests := []struct {
		name       string
		attendance *domain.Attendance
		mock       func(mock sqlmock.Sqlmock)
		wantID     string
		wantErr    bool
	}{
		{
			name: "success",
			attendance: &domain.Attendance{
				Occurrence: occ,
				Type:       domain.AttendanceKardecist,
				IsActive:   true,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendances`).
					WithArgs(date, 1140, 1260, domain.AttendanceKardecist, "", false, sql.NullInt64{}, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-uuid-1"))
			},
			wantID: "att-uuid-1",
		},
		{
			name: "db error",
			attendance: &domain.Attendance{
				Occurrence: occ,
				Type:       domain.AttendanceKardecist,
				IsActive:   true,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendances`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendanceRepository(db)
			err = repo.Create(ctx, tt.attendance)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.attendance.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendanceRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, occurrence_date, start_minute, end_minute, type`).
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(attendanceColumns()).
				AddRow("att-1", date, 1140, 1260, "kardecist", "study group", true, 80, true, created, created))

		repo := NewAttendanceRepository(db)
		a, err := repo.GetByID(ctx, "att-1")
		require.NoError(t, err)
		require.Equal(t, domain.AttendanceKardecist, a.Type)
		require.Equal(t, "19:00", a.Occurrence.Start.String())
		require.Equal(t, "21:00", a.Occurrence.End.String())
		require.NotNil(t, a.MaxCapacity)
		require.Equal(t, 80, *a.MaxCapacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, occurrence_date`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewAttendanceRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestAttendanceRepository_List(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, occurrence_date, start_minute, end_minute, type`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(attendanceColumns()).
			AddRow("att-1", date, 1140, 1260, "kardecist", "", false, nil, true, created, created).
			AddRow("att-2", date, 1200, 1320, "umbanda", "", false, 120, true, created, created))

	repo := NewAttendanceRepository(db)
	attendances, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, attendances, 2)
	require.Nil(t, attendances[0].MaxCapacity)
	require.NotNil(t, attendances[1].MaxCapacity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Update(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	occ, err := domain.NewTimedOccurrence(date, domain.NewTimeOfDay(19, 0), domain.NewTimeOfDay(21, 0))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE attendances`).
			WithArgs("att-1", date, 1140, 1260, "", false, sql.NullInt64{}, true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewAttendanceRepository(db)
		err = repo.Update(ctx, &domain.Attendance{ID: "att-1", Occurrence: occ, Type: domain.AttendanceKardecist, IsActive: true})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE attendances`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewAttendanceRepository(db)
		err = repo.Update(ctx, &domain.Attendance{ID: "missing", Occurrence: occ, Type: domain.AttendanceKardecist})
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
