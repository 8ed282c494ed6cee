package postgres

import (
	"context"
	"database/sql"

	"centroespirita/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

// Times are stored as smallint minutes since midnight; the attendance schema
// requires both.
func (r *attendanceRepository) Create(ctx context.Context, a *domain.Attendance) error {
	query := `
		INSERT INTO attendances (occurrence_date, start_minute, end_minute, type, observations, requires_registration, max_capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.Occurrence.Date, int(*a.Occurrence.Start), int(*a.Occurrence.End),
		a.Type, a.Observations, a.RequiresRegistration, nullableInt(a.MaxCapacity),
		a.IsActive, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	query := `
		SELECT id, occurrence_date, start_minute, end_minute, type, observations, requires_registration, max_capacity, is_active, created_at, updated_at
		FROM attendances
		WHERE id = $1
	`
	a, err := scanAttendance(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendanceRepository) List(ctx context.Context, onlyActive bool) ([]*domain.Attendance, error) {
	query := `
		SELECT id, occurrence_date, start_minute, end_minute, type, observations, requires_registration, max_capacity, is_active, created_at, updated_at
		FROM attendances
		WHERE ($1 = false OR is_active = true)
		ORDER BY occurrence_date, start_minute
	`
	rows, err := r.DB.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]*domain.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}

func (r *attendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	query := `
		UPDATE attendances
		SET occurrence_date = $2, start_minute = $3, end_minute = $4, observations = $5, requires_registration = $6, max_capacity = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Occurrence.Date, int(*a.Occurrence.Start), int(*a.Occurrence.End),
		a.Observations, a.RequiresRegistration, nullableInt(a.MaxCapacity),
		a.IsActive, a.UpdatedAt,
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendance(row rowScanner) (*domain.Attendance, error) {
	a := &domain.Attendance{}
	var startMinute, endMinute int
	var capNull sql.NullInt64
	if err := row.Scan(&a.ID, &a.Occurrence.Date, &startMinute, &endMinute, &a.Type, &a.Observations, &a.RequiresRegistration, &capNull, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	start := domain.TimeOfDay(startMinute)
	end := domain.TimeOfDay(endMinute)
	a.Occurrence.Start = &start
	a.Occurrence.End = &end
	if capNull.Valid {
		capacity := int(capNull.Int64)
		a.MaxCapacity = &capacity
	}
	return a, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
