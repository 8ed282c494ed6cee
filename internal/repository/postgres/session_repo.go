package postgres

import (
	"context"
	"database/sql"
	"time"

	"centroespirita/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.RefreshSession) error {
	query := `
		INSERT INTO refresh_sessions (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.UserID, s.TokenHash, s.ExpiresAt, s.CreatedAt).Scan(&s.ID)
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at, revoked_at, replaced_by_id
		FROM refresh_sessions
		WHERE token_hash = $1
	`
	s := &domain.RefreshSession{}
	var revokedNull sql.NullTime
	var replacedNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, tokenHash).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt, &revokedNull, &replacedNull)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if revokedNull.Valid {
		s.RevokedAt = &revokedNull.Time
	}
	if replacedNull.Valid {
		s.ReplacedByID = &replacedNull.String
	}
	return s, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, id string, replacedByID *string, revokedAt time.Time) error {
	query := `
		UPDATE refresh_sessions
		SET revoked_at = $2, replaced_by_id = $3
		WHERE id = $1 AND revoked_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id, revokedAt, nullableString(replacedByID))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) error {
	query := `
		UPDATE refresh_sessions
		SET revoked_at = $2
		WHERE user_id = $1 AND revoked_at IS NULL
	`
	_, err := r.DB.ExecContext(ctx, query, userID, revokedAt)
	return err
}

func (r *sessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM refresh_sessions WHERE expires_at < $1`
	result, err := r.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
