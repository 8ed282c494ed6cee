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

func sessionColumns() []string {
	return []string{"id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at", "replaced_by_id"}
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	session := domain.NewRefreshSession("user-1", "hash-1", now.Add(30*24*time.Hour), now)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO refresh_sessions`).
		WithArgs("user-1", "hash-1", session.ExpiresAt, session.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sess-uuid-1"))

	repo := NewSessionRepository(db)
	require.NoError(t, repo.Create(ctx, session))
	require.Equal(t, "sess-uuid-1", session.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("live session", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, user_id, token_hash`).
			WithArgs("hash-1").
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow("sess-1", "user-1", "hash-1", now.Add(time.Hour), now, nil, nil))

		repo := NewSessionRepository(db)
		s, err := repo.GetByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, "user-1", s.UserID)
		require.False(t, s.Revoked())
		require.Nil(t, s.ReplacedByID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revoked session keeps chain", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, user_id, token_hash`).
			WithArgs("hash-1").
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow("sess-1", "user-1", "hash-1", now.Add(time.Hour), now, now, "sess-2"))

		repo := NewSessionRepository(db)
		s, err := repo.GetByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		require.True(t, s.Revoked())
		require.NotNil(t, s.ReplacedByID)
		require.Equal(t, "sess-2", *s.ReplacedByID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, user_id, token_hash`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSessionRepository(db)
		_, err = repo.GetByTokenHash(ctx, "missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestSessionRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	replacedBy := "sess-2"

	t.Run("success with replacement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE refresh_sessions`).
			WithArgs("sess-1", now, sql.NullString{String: "sess-2", Valid: true}).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.Revoke(ctx, "sess-1", &replacedBy, now))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already revoked returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE refresh_sessions`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		err = repo.Revoke(ctx, "sess-1", nil, now)
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestSessionRepository_DeleteExpiredBefore(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM refresh_sessions`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewSessionRepository(db)
	deleted, err := repo.DeleteExpiredBefore(ctx, cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
