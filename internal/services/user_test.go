package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centroespirita/internal/domain"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email string) *domain.User {
	t.Helper()
	user := domain.NewUser(email, "Maria", "Silva", "hash", "salt", time.Now(), time.Now())
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserService_GetByID(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 2*time.Second)

	user := seedUser(t, repo, "maria@example.com")

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 2*time.Second)

	user := seedUser(t, repo, "maria@example.com")

	updated, err := svc.Update(context.Background(), user.ID, "  Ana ", "Souza")
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "Souza", updated.LastName)

	_, err = svc.Update(context.Background(), user.ID, "   ", "Souza")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "missing", "Ana", "Souza")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 2*time.Second)

	seedUser(t, repo, "maria@example.com")
	seedUser(t, repo, "joao@example.com")

	users, total, err := svc.List(context.Background(), "", domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)
}
