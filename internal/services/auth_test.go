package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centroespirita/internal/domain"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	roles  map[string][]string // userID -> roleIDs
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), roles: make(map[string][]string)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.roles[userID] = append(f.roles[userID], roleID)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.User, int, error) {
	var out []*domain.User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

type fakeRoleRepo struct {
	byCode map[string]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{byCode: map[string]*domain.Role{
		domain.RoleAdmin:  {ID: "role-admin", Code: domain.RoleAdmin},
		domain.RoleMember: {ID: "role-member", Code: domain.RoleMember},
	}}
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	r, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	return []*domain.Role{f.byCode[domain.RoleMember]}, nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.RefreshSession // keyed by token hash
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.RefreshSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.RefreshSession) error {
	f.nextID++
	s.ID = fmt.Sprintf("sess-%d", f.nextID)
	copied := *s
	f.sessions[s.TokenHash] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error) {
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, id string, replacedByID *string, revokedAt time.Time) error {
	for _, s := range f.sessions {
		if s.ID == id {
			s.RevokedAt = &revokedAt
			s.ReplacedByID = replacedByID
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSessionRepo) RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) error {
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for hash, s := range f.sessions {
		if s.ExpiresAt.Before(cutoff) {
			delete(f.sessions, hash)
			n++
		}
	}
	return n, nil
}

// fakeHasher avoids bcrypt cost in service tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

type recordingEmailService struct {
	sent []*domain.WelcomeEmailData
}

func (r *recordingEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	r.sent = append(r.sent, data)
	return nil
}

func newAuthServiceForTest(userRepo *fakeUserRepo, sessionRepo *fakeSessionRepo, emailSvc domain.EmailService) domain.AuthService {
	return NewAuthService(userRepo, newFakeRoleRepo(), sessionRepo, fakeHasher{}, fakeIssuer{}, time.Hour, 30*24*time.Hour, emailSvc)
}

func TestAuthService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid signup", "maria@example.com", "long-enough-password", nil},
		{"invalid email", "not-an-email", "long-enough-password", domain.ErrInvalidInput},
		{"short password", "maria@example.com", "short", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			emails := &recordingEmailService{}
			svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), emails)

			user, err := svc.SignUp(context.Background(), tt.email, tt.password, "Maria", "Silva")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, "maria@example.com", user.Email)
			assert.Len(t, userRepo.roles[user.ID], 1, "member role is assigned")
			require.Len(t, emails.sent, 1)
			assert.Equal(t, "maria@example.com", emails.sent[0].Email)
		})
	}
}

func TestAuthService_SignUp_duplicate_email(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthServiceForTest(userRepo, newFakeSessionRepo(), nil)

	_, err := svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Maria", "Silva")
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Other", "Person")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := newAuthServiceForTest(userRepo, sessionRepo, nil)

	_, err := svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Maria", "Silva")
	require.NoError(t, err)

	t.Run("correct credentials return a token pair", func(t *testing.T) {
		pair, user, err := svc.Login(context.Background(), "maria@example.com", "long-enough-password")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Len(t, sessionRepo.sessions, 1)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "maria@example.com", "wrong-password")
		assert.Error(t, err)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "long-enough-password")
		assert.Error(t, err)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := newAuthServiceForTest(userRepo, sessionRepo, nil)

	_, err := svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Maria", "Silva")
	require.NoError(t, err)
	pair, _, err := svc.Login(context.Background(), "maria@example.com", "long-enough-password")
	require.NoError(t, err)

	t.Run("rotation issues a new pair and revokes the old session", func(t *testing.T) {
		newPair, err := svc.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

		old, err := sessionRepo.GetByTokenHash(context.Background(), hashRefreshToken(pair.RefreshToken))
		require.NoError(t, err)
		assert.True(t, old.Revoked())
		assert.NotNil(t, old.ReplacedByID)
	})

	t.Run("reusing a rotated token revokes every session", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), pair.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrInvalidSession)

		for _, s := range sessionRepo.sessions {
			assert.True(t, s.Revoked())
		}
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "never-issued")
		assert.ErrorIs(t, err, domain.ErrInvalidSession)
	})
}

func TestAuthService_Refresh_expired(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := NewAuthService(userRepo, newFakeRoleRepo(), sessionRepo, fakeHasher{}, fakeIssuer{}, time.Hour, -time.Minute, nil)

	_, err := svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Maria", "Silva")
	require.NoError(t, err)
	pair, _, err := svc.Login(context.Background(), "maria@example.com", "long-enough-password")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	svc := newAuthServiceForTest(userRepo, sessionRepo, nil)

	_, err := svc.SignUp(context.Background(), "maria@example.com", "long-enough-password", "Maria", "Silva")
	require.NoError(t, err)
	pair, _, err := svc.Login(context.Background(), "maria@example.com", "long-enough-password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
