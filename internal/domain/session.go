package domain

import (
	"context"
	"time"
)

// RefreshSession is a stored refresh token. The token value itself is never
// persisted, only its hash. Rotation links each consumed session to its
// replacement so revocations leave an audit trail.
type RefreshSession struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	TokenHash    string     `json:"-"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	ReplacedByID *string    `json:"replaced_by_id,omitempty"`
}

// NewRefreshSession returns a new RefreshSession. ID is typically set by the repository on create.
func NewRefreshSession(userID, tokenHash string, expiresAt, createdAt time.Time) *RefreshSession {
	return &RefreshSession{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}

// Revoked reports whether the session has been revoked.
func (s *RefreshSession) Revoked() bool {
	return s.RevokedAt != nil
}

// Expired reports whether the session is past its expiry at the given time.
func (s *RefreshSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository defines the interface for refresh session storage.
type SessionRepository interface {
	Create(ctx context.Context, s *RefreshSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshSession, error)
	Revoke(ctx context.Context, id string, replacedByID *string, revokedAt time.Time) error
	RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthService defines signup, login, and refresh-token lifecycle.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name, lastName string) (*User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}
