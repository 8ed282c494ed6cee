package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"centroespirita/internal/domain"
)

const (
	minPasswordLen = 8
	defaultRole    = domain.RoleMember
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo     domain.UserRepository
	roleRepo     domain.RoleRepository
	sessionRepo  domain.SessionRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	refreshTTL   time.Duration
	emailService domain.EmailService
}

// NewAuthService creates an AuthService with the given repositories and auth
// ports. emailService may be nil, in which case no welcome email is sent.
func NewAuthService(userRepo domain.UserRepository, roleRepo domain.RoleRepository, sessionRepo domain.SessionRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry, refreshTTL time.Duration, emailService domain.EmailService) domain.AuthService {
	return &authService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		sessionRepo:  sessionRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		refreshTTL:   refreshTTL,
		emailService: emailService,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name, lastName string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(name), strings.TrimSpace(lastName), hash, salt, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	roleRecord, err := s.roleRepo.GetByCode(ctx, defaultRole)
	if err != nil {
		return nil, fmt.Errorf("failed to get role %q: %w", defaultRole, err)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, roleRecord.ID); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			// Signup succeeded; the missing email is not worth failing over.
			log.Printf("[AUTH] failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := time.Now()
	if session.Revoked() {
		// Reuse of a rotated token means the refresh token leaked. Kill
		// every session for the user.
		if err := s.sessionRepo.RevokeAllForUser(ctx, session.UserID, now); err != nil {
			return nil, fmt.Errorf("revoke sessions: %w", err)
		}
		return nil, domain.ErrInvalidSession
	}
	if session.Expired(now) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	pair, newSession, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Revoke(ctx, session.ID, &newSession.ID, now); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}
	return pair, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidSession
		}
		return fmt.Errorf("get session: %w", err)
	}
	if err := s.sessionRepo.Revoke(ctx, session.ID, nil, time.Now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, _, err := s.issueTokenPair(ctx, user)
	return pair, err
}

func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, *domain.RefreshSession, error) {
	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roles: %w", err)
	}
	roleCodes := make([]string, len(roles))
	for i, r := range roles {
		roleCodes[i] = r.Code
	}

	accessToken, err := s.tokenIssuer.Issue(user.ID, user.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	refreshToken := uuid.NewString()
	session := domain.NewRefreshSession(user.ID, hashRefreshToken(refreshToken), now.Add(s.refreshTTL), now)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.tokenExpiry),
	}, session, nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
