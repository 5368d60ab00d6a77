// Package auth owns the login flow that produces the credentials the
// access gate later reads. The "remember me" choice at login selects the
// session store's persistence-duration policy; nothing downstream ever
// needs to know which policy was picked.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"comparo/internal/domain"
	"comparo/internal/identity"
	"comparo/internal/platform/middleware"
	"comparo/internal/session"
	dErrors "comparo/pkg/domain-errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

// LoginResult carries what the transport layer needs to establish the
// browser session.
type LoginResult struct {
	SessionID string
	Identity  domain.Identity
	Durable   bool
}

// Service authenticates users and manages their stored credentials.
type Service struct {
	users    UserStore
	sessions session.Store
	tokens   *identity.TokenService
	logger   *slog.Logger
}

func NewService(users UserStore, sessions session.Store, tokens *identity.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies the password, issues a token pair, and stores it under a
// fresh session ID. A wrong password and an unknown email produce the same
// error so the response does not leak which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return LoginResult{}, fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "login failed - password mismatch",
			"user_id", user.ID,
			"request_id", middleware.GetRequestID(ctx),
		)
		return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, accessTokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, refreshTokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue refresh token: %w", err)
	}

	sessionID := uuid.NewString()
	cred := domain.Credential{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(accessTokenTTL),
	}
	if err := s.sessions.Save(ctx, sessionID, cred, remember); err != nil {
		return LoginResult{}, fmt.Errorf("save session: %w", err)
	}

	return LoginResult{
		SessionID: sessionID,
		Identity:  domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role},
		Durable:   remember,
	}, nil
}

// Logout destroys the stored credential. Logging out an absent session is
// a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// HashPassword is used by fixtures and seeding; login only compares.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
