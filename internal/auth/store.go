package auth

import (
	"context"
	"errors"

	"comparo/internal/domain"
)

// ErrUserNotFound is returned when no account matches the email.
var ErrUserNotFound = errors.New("auth: user not found")

// UserStore looks up accounts for login.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}
