package users

import (
	"context"
	"errors"

	"resume-studio/internal/shared/auth"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	// Upsert creates the user or refreshes its profile fields. The stored role
	// is never changed by an upsert; new users get user.Role or bidder.
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	ListByRole(ctx context.Context, role auth.Role) ([]User, error)
	SetRole(ctx context.Context, userID string, role auth.Role) (User, error)
}
