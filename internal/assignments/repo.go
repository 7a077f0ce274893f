package assignments

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("assignment not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("profile already assigned to bidder")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	// Create fails with ErrConflict when the (profile, bidder) pair exists.
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Get(ctx context.Context, id string) (Assignment, error)
	ListByProfile(ctx context.Context, profileID string) ([]Assignment, error)
	Delete(ctx context.Context, id string) error
	ProfileIDsForBidder(ctx context.Context, bidderID string) ([]string, error)
}
