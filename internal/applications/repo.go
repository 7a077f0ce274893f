package applications

import (
	"context"
	"errors"
	"time"

	"resume-studio/internal/shared/auth"
)

var (
	ErrNotFound          = errors.New("job application not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoDocument        = errors.New("no document stored for this application")
)

// Repo stores job applications. Reads take the caller and return only what
// it may see: admins everything, managers applications on profiles they own,
// bidders the applications they submitted.
type Repo interface {
	Create(ctx context.Context, app JobApplication) (JobApplication, error)
	Get(ctx context.Context, p auth.Principal, id string) (JobApplication, error)
	List(ctx context.Context, p auth.Principal, f Filter) ([]JobApplication, error)
	Count(ctx context.Context, p auth.Principal, f Filter) (int, error)
	// Transition moves an active application to status. Any other starting
	// state yields ErrInvalidTransition.
	Transition(ctx context.Context, id string, to Status, at time.Time) (JobApplication, error)
	Delete(ctx context.Context, id string) error
}
