package profiles

import (
	"context"
	"errors"

	"resume-studio/internal/shared/auth"
	"resume-studio/resume/model"
)

var (
	ErrNotFound     = errors.New("profile not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo is the data-access boundary for profiles. Reads are filtered by the
// caller: admins see every profile, managers the ones they own, bidders the
// ones assigned to them. A profile outside that set is ErrNotFound.
type Repo interface {
	List(ctx context.Context, p auth.Principal) ([]model.Profile, error)
	Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error)
	// Save inserts or replaces the profile by id. Callers check write access first.
	Save(ctx context.Context, profile model.Profile) (model.Profile, error)
	// Delete removes the profile with its assignments and applications and
	// returns the storage keys of documents those applications referenced.
	Delete(ctx context.Context, id string) ([]string, error)
}

// DocumentRemover deletes stored documents orphaned by a profile deletion.
type DocumentRemover interface {
	Delete(ctx context.Context, key string) error
}

// AssignmentLookup reports which profiles are assigned to a bidder.
type AssignmentLookup interface {
	ProfileIDsForBidder(ctx context.Context, bidderID string) ([]string, error)
}
