package assignments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-studio/internal/profiles"
	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/internal/users"
	"resume-studio/resume/model"
)

// ProfileReader is the visibility-checked profile lookup.
type ProfileReader interface {
	Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error)
}

// UserReader loads accounts by id.
type UserReader interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

type Service struct {
	Repo     Repo
	Profiles ProfileReader
	Users    UserReader
}

func NewService(repo Repo, profiles ProfileReader, users UserReader) *Service {
	return &Service{Repo: repo, Profiles: profiles, Users: users}
}

// List returns the bidders assigned to a profile the caller manages.
func (s *Service) List(ctx context.Context, p auth.Principal, profileID string) ([]Assignment, error) {
	if err := s.checkProfile(ctx, p, profileID); err != nil {
		return nil, err
	}
	return s.Repo.ListByProfile(ctx, profileID)
}

// Assign gives a bidder access to a profile. Only admins and the managing
// owner may assign, and the target account must have the bidder role.
func (s *Service) Assign(ctx context.Context, p auth.Principal, profileID, bidderID string) (Assignment, error) {
	if strings.TrimSpace(bidderID) == "" {
		return Assignment{}, fmt.Errorf("%w: bidderId is required", ErrInvalidInput)
	}
	if err := s.checkProfile(ctx, p, profileID); err != nil {
		return Assignment{}, err
	}
	bidder, err := s.Users.GetByID(ctx, bidderID)
	if errors.Is(err, users.ErrNotFound) {
		return Assignment{}, fmt.Errorf("%w: user %s not found", ErrInvalidInput, bidderID)
	}
	if err != nil {
		return Assignment{}, err
	}
	if bidder.Role != auth.RoleBidder {
		return Assignment{}, fmt.Errorf("%w: user %s is not a bidder", ErrInvalidInput, bidderID)
	}

	a, err := s.Repo.Create(ctx, Assignment{
		ID:         uuid.NewString(),
		ProfileID:  profileID,
		BidderID:   bidderID,
		AssignedBy: p.UserID,
	})
	if err != nil {
		return Assignment{}, err
	}
	telemetry.Info("assignment.created", map[string]any{"profileId": profileID, "bidder_id": bidderID, "user_id": p.UserID})
	return a, nil
}

// Unassign removes an assignment from a profile the caller manages.
func (s *Service) Unassign(ctx context.Context, p auth.Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkProfile(ctx, p, a.ProfileID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("assignment.deleted", map[string]any{"profileId": a.ProfileID, "bidder_id": a.BidderID, "user_id": p.UserID})
	return nil
}

func (s *Service) checkProfile(ctx context.Context, p auth.Principal, profileID string) error {
	if !p.CanManage() {
		return ErrForbidden
	}
	_, err := s.Profiles.Get(ctx, p, profileID)
	if errors.Is(err, profiles.ErrNotFound) {
		return fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
	}
	return err
}
