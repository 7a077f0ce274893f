package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/internal/shared/validation"
	"resume-studio/resume/model"
)

type Service struct {
	Repo Repo
	// Documents, when set, receives the keys of documents orphaned by Delete.
	Documents DocumentRemover
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context, p auth.Principal) ([]model.Profile, error) {
	return s.Repo.List(ctx, p)
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return model.Profile{}, ErrNotFound
	}
	return s.Repo.Get(ctx, p, id)
}

// Save creates a profile owned by the caller, or replaces one the caller may
// edit: admins any, managers their own. Bidders cannot write profiles.
func (s *Service) Save(ctx context.Context, p auth.Principal, profile model.Profile) (model.Profile, error) {
	if !p.CanManage() {
		return model.Profile{}, ErrForbidden
	}
	profile.Normalize()
	if err := validation.Struct(profile); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(validation.Messages(err), "; "))
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
		profile.OwnerID = p.UserID
	} else {
		existing, err := s.Repo.Get(ctx, p, profile.ID)
		if err != nil {
			return model.Profile{}, err
		}
		profile.OwnerID = existing.OwnerID
		profile.CreatedAt = existing.CreatedAt
	}

	saved, err := s.Repo.Save(ctx, profile)
	if err != nil {
		return model.Profile{}, err
	}
	telemetry.Info("profile.saved", map[string]any{"profileId": saved.ID, "user_id": p.UserID})
	return saved, nil
}

// Delete removes a profile. Admins may delete any, managers their own.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}
	if _, err := s.Repo.Get(ctx, p, id); err != nil {
		return err
	}
	keys, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	removed := 0
	if s.Documents != nil {
		for _, key := range keys {
			if err := s.Documents.Delete(ctx, key); err != nil {
				telemetry.Warn("profile.document_cleanup_failed", map[string]any{"profileId": id, "key": key, "error": err.Error()})
				continue
			}
			removed++
		}
	}
	telemetry.Info("profile.deleted", map[string]any{"profileId": id, "user_id": p.UserID, "documents_removed": removed})
	return nil
}
