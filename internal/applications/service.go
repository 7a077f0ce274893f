package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/storage/object"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/model"
	"resume-studio/resume/render"
)

type Service struct {
	Repo  Repo
	Store object.ObjectStore
	now   func() time.Time
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store, now: time.Now}
}

// RecordInput is a generated resume being saved as a job application.
type RecordInput struct {
	Profile        model.Profile
	JobDescription string
	JobTitle       string
	CompanyName    string
	Generated      model.GeneratedResume
	Document       []byte
	FileName       string
}

// Record stores the document, if any, and creates an active application
// submitted by the caller.
func (s *Service) Record(ctx context.Context, p auth.Principal, in RecordInput) (JobApplication, error) {
	if p.IsZero() {
		return JobApplication{}, ErrForbidden
	}
	if strings.TrimSpace(in.Profile.ID) == "" || strings.TrimSpace(in.JobDescription) == "" {
		return JobApplication{}, fmt.Errorf("%w: profile and job description are required", ErrInvalidInput)
	}

	app := JobApplication{
		ID:                  uuid.NewString(),
		ProfileID:           in.Profile.ID,
		UserID:              p.UserID,
		JobDescription:      in.JobDescription,
		JobTitle:            strings.TrimSpace(in.JobTitle),
		CompanyName:         strings.TrimSpace(in.CompanyName),
		GeneratedSummary:    in.Generated.Summary,
		GeneratedExperience: in.Generated.Experience,
		GeneratedSkills:     in.Generated.Skills,
		Status:              StatusActive,
		CreatedAt:           s.now().UTC(),
		ProfileName:         in.Profile.FullName(),
		ProfileOwnerID:      in.Profile.OwnerID,
	}
	if app.GeneratedExperience == nil {
		app.GeneratedExperience = []model.EnhancedExperience{}
	}
	if app.GeneratedSkills == nil {
		app.GeneratedSkills = []string{}
	}

	if len(in.Document) > 0 && s.Store != nil {
		obj, err := s.Store.Put(ctx, p.UserID, in.FileName, render.ContentTypeDOCX, bytes.NewReader(in.Document))
		if err != nil {
			return JobApplication{}, fmt.Errorf("store document: %w", err)
		}
		app.DocumentKey = obj.Key
		app.DocumentName = in.FileName
		app.DocumentSize = obj.Size
	}

	created, err := s.Repo.Create(ctx, app)
	if err != nil {
		s.discard(ctx, app.DocumentKey)
		return JobApplication{}, err
	}
	telemetry.Info("job_application.created", map[string]any{
		"jobApplicationId": created.ID,
		"profileId":        created.ProfileID,
		"user_id":          p.UserID,
		"document_bytes":   created.DocumentSize,
	})
	return created, nil
}

// List returns one page of visible applications and the total matching count.
func (s *Service) List(ctx context.Context, p auth.Principal, f Filter) ([]JobApplication, int, error) {
	items, err := s.Repo.List(ctx, p, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, p, f)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Count(ctx context.Context, p auth.Principal, f Filter) (int, error) {
	return s.Repo.Count(ctx, p, f)
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (JobApplication, error) {
	return s.Repo.Get(ctx, p, id)
}

// Reject marks a visible active application as rejected.
func (s *Service) Reject(ctx context.Context, p auth.Principal, id string) (JobApplication, error) {
	return s.transition(ctx, p, id, StatusRejected)
}

// Withdraw marks a visible active application as withdrawn.
func (s *Service) Withdraw(ctx context.Context, p auth.Principal, id string) (JobApplication, error) {
	return s.transition(ctx, p, id, StatusWithdrawn)
}

func (s *Service) transition(ctx context.Context, p auth.Principal, id string, to Status) (JobApplication, error) {
	current, err := s.Repo.Get(ctx, p, id)
	if err != nil {
		return JobApplication{}, err
	}
	updated, err := s.Repo.Transition(ctx, id, to, s.now().UTC())
	if err != nil {
		return JobApplication{}, err
	}
	telemetry.Info("job_application.status_changed", map[string]any{
		"jobApplicationId": id,
		"statusTransition": string(current.Status) + "->" + string(to),
		"user_id":          p.UserID,
	})
	return updated, nil
}

// Delete removes an application and its stored document. Admins may delete
// any application, managers those on profiles they own.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}
	app, err := s.Repo.Get(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, app.DocumentKey)
	telemetry.Info("job_application.deleted", map[string]any{"jobApplicationId": id, "user_id": p.UserID})
	return nil
}

// Download opens the stored DOCX of a visible application. The caller closes the reader.
func (s *Service) Download(ctx context.Context, p auth.Principal, id string) (JobApplication, io.ReadCloser, error) {
	app, err := s.Repo.Get(ctx, p, id)
	if err != nil {
		return JobApplication{}, nil, err
	}
	if !app.HasDocument() || s.Store == nil {
		return JobApplication{}, nil, ErrNoDocument
	}
	rc, err := s.Store.Open(ctx, app.DocumentKey)
	if errors.Is(err, object.ErrNotFound) {
		return JobApplication{}, nil, ErrNoDocument
	}
	if err != nil {
		return JobApplication{}, nil, err
	}
	return app, rc, nil
}

func (s *Service) discard(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("job_application.document_cleanup_failed", map[string]any{"key": key, "error": err.Error()})
	}
}
