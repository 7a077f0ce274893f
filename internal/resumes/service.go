// Package resumes turns a generated completion into a downloadable DOCX and,
// optionally, a recorded job application.
package resumes

import (
	"context"
	"fmt"
	"strings"

	"resume-studio/internal/applications"
	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/model"
	"resume-studio/resume/parser"
	"resume-studio/resume/render"
)

// ProfileReader loads a profile the caller is allowed to see.
type ProfileReader interface {
	Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error)
}

// Recorder saves a generated document as a job application.
type Recorder interface {
	Record(ctx context.Context, p auth.Principal, in applications.RecordInput) (applications.JobApplication, error)
}

type Service struct {
	Profiles     ProfileReader
	Applications Recorder
}

func NewService(profiles ProfileReader, apps Recorder) *Service {
	return &Service{Profiles: profiles, Applications: apps}
}

type DocumentRequest struct {
	ProfileID      string
	JobDescription string
	AIResponse     string
	JobTitle       string
	CompanyName    string
	Save           bool
}

// Document is an assembled resume. ApplicationID is empty when it was not saved.
type Document struct {
	FileName      string
	ContentType   string
	Data          []byte
	ApplicationID string
	Fallback      parser.Reason
}

// Build parses the completion against the stored profile, falling back to the
// profile's own content when the completion is unusable, and renders the DOCX.
func (s *Service) Build(ctx context.Context, p auth.Principal, req DocumentRequest) (Document, error) {
	profile, err := s.Profiles.Get(ctx, p, req.ProfileID)
	if err != nil {
		return Document{}, err
	}

	parsed := parser.Parse(req.AIResponse, profile)
	if parsed.Fallback != parser.ReasonNone {
		metrics.IncParserFallback()
	}
	if parsed.Padded > 0 {
		metrics.AddBulletsPadded(parsed.Padded)
	}

	data, err := render.Assemble(profile, parsed.Resume)
	if err != nil {
		return Document{}, fmt.Errorf("assemble document: %w", err)
	}
	metrics.IncDocumentsAssembled()

	doc := Document{
		FileName:    render.FileName(profile, req.JobTitle, req.CompanyName),
		ContentType: render.ContentTypeDOCX,
		Data:        data,
		Fallback:    parsed.Fallback,
	}

	if req.Save && strings.TrimSpace(req.JobDescription) != "" {
		app, err := s.Applications.Record(ctx, p, applications.RecordInput{
			Profile:        profile,
			JobDescription: req.JobDescription,
			JobTitle:       req.JobTitle,
			CompanyName:    req.CompanyName,
			Generated:      parsed.Resume,
			Document:       data,
			FileName:       doc.FileName,
		})
		if err != nil {
			return Document{}, fmt.Errorf("record application: %w", err)
		}
		doc.ApplicationID = app.ID
	}

	telemetry.Info("resume.document.built", map[string]any{
		"profileId":        profile.ID,
		"jobApplicationId": doc.ApplicationID,
		"fallback":         string(doc.Fallback),
		"bullets_padded":   parsed.Padded,
		"bytes":            len(data),
	})
	return doc, nil
}
