package applications

import (
	"fmt"
	"strings"
	"time"

	"resume-studio/resume/model"
)

// Status is the lifecycle state of a job application. Only active
// applications can change state, and each change is final.
type Status string

const (
	StatusActive    Status = "active"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// ParseStatus accepts a known status name, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusRejected, StatusWithdrawn:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
	}
}

// JobApplication records one generated resume submitted for a job.
type JobApplication struct {
	ID                  string                     `json:"id"`
	ProfileID           string                     `json:"profileId"`
	UserID              string                     `json:"userId"`
	JobDescription      string                     `json:"jobDescription"`
	JobTitle            string                     `json:"jobTitle"`
	CompanyName         string                     `json:"companyName"`
	GeneratedSummary    string                     `json:"generatedSummary"`
	GeneratedExperience []model.EnhancedExperience `json:"generatedExperience"`
	GeneratedSkills     []string                   `json:"generatedSkills"`
	DocumentKey         string                     `json:"-"`
	DocumentName        string                     `json:"documentName,omitempty"`
	DocumentSize        int64                      `json:"documentSize,omitempty"`
	Status              Status                     `json:"status"`
	CreatedAt           time.Time                  `json:"createdAt"`
	RejectedAt          *time.Time                 `json:"rejectedAt,omitempty"`
	WithdrawnAt         *time.Time                 `json:"withdrawnAt,omitempty"`

	// Denormalized from the profile for listing and access checks.
	ProfileName    string `json:"profileName,omitempty"`
	ProfileOwnerID string `json:"-"`
}

// HasDocument reports whether a DOCX was stored for the application.
func (a JobApplication) HasDocument() bool { return a.DocumentKey != "" }

// Filter narrows List and Count. Zero values mean "any".
type Filter struct {
	ProfileID string
	Status    Status
	// Search matches job title, company name or description, case-insensitively.
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Normalize clamps paging values.
func (f *Filter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
