package model

import (
	"strings"
	"time"
)

// FileNamePreference selects the download filename pattern for a profile.
type FileNamePreference string

const (
	// FileNameFull produces {first}_{last}_{jobTitle}-{companyName}.docx.
	FileNameFull FileNamePreference = "full"
	// FileNameNameOnly produces {first}_{last}.docx.
	FileNameNameOnly FileNamePreference = "name"
)

// Profile is a candidate record owned by an account.
type Profile struct {
	ID                 string             `json:"id,omitempty"`
	OwnerID            string             `json:"ownerId,omitempty"`
	FirstName          string             `json:"firstName" validate:"notblank,max=100"`
	LastName           string             `json:"lastName" validate:"notblank,max=100"`
	Title              string             `json:"title,omitempty" validate:"max=200"`
	Email              string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone              string             `json:"phone,omitempty"`
	Location           string             `json:"location,omitempty"`
	LinkedIn           string             `json:"linkedin,omitempty"`
	Website            string             `json:"website,omitempty"`
	Summary            string             `json:"summary,omitempty"`
	Experience         []Experience       `json:"experience" validate:"dive"`
	Education          []Education        `json:"education" validate:"dive"`
	Skills             []string           `json:"skills"`
	FileNamePreference FileNamePreference `json:"fileNamePreference,omitempty" validate:"omitempty,oneof=full name"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt,omitempty"`
}

// Experience is one employment entry.
type Experience struct {
	Company     string `json:"company" validate:"notblank"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Education is one degree entry.
type Education struct {
	Institution string `json:"institution" validate:"notblank"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Address     string `json:"address,omitempty"`
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Normalize trims string fields, drops blank skills and defaults the filename preference.
func (p *Profile) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Title = strings.TrimSpace(p.Title)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.LinkedIn = strings.TrimSpace(p.LinkedIn)
	p.Website = strings.TrimSpace(p.Website)
	p.Summary = strings.TrimSpace(p.Summary)

	skills := make([]string, 0, len(p.Skills))
	seen := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	p.Skills = skills

	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.FileNamePreference == "" {
		p.FileNamePreference = FileNameFull
	}
}
