package model

// GeneratedResume is the AI-tailored bundle for one job description. It is
// never persisted as-is; job applications keep a snapshot of it.
type GeneratedResume struct {
	Summary    string               `json:"summary"`
	Experience []EnhancedExperience `json:"experience"`
	Skills     []string             `json:"skills"`
}

// EnhancedExperience carries rewritten bullets for one employer. Entries are
// matched to profile experience by company name, never by position.
type EnhancedExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position,omitempty"`
	Descriptions []string `json:"descriptions"`
}

// JobInfo is the title and company extracted from a job description.
type JobInfo struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
}
