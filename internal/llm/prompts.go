package llm

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"resume-studio/resume/model"
	"resume-studio/resume/render"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Prompt kinds, also used as metric labels.
const (
	KindResume      = "resume"
	KindCoverLetter = "cover-letter"
	KindAnswer      = "answer"
	KindJobInfo     = "job-info"
)

var promptFiles = map[string]string{
	KindResume:      "prompts/resume.tmpl",
	KindCoverLetter: "prompts/cover_letter.tmpl",
	KindAnswer:      "prompts/answer.tmpl",
	KindJobInfo:     "prompts/job_info.tmpl",
}

var prompts = mustParsePrompts()

func mustParsePrompts() map[string]*template.Template {
	funcs := template.FuncMap{
		"join":      strings.Join,
		"dateRange": render.FormatDateRange,
	}
	out := make(map[string]*template.Template, len(promptFiles))
	for kind, file := range promptFiles {
		out[kind] = template.Must(template.New(kind).Funcs(funcs).ParseFS(promptFS, file)).Lookup(file[len("prompts/"):])
	}
	return out
}

// PromptInput is everything a prompt template may interpolate.
type PromptInput struct {
	Profile        model.Profile
	JobDescription string
	ResumeContent  string
	Question       string
	JobInfo        model.JobInfo
}

// BuildPrompt renders the prompt for kind. The output is deterministic for a given input.
func BuildPrompt(kind string, in PromptInput) (string, error) {
	tmpl, ok := prompts[kind]
	if !ok {
		return "", fmt.Errorf("unknown prompt kind %q", kind)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, in); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}

// Kinds lists the known prompt kinds.
func Kinds() []string {
	return []string{KindResume, KindCoverLetter, KindAnswer, KindJobInfo}
}
