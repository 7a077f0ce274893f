// Package llm defines the completion client used by the generation endpoints
// and the prompts they send.
package llm

import (
	"context"
	"errors"

	"resume-studio/internal/shared/util"
)

// ErrNotConfigured is returned at call time when the provider has no API key.
var ErrNotConfigured = errors.New("LLM API key not configured")

// CallOptions are the fixed per-endpoint settings of one completion.
type CallOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	// JSON asks the provider for a JSON object response.
	JSON bool
}

var (
	ResumeCall      = CallOptions{Model: "gpt-4o", Temperature: 0.7, MaxTokens: 4000, JSON: true}
	CoverLetterCall = CallOptions{Model: "gpt-4o", Temperature: 0.7, MaxTokens: 1500}
	AnswerCall      = CallOptions{Model: "gpt-4o", Temperature: 0.7, MaxTokens: 1000}
	JobInfoCall     = CallOptions{Model: "gpt-4o-mini", Temperature: 0.1, MaxTokens: 300, JSON: true}
)

// Client sends a single prompt and returns the model's text.
type Client interface {
	Complete(ctx context.Context, prompt string, opts CallOptions) (string, error)
}

// ConfigError carries remediation text for a provider that cannot be called.
type ConfigError struct {
	Provider string
	EnvVar   string
}

func (e *ConfigError) Error() string { return ErrNotConfigured.Error() }

func (e *ConfigError) Unwrap() error { return ErrNotConfigured }

// Remediation tells an operator how to fix the configuration.
func (e *ConfigError) Remediation() string {
	return "Set " + e.EnvVar + " in the server environment (or .env) to enable " + e.Provider + " generation."
}

// PromptHash identifies a prompt in logs without recording its content.
func PromptHash(prompt string) string {
	return util.Digest(prompt)[:16]
}
