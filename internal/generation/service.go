// Package generation serves the prompt-and-forward endpoints: tailored
// resume JSON, cover letters, application answers and job info extraction.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"resume-studio/internal/llm"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/model"
	"resume-studio/resume/parser"
)

var ErrNoLLM = errors.New("llm client not configured")

type Service struct {
	LLM llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// CoverLetter is a generated letter plus the job info it was addressed with.
type CoverLetter struct {
	Content string
	JobInfo model.JobInfo
}

// GenerateResume returns the raw completion for the resume prompt. The text
// is expected to contain a JSON object but is not parsed here.
func (s *Service) GenerateResume(ctx context.Context, profile model.Profile, jobDescription string) (string, error) {
	return s.complete(ctx, llm.KindResume, llm.ResumeCall, llm.PromptInput{
		Profile:        profile,
		JobDescription: jobDescription,
	})
}

// ExtractJobInfo asks for the job title and company. A completion without a
// usable JSON object yields an empty JobInfo, not an error.
func (s *Service) ExtractJobInfo(ctx context.Context, jobDescription string) (model.JobInfo, error) {
	raw, err := s.complete(ctx, llm.KindJobInfo, llm.JobInfoCall, llm.PromptInput{JobDescription: jobDescription})
	if err != nil {
		return model.JobInfo{}, err
	}
	return parseJobInfo(raw), nil
}

// GenerateCoverLetter extracts job info, then writes the letter. The two calls
// run in sequence; either failing fails the request.
func (s *Service) GenerateCoverLetter(ctx context.Context, profile model.Profile, jobDescription, resumeContent string) (CoverLetter, error) {
	info, err := s.ExtractJobInfo(ctx, jobDescription)
	if err != nil {
		return CoverLetter{}, err
	}
	content, err := s.complete(ctx, llm.KindCoverLetter, llm.CoverLetterCall, llm.PromptInput{
		Profile:        profile,
		JobDescription: jobDescription,
		ResumeContent:  resumeContent,
		JobInfo:        info,
	})
	if err != nil {
		return CoverLetter{}, err
	}
	return CoverLetter{Content: content, JobInfo: info}, nil
}

// GenerateAnswer answers an application question in the candidate's voice.
func (s *Service) GenerateAnswer(ctx context.Context, profile model.Profile, question, jobDescription, resumeContent string) (string, error) {
	return s.complete(ctx, llm.KindAnswer, llm.AnswerCall, llm.PromptInput{
		Profile:        profile,
		Question:       question,
		JobDescription: jobDescription,
		ResumeContent:  resumeContent,
	})
}

func (s *Service) complete(ctx context.Context, kind string, opts llm.CallOptions, in llm.PromptInput) (string, error) {
	if s.LLM == nil {
		return "", ErrNoLLM
	}
	prompt, err := llm.BuildPrompt(kind, in)
	if err != nil {
		return "", err
	}

	metrics.IncGenerationStarted(kind)
	start := time.Now()
	out, err := s.LLM.Complete(ctx, prompt, opts)
	elapsed := time.Since(start)
	metrics.ObserveLLMDuration(elapsed)

	fields := map[string]any{
		"generationKind": kind,
		"model":          opts.Model,
		"prompt_hash":    llm.PromptHash(prompt),
		"duration_ms":    elapsed.Milliseconds(),
	}
	if err != nil {
		metrics.IncGenerationFailed(kind)
		fields["error"] = err.Error()
		telemetry.Error("generation.failed", fields)
		return "", err
	}
	fields["response_chars"] = len(out)
	telemetry.Info("generation.complete", fields)
	return out, nil
}

func parseJobInfo(raw string) model.JobInfo {
	span, ok := parser.ExtractJSONObject(raw)
	if !ok {
		return model.JobInfo{}
	}
	var info model.JobInfo
	if err := json.Unmarshal([]byte(span), &info); err != nil {
		telemetry.Warn("generation.job_info_unparsed", map[string]any{"error": err.Error()})
		return model.JobInfo{}
	}
	info.JobTitle = strings.TrimSpace(info.JobTitle)
	info.CompanyName = strings.TrimSpace(info.CompanyName)
	return info
}
