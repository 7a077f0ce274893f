// Package gemini adapts Google's Gemini API to llm.Client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"resume-studio/internal/llm"
	"resume-studio/internal/shared/telemetry"
)

// DefaultModel is used when no LLM_MODEL is configured.
const DefaultModel = "gemini-2.5-flash"

// Client implements llm.Client for Gemini. The genai client is created on the
// first call so a missing key surfaces per request.
type Client struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewClient returns a Gemini client. Per-call OpenAI model names are replaced
// by model.
func NewClient(apiKey, model string) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{apiKey: strings.TrimSpace(apiKey), model: model}
}

func (c *Client) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, &llm.ConfigError{Provider: "Gemini", EnvVar: "GEMINI_API_KEY"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete generates content for prompt using the configured model.
func (c *Client) Complete(ctx context.Context, prompt string, opts llm.CallOptions) (string, error) {
	client, err := c.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	modelName := c.resolveModel(opts.Model)
	model := client.GenerativeModel(modelName)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	telemetry.Info("llm.response", map[string]any{"model": modelName, "prompt_hash": llm.PromptHash(prompt)})
	if opts.JSON {
		return cleanJSONBlock(text), nil
	}
	return strings.TrimSpace(text), nil
}

// resolveModel keeps explicit Gemini model names and maps everything else to
// the configured model.
func (c *Client) resolveModel(requested string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(requested)), "gemini") {
		return strings.TrimSpace(requested)
	}
	return c.model
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini response has no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini response has no content")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("gemini response has no text parts")
	}
	return strings.Join(parts, ""), nil
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

var _ llm.Client = (*Client)(nil)
