package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/llm"
)

type call struct {
	prompt string
	opts   llm.CallOptions
}

type fakeLLM struct {
	replies []string
	err     error
	calls   []call
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, opts llm.CallOptions) (string, error) {
	f.calls = append(f.calls, call{prompt: prompt, opts: opts})
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	out := f.replies[0]
	f.replies = f.replies[1:]
	return out, nil
}

const profileJSON = `{"firstName":"Jane","lastName":"Doe","title":"Backend Engineer","skills":["Go","PostgreSQL"],` +
	`"experience":[{"company":"Acme Corp","position":"Engineer","startDate":"2019-01","endDate":"2022-06"}],"education":[]}`

func post(t *testing.T, client llm.Client, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(client)).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerateResumeReturnsRawText(t *testing.T) {
	raw := "Sure! ```json\n{\"summary\":\"x\"}\n```"
	fake := &fakeLLM{replies: []string{raw}}

	w := post(t, fake, "/api/generate-resume", `{"profile":`+profileJSON+`,"jobDescription":"Go developer at Initech"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, raw, body["aiResponse"])
	require.Len(t, fake.calls, 1)
	assert.Equal(t, llm.ResumeCall, fake.calls[0].opts)
	assert.Contains(t, fake.calls[0].prompt, "Go developer at Initech")
	assert.Contains(t, fake.calls[0].prompt, "Jane Doe")
}

func TestMissingFieldsRejectedWithoutCallingModel(t *testing.T) {
	cases := []struct {
		path string
		body string
	}{
		{"/api/generate-resume", `{"jobDescription":"Go developer"}`},
		{"/api/generate-resume", `{"profile":` + profileJSON + `,"jobDescription":"   "}`},
		{"/api/generate-cover-letter", `{"profile":` + profileJSON + `}`},
		{"/api/generate-answer", `{"profile":` + profileJSON + `}`},
		{"/api/extract-job-info", `{}`},
	}
	for _, tc := range cases {
		fake := &fakeLLM{}
		w := post(t, fake, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, "Missing required fields", decode(t, w)["error"], tc.path)
		assert.Empty(t, fake.calls, tc.path)
	}
}

func TestIncompleteProfileIsAccepted(t *testing.T) {
	fake := &fakeLLM{replies: []string{"{}"}}
	w := post(t, fake, "/api/generate-resume", `{"profile":{"firstName":"Jane"},"jobDescription":"Go developer"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, fake.calls, 1)
}

func TestMissingAPIKeyReportsRemediation(t *testing.T) {
	fake := &fakeLLM{err: &llm.ConfigError{Provider: "OpenAI", EnvVar: "OPENAI_API_KEY"}}

	w := post(t, fake, "/api/generate-answer", `{"profile":`+profileJSON+`,"question":"Why us?"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "LLM API key not configured", body["error"])
	assert.Equal(t, "llm_not_configured", body["code"])
	assert.Contains(t, body["details"], "OPENAI_API_KEY")
}

func TestUpstreamErrorPassesMessageThrough(t *testing.T) {
	fake := &fakeLLM{err: errors.New("openai http status 429: rate limited")}

	w := post(t, fake, "/api/generate-resume", `{"profile":`+profileJSON+`,"jobDescription":"Go developer"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Failed to generate resume", body["error"])
	assert.Equal(t, "openai http status 429: rate limited", body["details"])
	assert.Len(t, fake.calls, 1)
}

func TestCoverLetterExtractsJobInfoFirst(t *testing.T) {
	fake := &fakeLLM{replies: []string{
		`{"jobTitle":" Staff Engineer ","companyName":"Initech"}`,
		"Dear Hiring Manager,\n\nI am writing...",
	}}

	w := post(t, fake, "/api/generate-cover-letter",
		`{"profile":`+profileJSON+`,"jobDescription":"Staff Engineer at Initech","resumeContent":"Built billing"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Staff Engineer", body["jobTitle"])
	assert.Equal(t, "Initech", body["companyName"])
	assert.True(t, strings.HasPrefix(body["content"].(string), "Dear Hiring Manager"))

	require.Len(t, fake.calls, 2)
	assert.Equal(t, llm.JobInfoCall, fake.calls[0].opts)
	assert.Equal(t, llm.CoverLetterCall, fake.calls[1].opts)
	assert.Contains(t, fake.calls[1].prompt, "Staff Engineer")
	assert.Contains(t, fake.calls[1].prompt, "Initech")
	assert.Contains(t, fake.calls[1].prompt, "Built billing")
}

func TestCoverLetterFailsWhenJobInfoCallFails(t *testing.T) {
	fake := &fakeLLM{err: errors.New("timeout")}
	w := post(t, fake, "/api/generate-cover-letter", `{"profile":`+profileJSON+`,"jobDescription":"Staff Engineer"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, fake.calls, 1)
}

func TestGenerateAnswerEchoesQuestion(t *testing.T) {
	fake := &fakeLLM{replies: []string{"Because of the mission."}}

	w := post(t, fake, "/api/generate-answer", `{"profile":`+profileJSON+`,"question":"Why Initech?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Because of the mission.", body["content"])
	assert.Equal(t, "Why Initech?", body["question"])
	require.Len(t, fake.calls, 1)
	assert.Equal(t, llm.AnswerCall, fake.calls[0].opts)
	assert.Contains(t, fake.calls[0].prompt, "Why Initech?")
}

func TestExtractJobInfoToleratesProse(t *testing.T) {
	fake := &fakeLLM{replies: []string{`Here you go: {"jobTitle":"SRE","companyName":"Hooli"} hope it helps`}}

	w := post(t, fake, "/api/extract-job-info", `{"jobDescription":"SRE at Hooli"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"jobTitle":"SRE","companyName":"Hooli"}`, w.Body.String())
}

func TestExtractJobInfoUnparseableIsEmpty(t *testing.T) {
	svc := NewService(&fakeLLM{replies: []string{"no idea"}})
	info, err := svc.ExtractJobInfo(context.Background(), "something")
	require.NoError(t, err)
	assert.Empty(t, info.JobTitle)
	assert.Empty(t, info.CompanyName)
}

func TestNilClientReportsNotConfigured(t *testing.T) {
	w := post(t, nil, "/api/extract-job-info", `{"jobDescription":"SRE"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "llm_not_configured", decode(t, w)["code"])
}
