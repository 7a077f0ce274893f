package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/config"
	"resume-studio/internal/users"
)

func devApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(context.Background(), config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "openai",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(t *testing.T, app *App, method, path, user, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Dev-User-Id", user)
		req.Header.Set("X-Dev-Role", role)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestBuildDevUsesMemoryRepos(t *testing.T) {
	app := devApp(t)
	assert.Nil(t, app.DB)
	assert.NotNil(t, app.Store)
	assert.NotNil(t, app.LLM)
}

func TestBuildRejectsProductionWithoutSettings(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "production"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestProfileToApplicationFlow(t *testing.T) {
	app := devApp(t)
	ctx := context.Background()
	_, err := app.UsersService.UpsertFromAuth(ctx, users.User{ID: "bid-1", Email: "bidder@example.com", FullName: "Bo Bidder"})
	require.NoError(t, err)

	w := call(t, app, http.MethodPost, "/api/profiles", "mgr-1", "manager", map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"title":     "Backend Engineer",
		"skills":    []string{"Go"},
		"experience": []map[string]any{
			{"company": "Acme Corp", "position": "Engineer", "startDate": "2019-01", "endDate": "2022-06"},
		},
		"education": []map[string]any{},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.NotEmpty(t, profile.ID)

	w = call(t, app, http.MethodGet, "/api/profiles/"+profile.ID, "bid-1", "bidder", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, app, http.MethodPost, "/api/profiles/"+profile.ID+"/assignments", "mgr-1", "manager",
		map[string]any{"bidderId": "bid-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, app, http.MethodGet, "/api/profiles/"+profile.ID, "bid-1", "bidder", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// No API key configured: the generation endpoint reports remediation.
	w = call(t, app, http.MethodPost, "/api/generate-resume", "bid-1", "bidder", map[string]any{
		"profile":        map[string]any{"firstName": "Jane", "lastName": "Doe"},
		"jobDescription": "Go engineer at Initech",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "OPENAI_API_KEY")

	w = call(t, app, http.MethodPost, "/api/resumes/document", "bid-1", "bidder", map[string]any{
		"profileId":      profile.ID,
		"jobDescription": "Go engineer at Initech",
		"aiResponse":     `{"summary":"Go engineer.","skills":["Go"]}`,
		"jobTitle":       "Engineer",
		"companyName":    "Initech",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	appID := w.Header().Get("X-Job-Application-Id")
	require.NotEmpty(t, appID)

	w = call(t, app, http.MethodGet, "/api/job-applications/count", "mgr-1", "manager", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = call(t, app, http.MethodGet, "/api/job-applications/"+appID+"/download", "mgr-1", "manager", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = call(t, app, http.MethodGet, "/api/generate-resume", "bid-1", "bidder", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
