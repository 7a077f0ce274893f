package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/echo", func(c *gin.Context) {
		p, ok := middleware.RequirePrincipal(c)
		if !ok {
			return
		}
		respond.OK(c, gin.H{"userId": p.UserID, "role": p.Role})
	})
}

func newTestRouter(t *testing.T, env string) (*gin.Engine, *auth.Signer) {
	t.Helper()
	signer, err := auth.NewSigner("router-secret", env)
	require.NoError(t, err)
	return NewRouter(RouterDeps{
		Config:   config.Config{Env: env, CORSAllowOrigin: []string{"http://localhost:5173"}},
		Signer:   signer,
		Handlers: []RouteRegistrar{echoHandler{}},
	}), signer
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	r, _ := newTestRouter(t, "production")

	w := do(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWrongMethodIs405(t *testing.T) {
	r, _ := newTestRouter(t, "production")
	w := do(r, http.MethodGet, "/api/echo", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "method_not_allowed")
}

func TestBearerToken(t *testing.T) {
	r, signer := newTestRouter(t, "production")
	claims := auth.Claims{Role: auth.RoleManager}
	claims.Subject = "user-1"
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/echo", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"user-1","role":"manager"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/echo", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDevHeadersOnlyInDev(t *testing.T) {
	headers := map[string]string{"X-Dev-User-Id": "dev-1", "X-Dev-Role": "admin"}

	r, _ := newTestRouter(t, "dev")
	w := do(r, http.MethodPost, "/api/echo", headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"dev-1","role":"admin"}`, w.Body.String())

	r, _ = newTestRouter(t, "production")
	w = do(r, http.MethodPost, "/api/echo", headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}
