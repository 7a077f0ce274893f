package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	router := gin.New()
	router.Use(RequestID(), Auth(AuthOptions{DevHeaders: true}), Logging())
	router.POST("/api/job-applications/:id/reject", func(c *gin.Context) {
		c.Set(LogApplicationIDKey, c.Param("id"))
		c.Set(LogStatusTransition, "active->rejected")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/job-applications/app-1/reject", nil)
	req.Header.Set("X-Dev-User-Id", "mgr-1")
	req.Header.Set("X-Dev-Role", "manager")
	router.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &payload))

	for _, key := range []string{"request_id", "user_id", "role", "duration_ms", "status", "route"} {
		assert.Contains(t, payload, key)
	}
	assert.Equal(t, "request.complete", payload["msg"])
	assert.Equal(t, "mgr-1", payload["user_id"])
	assert.Equal(t, "manager", payload["role"])
	assert.Equal(t, "app-1", payload[LogApplicationIDKey])
	assert.Equal(t, "active->rejected", payload[LogStatusTransition])
}
