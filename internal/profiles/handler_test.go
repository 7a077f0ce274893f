package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/resume/model"
)

func serve(t *testing.T, svc *Service, p auth.Principal, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetPrincipalForTest(c, p)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerCRUD(t *testing.T) {
	svc := NewService(NewMemoryRepo(nil))

	w := serve(t, svc, managerA, http.MethodPost, "/api/profiles",
		`{"firstName":"Jane","lastName":"Doe","experience":[{"company":"Acme","position":"Dev"}],"fileNamePreference":"name"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.FileNameNameOnly, created.FileNamePreference)

	w = serve(t, svc, managerA, http.MethodPut, "/api/profiles/"+created.ID,
		`{"firstName":"Janet","lastName":"Doe","experience":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, svc, managerA, http.MethodGet, "/api/profiles/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Janet"`)

	w = serve(t, svc, managerA, http.MethodGet, "/api/profiles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []model.Profile `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Items, 1)

	w = serve(t, svc, managerA, http.MethodDelete, "/api/profiles/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandlerValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo(nil))

	w := serve(t, svc, managerA, http.MethodPost, "/api/profiles", `{"lastName":"Doe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "firstName")

	w = serve(t, svc, managerA, http.MethodPost, "/api/profiles", `{"firstName":"A","lastName":"B","fileNamePreference":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, svc, managerA, http.MethodPost, "/api/profiles", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerBidderCannotWrite(t *testing.T) {
	svc := NewService(NewMemoryRepo(nil))
	w := serve(t, svc, bidder, http.MethodPost, "/api/profiles", `{"firstName":"A","lastName":"B"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, svc, bidder, http.MethodGet, "/api/profiles/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
