package applications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/render"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-applications", h.list)
	rg.GET("/job-applications/count", h.count)
	rg.GET("/job-applications/:id", h.get)
	rg.GET("/job-applications/:id/download", h.download)
	rg.POST("/job-applications/:id/reject", h.reject)
	rg.POST("/job-applications/:id/withdraw", h.withdraw)
	rg.DELETE("/job-applications/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	items, total, err := h.Svc.List(c.Request.Context(), p, f)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items, "total": total})
}

func (h *Handler) count(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	n, err := h.Svc.Count(c.Request.Context(), p, f)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"count": n})
}

func (h *Handler) get(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	app, err := h.Svc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) reject(c *gin.Context) {
	h.changeStatus(c, h.Svc.Reject)
}

func (h *Handler) withdraw(c *gin.Context) {
	h.changeStatus(c, h.Svc.Withdraw)
}

type transitionFunc func(ctx context.Context, p auth.Principal, id string) (JobApplication, error)

func (h *Handler) changeStatus(c *gin.Context, fn transitionFunc) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	c.Set(middleware.LogApplicationIDKey, id)
	app, err := fn(c.Request.Context(), p, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.LogStatusTransition, "active->"+string(app.Status))
	respond.OK(c, app)
}

func (h *Handler) delete(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	c.Set(middleware.LogApplicationIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), p, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) download(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	c.Set(middleware.LogApplicationIDKey, id)
	app, rc, err := h.Svc.Download(c.Request.Context(), p, id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	name := app.DocumentName
	if name == "" {
		name = "resume.docx"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Cache-Control", "no-store")
	c.Header("X-Job-Application-Id", app.ID)
	if app.DocumentSize > 0 {
		c.Header("Content-Length", strconv.FormatInt(app.DocumentSize, 10))
	}
	c.Header("Content-Type", render.ContentTypeDOCX)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("job_application.download_interrupted", map[string]any{"jobApplicationId": id, "error": err.Error()})
	}
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	f := Filter{
		ProfileID: strings.TrimSpace(c.Query("profileId")),
		Search:    c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return Filter{}, err
		}
		f.Status = status
	}
	var err error
	if f.From, err = parseTime(c.Query("from"), false); err != nil {
		return Filter{}, err
	}
	if f.To, err = parseTime(c.Query("to"), true); err != nil {
		return Filter{}, err
	}
	if f.Limit, err = parseInt(c.Query("limit"), "limit"); err != nil {
		return Filter{}, err
	}
	if f.Offset, err = parseInt(c.Query("offset"), "offset"); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// parseTime accepts RFC3339 or a bare date. A bare "to" date includes the whole day.
func parseTime(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, raw)
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return &t, nil
}

func parseInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidInput, name)
	}
	return n, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job application not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", "only active applications can be rejected or withdrawn", nil)
	case errors.Is(err, ErrNoDocument):
		respond.Error(c, http.StatusNotFound, "no_document", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "job application operation failed", nil)
	}
}
