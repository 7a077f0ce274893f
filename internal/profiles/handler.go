package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/resume/model"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles", h.list)
	rg.GET("/profiles/:id", h.get)
	rg.POST("/profiles", h.save)
	rg.PUT("/profiles/:id", h.save)
	rg.DELETE("/profiles/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	items, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	profile, err := h.Svc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) save(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	var profile model.Profile
	if !respond.BindJSON(c, &profile) {
		return
	}
	if id := c.Param("id"); id != "" {
		profile.ID = id
	}
	creating := profile.ID == ""

	saved, err := h.Svc.Save(c.Request.Context(), p, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.LogProfileIDKey, saved.ID)
	if creating {
		respond.Created(c, saved)
		return
	}
	respond.OK(c, saved)
}

func (h *Handler) delete(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), p, id); err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.LogProfileIDKey, id)
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed to modify profiles", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "profile operation failed", nil)
	}
}
