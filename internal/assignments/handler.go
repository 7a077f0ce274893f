package assignments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles/:id/assignments", h.list)
	rg.POST("/profiles/:id/assignments", h.create)
	rg.DELETE("/assignments/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	items, err := h.Svc.List(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

type createRequest struct {
	BidderID string `json:"bidderId" validate:"notblank"`
}

func (h *Handler) create(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	var req createRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set(middleware.LogProfileIDKey, c.Param("id"))
	a, err := h.Svc.Assign(c.Request.Context(), p, c.Param("id"), req.BidderID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, a)
}

func (h *Handler) delete(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	if err := h.Svc.Unassign(c.Request.Context(), p, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "only admins and managers can manage assignments", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "assignment operation failed", nil)
	}
}
