package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/auth"
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
	rg.GET("/me", h.me)
	rg.GET("/users/bidders", h.listBidders)
	rg.PUT("/users/:id/role", h.setRole)
}

func (h *Handler) me(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), p.UserID)
	if errors.Is(err, ErrNotFound) {
		// Dev-header callers have no stored account.
		respond.OK(c, gin.H{"id": p.UserID, "role": p.Role, "email": middleware.UserEmailFromContext(c)})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) listBidders(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	bidders, err := h.Svc.ListBidders(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": bidders})
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager bidder"`
}

func (h *Handler) setRole(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	var req setRoleRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	user, err := h.Svc.SetRole(c.Request.Context(), p, c.Param("id"), auth.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, user)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
	}
}
