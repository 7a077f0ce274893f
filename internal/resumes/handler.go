package resumes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/applications"
	"resume-studio/internal/profiles"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/resume/render"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/document", h.document)
}

type documentRequest struct {
	ProfileID      string `json:"profileId" validate:"notblank"`
	JobDescription string `json:"jobDescription"`
	AIResponse     string `json:"aiResponse"`
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	Save           *bool  `json:"save"`
}

func (h *Handler) document(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	var req documentRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	save := req.Save == nil || *req.Save
	if save && strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Missing required fields",
			gin.H{"missing": []string{"jobDescription"}})
		return
	}
	c.Set(middleware.LogProfileIDKey, req.ProfileID)

	doc, err := h.Svc.Build(c.Request.Context(), p, DocumentRequest{
		ProfileID:      req.ProfileID,
		JobDescription: req.JobDescription,
		AIResponse:     req.AIResponse,
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		Save:           save,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if doc.ApplicationID != "" {
		c.Set(middleware.LogApplicationIDKey, doc.ApplicationID)
		c.Header("X-Job-Application-Id", doc.ApplicationID)
	}
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	respond.Attachment(c, doc.FileName, doc.ContentType, doc.Data)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	case errors.Is(err, render.ErrMissingName):
		respond.BadRequest(c, "profile has no name", nil)
	case errors.Is(err, applications.ErrInvalidInput):
		respond.BadRequest(c, err.Error(), nil)
	case errors.Is(err, applications.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "not allowed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to build resume document", err.Error())
	}
}
