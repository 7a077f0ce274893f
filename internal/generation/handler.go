package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/llm"
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
	rg.POST("/generate-resume", h.generateResume)
	rg.POST("/generate-cover-letter", h.generateCoverLetter)
	rg.POST("/generate-answer", h.generateAnswer)
	rg.POST("/extract-job-info", h.extractJobInfo)
}

type resumeRequest struct {
	Profile        *model.Profile `json:"profile" validate:"required,structonly"`
	JobDescription string         `json:"jobDescription" validate:"notblank"`
}

type coverLetterRequest struct {
	Profile        *model.Profile `json:"profile" validate:"required,structonly"`
	JobDescription string         `json:"jobDescription" validate:"notblank"`
	ResumeContent  string         `json:"resumeContent"`
}

type answerRequest struct {
	Profile        *model.Profile `json:"profile" validate:"required,structonly"`
	Question       string         `json:"question" validate:"notblank"`
	JobDescription string         `json:"jobDescription"`
	ResumeContent  string         `json:"resumeContent"`
}

type jobInfoRequest struct {
	JobDescription string `json:"jobDescription" validate:"notblank"`
}

func (h *Handler) generateResume(c *gin.Context) {
	c.Set(middleware.LogGenerationKindKey, llm.KindResume)
	var req resumeRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	out, err := h.Svc.GenerateResume(c.Request.Context(), *req.Profile, req.JobDescription)
	if err != nil {
		writeError(c, "Failed to generate resume", err)
		return
	}
	respond.OK(c, gin.H{"success": true, "aiResponse": out})
}

func (h *Handler) generateCoverLetter(c *gin.Context) {
	c.Set(middleware.LogGenerationKindKey, llm.KindCoverLetter)
	var req coverLetterRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	letter, err := h.Svc.GenerateCoverLetter(c.Request.Context(), *req.Profile, req.JobDescription, req.ResumeContent)
	if err != nil {
		writeError(c, "Failed to generate cover letter", err)
		return
	}
	respond.OK(c, gin.H{
		"success":     true,
		"content":     letter.Content,
		"jobTitle":    letter.JobInfo.JobTitle,
		"companyName": letter.JobInfo.CompanyName,
	})
}

func (h *Handler) generateAnswer(c *gin.Context) {
	c.Set(middleware.LogGenerationKindKey, llm.KindAnswer)
	var req answerRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	out, err := h.Svc.GenerateAnswer(c.Request.Context(), *req.Profile, req.Question, req.JobDescription, req.ResumeContent)
	if err != nil {
		writeError(c, "Failed to generate answer", err)
		return
	}
	respond.OK(c, gin.H{"success": true, "content": out, "question": req.Question})
}

func (h *Handler) extractJobInfo(c *gin.Context) {
	c.Set(middleware.LogGenerationKindKey, llm.KindJobInfo)
	var req jobInfoRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	info, err := h.Svc.ExtractJobInfo(c.Request.Context(), req.JobDescription)
	if err != nil {
		writeError(c, "Failed to extract job info", err)
		return
	}
	respond.OK(c, gin.H{"success": true, "jobTitle": info.JobTitle, "companyName": info.CompanyName})
}

// writeError reports configuration problems with remediation text and passes
// upstream failures through unchanged.
func writeError(c *gin.Context, message string, err error) {
	var cfgErr *llm.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		respond.Error(c, http.StatusInternalServerError, "llm_not_configured", cfgErr.Error(), cfgErr.Remediation())
	case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, ErrNoLLM):
		respond.Error(c, http.StatusInternalServerError, "llm_not_configured", llm.ErrNotConfigured.Error(),
			"Set OPENAI_API_KEY or GEMINI_API_KEY in the server environment.")
	default:
		respond.Error(c, http.StatusInternalServerError, "upstream_error", message, err.Error())
	}
}
