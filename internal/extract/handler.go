package extract

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/internal/shared/telemetry"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles/extract-text", h.extractText)
}

func (h *Handler) extractText(c *gin.Context) {
	p, ok := middleware.RequirePrincipal(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 5MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Missing required fields", gin.H{"missing": []string{"file"}})
		return
	}
	if fh.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 5MB", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read upload", err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read upload", err.Error())
		return
	}

	text, err := Text(c.Request.Context(), data, fh.Header.Get("Content-Type"), fh.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupported):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file_type", "only PDF and DOCX files are supported", err.Error())
		case errors.Is(err, ErrEmpty), errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusUnprocessableEntity, "no_text", err.Error(), nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text", err.Error())
		}
		return
	}

	telemetry.Info("profile.text_extracted", map[string]any{
		"user_id":   p.UserID,
		"file_name": fh.Filename,
		"bytes":     len(data),
		"chars":     len(text),
	})
	respond.OK(c, gin.H{"text": text})
}
