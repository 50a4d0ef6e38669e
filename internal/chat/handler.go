package chat

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

// MaxAttachmentBytes is the ceiling for chat attachments.
const MaxAttachmentBytes = 2 << 20

// Handler exposes the visitor chat endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the chat route, rate-limited per client.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", middleware.RateLimit(30, 10), h.ask)
}

func (h *Handler) ask(c *gin.Context) {
	message, attachmentText, ok := h.readInput(c)
	if !ok {
		return
	}

	answer, err := h.Svc.Ask(c.Request.Context(), message, attachmentText)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "invalid_request", "message is required", nil)
		case errors.Is(err, llm.ErrNotImplemented):
			respond.Error(c, http.StatusServiceUnavailable, "chat_unavailable", "chat is not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "chat_failed", "could not get an answer", nil)
		}
		return
	}
	respond.OK(c, gin.H{"answer": answer})
}

// readInput accepts a JSON body {message} or a multipart form with a message
// field and an optional PDF/DOCX file.
func (h *Handler) readInput(c *gin.Context) (message, attachmentText string, ok bool) {
	if c.ContentType() != "multipart/form-data" {
		var req struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be JSON with a message field", nil)
			return "", "", false
		}
		return req.Message, "", true
	}

	message = c.PostForm("message")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return message, "", true
	}
	if fileHeader.Size > MaxAttachmentBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "attachment_too_large", "attachment exceeds the 2 MiB ceiling", nil)
		return "", "", false
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read attachment", nil)
		return "", "", false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxAttachmentBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read attachment", nil)
		return "", "", false
	}
	text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from attachment", nil)
		return "", "", false
	}
	return message, text, true
}
