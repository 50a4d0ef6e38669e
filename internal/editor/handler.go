package editor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/server/respond"
)

// MaxAttachmentBytes is the ceiling for rewrite attachments (PDF/DOCX).
const MaxAttachmentBytes = 2 << 20

var collections = []string{"experience", "education", "certifications", "projects", "skills"}

// Handler wires the edit-session HTTP surface. All routes are admin-gated by
// the router.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches edit-session routes to the (gated) router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/sessions", h.open)
	rg.GET("/admin/sessions/:id", h.get)
	rg.DELETE("/admin/sessions/:id", h.discard)
	rg.PUT("/admin/sessions/:id/personal-info", h.updatePersonalInfo)
	rg.POST("/admin/sessions/:id/images", h.setImage)
	rg.POST("/admin/sessions/:id/password", h.changePassword)
	rg.POST("/admin/sessions/:id/ai-update", h.aiUpdate)
	rg.POST("/admin/sessions/:id/commit", h.commit)
	rg.GET("/admin/media/*key", h.media)

	for _, col := range collections {
		col := col
		rg.POST("/admin/sessions/:id/"+col, func(c *gin.Context) { h.addItem(c, col) })
		rg.PUT("/admin/sessions/:id/"+col+"/:index", func(c *gin.Context) { h.updateItem(c, col) })
		rg.DELETE("/admin/sessions/:id/"+col+"/:index", func(c *gin.Context) { h.removeItem(c, col) })
	}
}

type openRequest struct {
	Lang string `json:"lang"`
}

func (h *Handler) open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be JSON with a lang field", nil)
		return
	}
	sess := h.Svc.Open(c.Request.Context(), portfolio.NormalizeLang(req.Lang))
	respond.JSON(c, http.StatusCreated, toView(sess))
}

func (h *Handler) get(c *gin.Context) {
	sess, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toView(sess))
}

func (h *Handler) discard(c *gin.Context) {
	if err := h.Svc.Discard(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"discarded": true})
}

func (h *Handler) updatePersonalInfo(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be a JSON object", nil)
		return
	}
	err = h.Svc.UpdatePersonalInfo(c.Param("id"), func(info *portfolio.PersonalInfo) error {
		next := *info
		if err := json.Unmarshal(body, &next); err != nil {
			return errors.Join(portfolio.ErrInvalidDocument, err)
		}
		*info = next
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.get(c)
}

func (h *Handler) addItem(c *gin.Context, collection string) {
	item, err := h.Svc.AddItem(c.Param("id"), collection)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) updateItem(c *gin.Context, collection string) {
	idx, ok := parseIndex(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be a JSON object", nil)
		return
	}
	if err := h.Svc.UpdateItem(c.Param("id"), collection, idx, body); err != nil {
		h.fail(c, err)
		return
	}
	h.get(c)
}

func (h *Handler) removeItem(c *gin.Context, collection string) {
	idx, ok := parseIndex(c)
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(c.Param("id"), collection, idx); err != nil {
		h.fail(c, err)
		return
	}
	h.get(c)
}

func (h *Handler) setImage(c *gin.Context) {
	target := c.PostForm("target")
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "multipart image field is required", nil)
		return
	}
	if fileHeader.Size > MaxImageBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "image_too_large", "image exceeds the 1 MiB ceiling", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read image", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read image", nil)
		return
	}
	key, err := h.Svc.SetImage(c.Request.Context(), c.Param("id"), target, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.fail(c, err)
		return
	}
	sess, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"mediaKey": key, "session": toView(sess)})
}

// media streams an archived upload back to the admin.
func (h *Handler) media(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, err := h.Svc.OpenMedia(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not read media", nil)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

type passwordRequest struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be JSON with old, new and confirm fields", nil)
		return
	}
	if err := h.Svc.ChangePassword(c.Param("id"), req.Old, req.New, req.Confirm); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"changed": true})
}

func (h *Handler) aiUpdate(c *gin.Context) {
	text, ok := h.readAIUpdateInput(c)
	if !ok {
		return
	}
	if strings.TrimSpace(text) == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "text is required", nil)
		return
	}
	if err := h.Svc.AIUpdate(c.Request.Context(), c.Param("id"), text); err != nil {
		h.fail(c, err)
		return
	}
	h.get(c)
}

// readAIUpdateInput accepts either a JSON body {text} or a multipart form
// with a text field and an optional PDF/DOCX file whose extracted text is
// appended to the instruction.
func (h *Handler) readAIUpdateInput(c *gin.Context) (string, bool) {
	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		text := c.PostForm("text")
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return text, true
		}
		if fileHeader.Size > MaxAttachmentBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, "attachment_too_large", "attachment exceeds the 2 MiB ceiling", nil)
			return "", false
		}
		f, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read attachment", nil)
			return "", false
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, MaxAttachmentBytes+1))
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read attachment", nil)
			return "", false
		}
		extracted, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
		if err != nil {
			respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from attachment", nil)
			return "", false
		}
		if text != "" {
			return text + "\n\n" + extracted, true
		}
		return extracted, true
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "body must be JSON with a text field", nil)
		return "", false
	}
	return req.Text, true
}

func (h *Handler) commit(c *gin.Context) {
	if err := h.Svc.Commit(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"committed": true})
}

func parseIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "index must be an integer", nil)
		return 0, false
	}
	return idx, true
}

func toView(sess *Session) sessionView {
	return sessionView{
		ID:        sess.ID,
		Lang:      sess.Lang,
		CreatedAt: sess.CreatedAt,
		Draft:     sess.Draft,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		respond.Error(c, http.StatusNotFound, "session_not_found", "edit session not found", nil)
	case errors.Is(err, ErrImageTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "image_too_large", "image exceeds the 1 MiB ceiling", nil)
	case errors.Is(err, ErrWrongOldPassword):
		respond.Error(c, http.StatusForbidden, "wrong_old_password", "old password does not match", nil)
	case errors.Is(err, ErrPasswordMismatch):
		respond.Error(c, http.StatusBadRequest, "password_mismatch", "new password and confirmation do not match", nil)
	case errors.Is(err, ErrPasswordTooShort):
		respond.Error(c, http.StatusBadRequest, "password_too_short", "new password must be at least 4 characters", nil)
	case errors.Is(err, ErrMediaNotFound):
		respond.Error(c, http.StatusNotFound, "media_not_found", "archived media not found", nil)
	case errors.Is(err, ErrUnknownCollection), errors.Is(err, ErrUnknownImageTarget):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, portfolio.ErrIndexOutOfRange):
		respond.Error(c, http.StatusBadRequest, "index_out_of_range", err.Error(), nil)
	case errors.Is(err, portfolio.ErrInvalidDocument):
		respond.Error(c, http.StatusBadRequest, "invalid_document", err.Error(), nil)
	case errors.Is(err, ErrInvalidMergeResponse), errors.Is(err, llm.ErrNotImplemented):
		respond.Error(c, http.StatusBadGateway, "ai_rejected", "rewrite response was rejected", nil)
	case errors.Is(err, portfolio.ErrStoreUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to persist document", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
