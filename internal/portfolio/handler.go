package portfolio

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public portfolio routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.events)
	rg.GET("/portfolio/:lang", h.get)
	rg.GET("/portfolio/:lang/export", h.export)
}

// RegisterAdminRoutes attaches mutating routes; callers gate them.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/portfolio/:lang/reset", h.reset)
}

func (h *Handler) get(c *gin.Context) {
	doc := h.Svc.GetData(c.Request.Context(), c.Param("lang"))
	// The admin secret never leaves through the public read surface.
	doc.AdminConfig = nil
	respond.OK(c, doc)
}

func (h *Handler) export(c *gin.Context) {
	lang := NormalizeLang(c.Param("lang"))
	raw, err := h.Svc.ExportData(c.Request.Context(), lang)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export document", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName(lang)))
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) reset(c *gin.Context) {
	lang := NormalizeLang(c.Param("lang"))
	if err := h.Svc.ResetData(c.Request.Context(), lang); err != nil {
		switch {
		case errors.Is(err, ErrStoreUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to reset document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset document", nil)
		}
		return
	}
	respond.OK(c, gin.H{"lang": lang, "reset": true})
}

// events streams the change signal as server-sent events. The event carries
// no payload; clients re-fetch the document on each tick.
func (h *Handler) events(c *gin.Context) {
	ch, cancel := h.Svc.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ch:
			c.SSEvent("message", "updated")
			return true
		}
	})
}
