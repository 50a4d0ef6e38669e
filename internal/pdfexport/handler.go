package pdfexport

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/server/respond"
)

// Handler exposes the PDF export endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the export route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portfolio/:lang/pdf", h.export)
}

func (h *Handler) export(c *gin.Context) {
	lang := portfolio.NormalizeLang(c.Param("lang"))
	pdf, err := h.Svc.Export(c.Request.Context(), lang)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "pdf_failed", "failed to render PDF", nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FileName(lang)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
