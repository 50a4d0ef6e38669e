package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
)

// Service renders the current document of a language to PDF and archives a
// copy in the object store.
type Service struct {
	Portfolio *portfolio.Service
	Renderer  Renderer
	Store     object.ObjectStore
}

// NewService constructs a Service.
func NewService(p *portfolio.Service, renderer Renderer, store object.ObjectStore) *Service {
	return &Service{Portfolio: p, Renderer: renderer, Store: store}
}

// Export renders the effective document for lang and returns the PDF bytes.
// The admin secret is stripped before rendering. Archival failures are logged
// but do not fail the export.
func (s *Service) Export(ctx context.Context, lang portfolio.Lang) ([]byte, error) {
	lang = portfolio.NormalizeLang(lang)
	doc := s.Portfolio.GetData(ctx, lang)
	doc.AdminConfig = nil

	html, err := RenderHTML(lang, doc)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pdf, err := s.Renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	metrics.ObservePDFRenderMs(float64(time.Since(start).Milliseconds()))

	if s.Store != nil {
		key := fmt.Sprintf("exports/%s/%s.pdf", lang, uuid.NewString())
		if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", bytes.NewReader(pdf)); err != nil {
			telemetry.Error("pdfexport.archive_failed", map[string]any{"lang": lang, "key": key, "error": err.Error()})
		} else {
			telemetry.Info("pdfexport.archived", map[string]any{"lang": lang, "key": key, "bytes": len(pdf)})
		}
	}
	return pdf, nil
}

// FileName returns the download name for an exported PDF.
func FileName(lang portfolio.Lang) string {
	return fmt.Sprintf("resume-%s.pdf", portfolio.NormalizeLang(lang))
}
