package portfolio

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/telemetry"
)

// Service is the single entry point for "the current document of language L".
// Reads always hit the repo so that every caller observes writes made by any
// other caller within the same runtime (read-after-write consistency); there
// is deliberately no cache in front of the repo.
type Service struct {
	Repo     Repo
	Notifier *Notifier
}

// NewService constructs a Service with its own notifier.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Notifier: NewNotifier()}
}

// GetData returns the persisted override for lang if present, else the seed.
// Total: storage and decode failures are logged and fall back to the seed.
func (s *Service) GetData(ctx context.Context, lang Lang) Document {
	lang = NormalizeLang(lang)
	raw, ok, err := s.Repo.Load(ctx, lang)
	if err != nil {
		telemetry.Error("portfolio.load_failed", map[string]any{"lang": lang, "error": err.Error()})
		return Seed(lang)
	}
	if !ok {
		return Seed(lang)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		telemetry.Error("portfolio.stored_document_corrupt", map[string]any{"lang": lang, "error": err.Error()})
		return Seed(lang)
	}
	doc.Normalize()
	return doc
}

// SaveData replaces the override for lang with the whole document and raises
// the change signal. On failure nothing is stored and the caller's in-memory
// copy remains the only copy of the attempted change.
func (s *Service) SaveData(ctx context.Context, lang Lang, doc Document) error {
	lang = NormalizeLang(lang)
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.Repo.Save(ctx, lang, raw); err != nil {
		telemetry.Error("portfolio.save_failed", map[string]any{"lang": lang, "error": err.Error()})
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	metrics.IncPortfolioSave()
	s.Notifier.Notify()
	return nil
}

// ResetData removes the override for lang, reverting to the seed, and raises
// the change signal.
func (s *Service) ResetData(ctx context.Context, lang Lang) error {
	lang = NormalizeLang(lang)
	if err := s.Repo.Delete(ctx, lang); err != nil {
		telemetry.Error("portfolio.reset_failed", map[string]any{"lang": lang, "error": err.Error()})
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	metrics.IncPortfolioReset()
	s.Notifier.Notify()
	return nil
}

// ExportData serializes the effective document for lang as pretty-printed
// JSON. Pure read, no mutation, no signal. The admin secret is stripped: the
// export endpoint is public and the password mints admin tokens.
func (s *Service) ExportData(ctx context.Context, lang Lang) ([]byte, error) {
	doc := s.GetData(ctx, lang)
	doc.AdminConfig = nil
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	metrics.IncPortfolioExport()
	return raw, nil
}

// ExportFileName returns the download name for an export artifact.
func ExportFileName(lang Lang) string {
	return fmt.Sprintf("portfolio-data-%s.json", NormalizeLang(lang))
}

// Subscribe registers a change-signal listener.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	return s.Notifier.Subscribe()
}
