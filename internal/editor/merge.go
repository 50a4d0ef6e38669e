package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/telemetry"
)

// maxSampleBytes caps the draft sample sent to the rewrite model.
const maxSampleBytes = 5000

// candidate mirrors Document with pointer sections, so an omitted section is
// distinguishable from an empty one.
type candidate struct {
	AdminConfig    *portfolio.AdminConfig     `json:"adminConfig"`
	PersonalInfo   *portfolio.PersonalInfo    `json:"personalInfo"`
	Experience     *[]portfolio.Experience    `json:"experience"`
	Education      *[]portfolio.Education     `json:"education"`
	Certifications *[]portfolio.Certification `json:"certifications"`
	Skills         *[]portfolio.SkillCategory `json:"skills"`
	Projects       *[]portfolio.Project       `json:"projects"`
	CustomThemes   *[]portfolio.ThemePalette  `json:"customThemes"`
	UI             *portfolio.UIStrings       `json:"ui"`
}

// AIUpdate sends the free text plus a truncated draft sample to the rewrite
// model and merges the response into the draft section by section. A response
// without a usable personalInfo is rejected outright and the draft is left
// unchanged. The draft's adminConfig, profile image and resume link survive
// the merge even when the response omits them.
func (s *Service) AIUpdate(ctx context.Context, id, freeText string) error {
	if s.LLM == nil {
		return llm.ErrNotImplemented
	}

	var (
		lang  portfolio.Lang
		draft portfolio.Document
	)
	if err := s.registry.withSession(id, func(sess *Session) error {
		lang = sess.Lang
		draft = sess.Draft.Clone()
		return nil
	}); err != nil {
		return err
	}

	sample, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft sample: %w", err)
	}
	if len(sample) > maxSampleBytes {
		sample = sample[:maxSampleBytes]
	}

	raw, err := s.LLM.RewritePortfolio(ctx, llm.RewriteInput{
		Document:    sample,
		Instruction: freeText,
		Lang:        lang,
	})
	if err != nil {
		metrics.IncAIMergeFailed()
		telemetry.Error("editor.ai_rewrite_failed", map[string]any{"lang": lang, "error": err.Error()})
		return fmt.Errorf("%w: %v", ErrInvalidMergeResponse, err)
	}

	merged, err := mergeCandidate(draft, raw)
	if err != nil {
		metrics.IncAIMergeFailed()
		telemetry.Error("editor.ai_merge_rejected", map[string]any{"lang": lang, "error": err.Error()})
		return err
	}

	if err := s.registry.withSession(id, func(sess *Session) error {
		sess.Draft = merged
		return nil
	}); err != nil {
		return err
	}
	metrics.IncAIMerge()
	telemetry.Info("editor.ai_merge", map[string]any{"lang": lang})
	return nil
}

// mergeCandidate overlays the candidate document onto the draft. Sections the
// candidate omits or that fail validation keep the draft's values.
func mergeCandidate(draft portfolio.Document, raw json.RawMessage) (portfolio.Document, error) {
	var cand candidate
	if err := json.Unmarshal(raw, &cand); err != nil {
		return portfolio.Document{}, fmt.Errorf("%w: %v", ErrInvalidMergeResponse, err)
	}
	if cand.PersonalInfo == nil || strings.TrimSpace(cand.PersonalInfo.Name) == "" {
		return portfolio.Document{}, fmt.Errorf("%w: missing personalInfo", ErrInvalidMergeResponse)
	}

	merged := draft.Clone()

	info := *cand.PersonalInfo
	if strings.TrimSpace(info.Image) == "" {
		info.Image = draft.PersonalInfo.Image
	}
	if strings.TrimSpace(info.ResumeLink) == "" {
		info.ResumeLink = draft.PersonalInfo.ResumeLink
	}
	merged.PersonalInfo = info

	// merged keeps the draft's adminConfig; the model never gets to rotate
	// the admin secret, whether it echoed one back or not.

	if cand.Experience != nil {
		merged.Experience = fillIDs(*cand.Experience, func(e *portfolio.Experience) *string { return &e.ID })
	}
	if cand.Education != nil {
		merged.Education = fillIDs(*cand.Education, func(e *portfolio.Education) *string { return &e.ID })
	}
	if cand.Certifications != nil {
		merged.Certifications = fillIDs(*cand.Certifications, func(c *portfolio.Certification) *string { return &c.ID })
	}
	if cand.Skills != nil {
		merged.Skills = *cand.Skills
	}
	if cand.Projects != nil {
		projects := fillIDs(*cand.Projects, func(p *portfolio.Project) *string { return &p.ID })
		ok := true
		for _, p := range projects {
			if !portfolio.ValidCategory(p.Category) {
				ok = false
				break
			}
		}
		if ok {
			merged.Projects = projects
		}
	}
	if cand.CustomThemes != nil {
		merged.CustomThemes = *cand.CustomThemes
	}
	if cand.UI != nil {
		merged.UI = *cand.UI
	}

	merged.Normalize()
	if err := merged.Validate(); err != nil {
		return portfolio.Document{}, fmt.Errorf("%w: %v", ErrInvalidMergeResponse, err)
	}
	return merged, nil
}

// fillIDs assigns fresh ids to items the model returned without one.
func fillIDs[T any](items []T, idOf func(*T) *string) []T {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		id := idOf(&items[i])
		if *id == "" {
			*id = uuid.NewString()
		}
		if _, dup := seen[*id]; dup {
			*id = uuid.NewString()
		}
		seen[*id] = struct{}{}
	}
	return items
}
