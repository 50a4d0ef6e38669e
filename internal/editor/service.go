package editor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
)

// MaxImageBytes is the ceiling for inline-encoded profile, project and
// certification images.
const MaxImageBytes = 1 << 20

// MinPasswordLen is the minimum admin password length.
const MinPasswordLen = 4

// Service manages admin edit sessions: drafts opened from the current
// document, mutated through structured operations and committed atomically.
// Store, when set, archives the original bytes of uploaded images.
type Service struct {
	Portfolio *portfolio.Service
	LLM       llm.Client
	Store     object.ObjectStore

	registry *sessionRegistry
}

// NewService constructs a Service with the default session TTL.
func NewService(p *portfolio.Service, client llm.Client, store object.ObjectStore) *Service {
	return &Service{
		Portfolio: p,
		LLM:       client,
		Store:     store,
		registry:  newSessionRegistry(DefaultSessionTTL),
	}
}

// Open deep-copies the current document for lang into a fresh draft.
func (s *Service) Open(ctx context.Context, lang portfolio.Lang) *Session {
	lang = portfolio.NormalizeLang(lang)
	draft := s.Portfolio.GetData(ctx, lang)
	if draft.AdminConfig.Password == "" {
		draft.AdminConfig.Password = portfolio.FallbackAdminPassword
	}
	return s.registry.create(lang, draft)
}

// Get returns a snapshot of the session's draft.
func (s *Service) Get(id string) (*Session, error) {
	var out *Session
	err := s.registry.withSession(id, func(sess *Session) error {
		cp := *sess
		cp.Draft = sess.Draft.Clone()
		out = &cp
		return nil
	})
	return out, err
}

// UpdatePersonalInfo applies the given merge function to the draft's
// personal info.
func (s *Service) UpdatePersonalInfo(id string, apply func(*portfolio.PersonalInfo) error) error {
	return s.registry.withSession(id, func(sess *Session) error {
		return apply(&sess.Draft.PersonalInfo)
	})
}

// AddItem prepends a defaulted item with a fresh id to the named collection
// and returns the new item.
func (s *Service) AddItem(id, collection string) (any, error) {
	var item any
	err := s.registry.withSession(id, func(sess *Session) error {
		switch collection {
		case "experience":
			it := portfolio.Experience{ID: uuid.NewString(), Role: "New Role", Company: "Company", Period: "", Description: []string{}}
			sess.Draft.Experience = portfolio.Prepend(sess.Draft.Experience, it)
			item = it
		case "education":
			it := portfolio.Education{ID: uuid.NewString(), Degree: "New Degree", Institution: "Institution"}
			sess.Draft.Education = portfolio.Prepend(sess.Draft.Education, it)
			item = it
		case "certifications":
			it := portfolio.Certification{ID: uuid.NewString(), Title: "New Certification"}
			sess.Draft.Certifications = portfolio.Prepend(sess.Draft.Certifications, it)
			item = it
		case "projects":
			it := portfolio.Project{ID: uuid.NewString(), Title: "New Project", Category: portfolio.CategoryWeb}
			sess.Draft.Projects = portfolio.Prepend(sess.Draft.Projects, it)
			item = it
		case "skills":
			it := portfolio.SkillCategory{Category: "New Category", Skills: []string{}}
			sess.Draft.Skills = portfolio.Prepend(sess.Draft.Skills, it)
			item = it
		default:
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}
		return nil
	})
	return item, err
}

// UpdateItem overlays the raw JSON payload onto the item at idx. The item's
// id is kept; a project update with a non-concrete category is rejected.
func (s *Service) UpdateItem(id, collection string, idx int, raw json.RawMessage) error {
	return s.registry.withSession(id, func(sess *Session) error {
		switch collection {
		case "experience":
			return patchAt(sess.Draft.Experience, idx, raw, func(it *portfolio.Experience, prev portfolio.Experience) error {
				it.ID = prev.ID
				return nil
			})
		case "education":
			return patchAt(sess.Draft.Education, idx, raw, func(it *portfolio.Education, prev portfolio.Education) error {
				it.ID = prev.ID
				return nil
			})
		case "certifications":
			return patchAt(sess.Draft.Certifications, idx, raw, func(it *portfolio.Certification, prev portfolio.Certification) error {
				it.ID = prev.ID
				return nil
			})
		case "projects":
			return patchAt(sess.Draft.Projects, idx, raw, func(it *portfolio.Project, prev portfolio.Project) error {
				it.ID = prev.ID
				if !portfolio.ValidCategory(it.Category) {
					return fmt.Errorf("%w: category %q", portfolio.ErrInvalidDocument, it.Category)
				}
				return nil
			})
		case "skills":
			return patchAt(sess.Draft.Skills, idx, raw, func(it *portfolio.SkillCategory, prev portfolio.SkillCategory) error {
				return nil
			})
		default:
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}
	})
}

// patchAt unmarshals raw over an independent copy of items[idx] and writes it
// back once finish approves the result. The copy goes through a JSON round
// trip so its nested slices share no backing array with the draft; a payload
// rejected mid-decode (or by finish) therefore leaves the slice untouched.
func patchAt[T any](items []T, idx int, raw json.RawMessage, finish func(*T, T) error) error {
	if idx < 0 || idx >= len(items) {
		return fmt.Errorf("%w: %d of %d", portfolio.ErrIndexOutOfRange, idx, len(items))
	}
	prev := items[idx]
	snapshot, err := json.Marshal(prev)
	if err != nil {
		return fmt.Errorf("%w: %v", portfolio.ErrInvalidDocument, err)
	}
	var next T
	if err := json.Unmarshal(snapshot, &next); err != nil {
		return fmt.Errorf("%w: %v", portfolio.ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("%w: %v", portfolio.ErrInvalidDocument, err)
	}
	if err := finish(&next, prev); err != nil {
		return err
	}
	items[idx] = next
	return nil
}

// RemoveItem deletes the item at idx, preserving the order of the rest.
func (s *Service) RemoveItem(id, collection string, idx int) error {
	return s.registry.withSession(id, func(sess *Session) error {
		var err error
		switch collection {
		case "experience":
			next, e := portfolio.RemoveAt(sess.Draft.Experience, idx)
			if e == nil {
				sess.Draft.Experience = next
			}
			err = e
		case "education":
			next, e := portfolio.RemoveAt(sess.Draft.Education, idx)
			if e == nil {
				sess.Draft.Education = next
			}
			err = e
		case "certifications":
			next, e := portfolio.RemoveAt(sess.Draft.Certifications, idx)
			if e == nil {
				sess.Draft.Certifications = next
			}
			err = e
		case "projects":
			next, e := portfolio.RemoveAt(sess.Draft.Projects, idx)
			if e == nil {
				sess.Draft.Projects = next
			}
			err = e
		case "skills":
			next, e := portfolio.RemoveAt(sess.Draft.Skills, idx)
			if e == nil {
				sess.Draft.Skills = next
			}
			err = e
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}
		return err
	})
}

// SetImage inline-encodes the payload as a data URL onto the target image
// field. Payloads over MaxImageBytes are rejected before any mutation. When a
// store is configured the original bytes are archived under media/<lang> and
// the storage key is returned; archival failures are logged, not surfaced.
func (s *Service) SetImage(ctx context.Context, id, target, fileName, mimeType string, data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), MaxImageBytes)
	}
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	kind, idx, err := parseImageTarget(target)
	if err != nil {
		return "", err
	}
	var lang portfolio.Lang
	err = s.registry.withSession(id, func(sess *Session) error {
		lang = sess.Lang
		switch kind {
		case "profile":
			sess.Draft.PersonalInfo.Image = dataURL
			return nil
		case "project":
			return portfolio.UpdateAt(sess.Draft.Projects, idx, func(p *portfolio.Project) {
				p.Image = dataURL
			})
		case "certification":
			return portfolio.UpdateAt(sess.Draft.Certifications, idx, func(c *portfolio.Certification) {
				c.Image = dataURL
			})
		default:
			return fmt.Errorf("%w: %s", ErrUnknownImageTarget, target)
		}
	})
	if err != nil {
		return "", err
	}
	return s.archiveMedia(ctx, lang, fileName, data), nil
}

func (s *Service) archiveMedia(ctx context.Context, lang portfolio.Lang, fileName string, data []byte) string {
	if s.Store == nil {
		return ""
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = "image"
	}
	key, size, mimeType, err := s.Store.Save(ctx, "media/"+lang, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("editor.media_archive_failed", map[string]any{"lang": lang, "file": fileName, "error": err.Error()})
		return ""
	}
	telemetry.Info("editor.media_archived", map[string]any{"lang": lang, "key": key, "bytes": size, "mime": mimeType})
	return key
}

// OpenMedia streams a previously archived original back to the caller.
func (s *Service) OpenMedia(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("%w: no store configured", ErrMediaNotFound)
	}
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMediaNotFound, key)
	}
	return rc, nil
}

func parseImageTarget(target string) (kind string, idx int, err error) {
	if target == "profile" {
		return "profile", 0, nil
	}
	parts := strings.SplitN(target, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: %s", ErrUnknownImageTarget, target)
	}
	switch parts[0] {
	case "project", "certification":
	default:
		return "", 0, fmt.Errorf("%w: %s", ErrUnknownImageTarget, target)
	}
	idx, convErr := strconv.Atoi(parts[1])
	if convErr != nil || idx < 0 {
		return "", 0, fmt.Errorf("%w: %s", ErrUnknownImageTarget, target)
	}
	return parts[0], idx, nil
}

// ChangePassword rotates the draft's admin password. The old password must
// equal the draft's effective password, new and confirm must match exactly
// and the new password must be at least MinPasswordLen characters. On any
// failure the draft is left untouched.
func (s *Service) ChangePassword(id, oldPassword, newPassword, confirm string) error {
	return s.registry.withSession(id, func(sess *Session) error {
		if oldPassword != sess.Draft.EffectivePassword() {
			return ErrWrongOldPassword
		}
		if newPassword != confirm {
			return ErrPasswordMismatch
		}
		if len(newPassword) < MinPasswordLen {
			return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLen)
		}
		sess.Draft.AdminConfig.Password = newPassword
		return nil
	})
}

// Commit persists the whole draft through the facade. Either the full draft
// becomes the new authoritative document or nothing changes.
func (s *Service) Commit(ctx context.Context, id string) error {
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
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.Portfolio.SaveData(ctx, lang, draft)
}

// Discard drops the draft. The authoritative document is untouched.
func (s *Service) Discard(id string) error {
	if !s.registry.drop(id) {
		return ErrSessionNotFound
	}
	return nil
}

// sessionView is the wire shape of a session.
type sessionView struct {
	ID        string             `json:"id"`
	Lang      portfolio.Lang     `json:"lang"`
	CreatedAt time.Time          `json:"createdAt"`
	Draft     portfolio.Document `json:"draft"`
}
