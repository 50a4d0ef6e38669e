package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackAdminPassword is used whenever a document carries no adminConfig
// password. The admin gate is a placeholder access control, not a security
// boundary.
const FallbackAdminPassword = "admin@123"

// Clone returns a structurally independent deep copy of the document.
func (d Document) Clone() Document {
	raw, err := json.Marshal(d)
	if err != nil {
		// Document contains only JSON-encodable fields.
		panic(fmt.Sprintf("portfolio: clone marshal: %v", err))
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("portfolio: clone unmarshal: %v", err))
	}
	return out
}

// Normalize default-fills structures that older persisted documents may
// lack, so a document missing newer optional fields stays usable.
func (d *Document) Normalize() {
	if d.AdminConfig == nil {
		d.AdminConfig = &AdminConfig{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Skills == nil {
		d.Skills = []SkillCategory{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.UI.Nav == nil {
		d.UI.Nav = map[string]string{}
	}
	if d.UI.SectionTitles == nil {
		d.UI.SectionTitles = map[string]string{}
	}
	if d.UI.Gallery.Filters == nil {
		d.UI.Gallery.Filters = map[Category]string{}
	}
}

// EffectivePassword returns the stored admin password or the fallback.
func (d Document) EffectivePassword() string {
	if d.AdminConfig != nil && d.AdminConfig.Password != "" {
		return d.AdminConfig.Password
	}
	return FallbackAdminPassword
}

// Validate checks the structural invariants: ids unique within their
// collection and project categories concrete ("all" is filter-only).
func (d Document) Validate() error {
	if strings.TrimSpace(d.PersonalInfo.Name) == "" {
		return fmt.Errorf("%w: personalInfo.name is required", ErrInvalidDocument)
	}
	if err := uniqueIDs("experience", len(d.Experience), func(i int) string { return d.Experience[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("education", len(d.Education), func(i int) string { return d.Education[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("certifications", len(d.Certifications), func(i int) string { return d.Certifications[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("projects", len(d.Projects), func(i int) string { return d.Projects[i].ID }); err != nil {
		return err
	}
	for i, p := range d.Projects {
		if !ValidCategory(p.Category) {
			return fmt.Errorf("%w: projects[%d].category %q", ErrInvalidDocument, i, p.Category)
		}
	}
	return nil
}

func uniqueIDs(field string, n int, idAt func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == "" {
			return fmt.Errorf("%w: %s[%d].id is empty", ErrInvalidDocument, field, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s id %q duplicated", ErrInvalidDocument, field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
