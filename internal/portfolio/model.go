package portfolio

// Lang identifies a language variant of the portfolio document.
type Lang = string

const (
	LangEN Lang = "en"
	LangAR Lang = "ar"
)

// Languages lists the supported language variants.
var Languages = []Lang{LangEN, LangAR}

// NormalizeLang maps arbitrary input to a supported language, defaulting to English.
func NormalizeLang(raw string) Lang {
	if raw == LangAR {
		return LangAR
	}
	return LangEN
}

// Category classifies a project. CategoryAll is a gallery filter sentinel and
// is not valid on stored projects.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryDesign  Category = "design"
)

// ValidCategory reports whether c may be stored on a project.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryDesktop, CategoryDesign:
		return true
	default:
		return false
	}
}

// Experience is one entry in the work history.
type Experience struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Period      string   `json:"period"`
	Description []string `json:"description"`
}

// Education is one degree or study program.
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Status      string `json:"status"`
}

// Certification is one credential, optionally backed by an image and a
// verification link.
type Certification struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer,omitempty"`
	Image  string `json:"image,omitempty"`
	Link   string `json:"link,omitempty"`
	Date   string `json:"date,omitempty"`
}

// SkillCategory groups related skills under one label.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Project is one portfolio entry. TechStack is a comma-delimited string, as
// authored in the admin UI.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TechStack   string   `json:"techStack"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	Category    Category `json:"category"`
	Image       string   `json:"image,omitempty"`
}

// ThemePalette is a user-defined color palette, additive to the built-in set.
type ThemePalette struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Primary string            `json:"primary"`
	Colors  map[string]string `json:"colors"`
}

// AdminConfig carries the shared admin passphrase. Stored per language
// snapshot; kept consistent by the editor when shared behavior is wanted.
type AdminConfig struct {
	Password string `json:"password,omitempty"`
}

// PersonalInfo holds the owner's identity, contacts and bio. Image may be a
// URL or an inline data URL.
type PersonalInfo struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	LinkedIn      string `json:"linkedin"`
	GitHub        string `json:"github"`
	Facebook      string `json:"facebook"`
	StackOverflow string `json:"stackoverflow"`
	Objective     string `json:"objective"`
	Image         string `json:"image,omitempty"`
	ResumeLink    string `json:"resumeLink,omitempty"`
}

// HeroStrings are the hero-section labels.
type HeroStrings struct {
	Available  string `json:"available"`
	ViewWork   string `json:"viewWork"`
	DownloadCV string `json:"downloadCv"`
	RoleDesc   string `json:"roleDesc"`
}

// ContactFormStrings are the contact form labels and status messages.
type ContactFormStrings struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Send    string `json:"send"`
	Sending string `json:"sending"`
	Success string `json:"success"`
	Error   string `json:"error"`
}

// ContactStrings are the contact section labels.
type ContactStrings struct {
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Desc     string             `json:"desc"`
	Form     ContactFormStrings `json:"form"`
}

// GalleryStrings are the project gallery labels, including the per-category
// filter labels keyed by Category (the "all" key is legitimate here).
type GalleryStrings struct {
	Title    string              `json:"title"`
	Subtitle string              `json:"subtitle"`
	Close    string              `json:"close"`
	Filters  map[Category]string `json:"filters"`
}

// UIStrings is the localization table scoped to one language variant.
type UIStrings struct {
	Nav           map[string]string `json:"nav"`
	Hero          HeroStrings       `json:"hero"`
	SectionTitles map[string]string `json:"sectionTitles"`
	Contact       ContactStrings    `json:"contact"`
	Gallery       GalleryStrings    `json:"gallery"`
	Footer        string            `json:"footer"`
}

// Document is the root aggregate: one full resume document for one language.
// Writes always replace the whole document.
type Document struct {
	AdminConfig    *AdminConfig    `json:"adminConfig,omitempty"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Skills         []SkillCategory `json:"skills"`
	Projects       []Project       `json:"projects"`
	CustomThemes   []ThemePalette  `json:"customThemes,omitempty"`
	UI             UIStrings       `json:"ui"`
}
