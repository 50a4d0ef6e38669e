package pdfexport

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"portfolio-backend/internal/portfolio"
)

//go:embed template.html
var templateHTML string

var resumeTemplate = template.Must(template.New("resume").Parse(templateHTML))

// templateData feeds the resume template. Section headings come from the
// document's own localization table so the Arabic export reads naturally.
type templateData struct {
	Lang portfolio.Lang
	RTL  bool
	Doc  portfolio.Document
}

var headingFallbacks = map[string]string{
	"objective":      "Objective",
	"experience":     "Experience",
	"education":      "Education",
	"skills":         "Skills",
	"projects":       "Projects",
	"certifications": "Certifications",
}

// T resolves a section heading from the document's sectionTitles table.
func (d templateData) T(key string) string {
	if title, ok := d.Doc.UI.SectionTitles[key]; ok && title != "" {
		return title
	}
	return headingFallbacks[key]
}

// RenderHTML renders the document into the printable resume layout.
func RenderHTML(lang portfolio.Lang, doc portfolio.Document) (string, error) {
	data := templateData{
		Lang: lang,
		RTL:  lang == portfolio.LangAR,
		Doc:  doc,
	}
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render resume template: %w", err)
	}
	return buf.String(), nil
}
