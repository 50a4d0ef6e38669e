package portfolio

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed seeds/*.json
var seedFiles embed.FS

var (
	seedOnce sync.Once
	seeds    map[Lang]Document
)

// Seed returns the built-in default document for the given language. It is
// total: unknown languages fall back to English, and the embedded documents
// are validated once at first use. Callers receive an independent copy.
func Seed(lang Lang) Document {
	seedOnce.Do(loadSeeds)
	doc, ok := seeds[NormalizeLang(lang)]
	if !ok {
		doc = seeds[LangEN]
	}
	return doc.Clone()
}

func loadSeeds() {
	seeds = make(map[Lang]Document, len(Languages))
	for _, lang := range Languages {
		raw, err := seedFiles.ReadFile(fmt.Sprintf("seeds/%s.json", lang))
		if err != nil {
			panic(fmt.Sprintf("portfolio: seed %s missing: %v", lang, err))
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			panic(fmt.Sprintf("portfolio: seed %s corrupt: %v", lang, err))
		}
		doc.Normalize()
		if err := doc.Validate(); err != nil {
			panic(fmt.Sprintf("portfolio: seed %s invalid: %v", lang, err))
		}
		seeds[lang] = doc
	}
}
