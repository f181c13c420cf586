// Package export serializes a finished translation into one of the
// downloadable destination formats. All formats derive the per-page text
// identically; they differ only in container format.
package export

import (
	"errors"
	"fmt"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

// ErrUnknownFormat is returned for destination formats outside the registry.
var ErrUnknownFormat = errors.New("unknown export format")

// Document is the exporter input: the final session fields an export needs.
type Document struct {
	FileName        string
	LanguageCode    string
	TranslatedText  string
	Structure       *model.DocumentStructure
	LayoutPreserved bool
}

// Exporter serializes a Document into one destination format.
type Exporter interface {
	Format() string
	ContentType() string
	Extension() string
	Export(doc Document) ([]byte, error)
}

// Registry resolves exporters by format name.
type Registry struct {
	byFormat map[string]Exporter
}

// NewRegistry returns a registry pre-loaded with the three supported
// formats: txt, pdf and docx.
func NewRegistry() *Registry {
	r := &Registry{byFormat: map[string]Exporter{}}
	r.Register(NewText())
	r.Register(NewPDF())
	r.Register(NewDOCX())
	return r
}

// Register adds or replaces the exporter for its format.
func (r *Registry) Register(e Exporter) {
	r.byFormat[e.Format()] = e
}

// Get resolves a format name.
func (r *Registry) Get(format string) (Exporter, error) {
	e, ok := r.byFormat[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return e, nil
}

// Filename builds the download name for an export: translation_<code>.<ext>.
func Filename(languageCode string, e Exporter) string {
	return fmt.Sprintf("translation_%s.%s", languageCode, e.Extension())
}

// pageText is one destination page's translated content.
type pageText struct {
	Number int
	Text   string
}

// derivePages is the single source of truth for which text each destination
// page contains. Layout-preserved sessions yield one entry per structure
// page; everything else yields the flat translated text as a single page.
func derivePages(doc Document) (pages []pageText, paged bool) {
	if doc.LayoutPreserved && doc.Structure != nil {
		pages = make([]pageText, len(doc.Structure.Pages))
		for i, p := range doc.Structure.Pages {
			pages[i] = pageText{Number: p.PageNumber, Text: p.TranslatedText}
		}
		return pages, true
	}
	return []pageText{{Number: 1, Text: doc.TranslatedText}}, false
}
