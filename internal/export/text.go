package export

import (
	"fmt"
	"strings"
)

// TextExporter renders raw UTF-8 text. Layout-preserved documents get a
// "--- Page N ---" header per page; flat documents are emitted verbatim.
type TextExporter struct{}

func NewText() *TextExporter { return &TextExporter{} }

func (e *TextExporter) Format() string      { return "txt" }
func (e *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }
func (e *TextExporter) Extension() string   { return "txt" }

func (e *TextExporter) Export(doc Document) ([]byte, error) {
	pages, paged := derivePages(doc)
	if !paged {
		return []byte(pages[0].Text), nil
	}
	sections := make([]string, len(pages))
	for i, p := range pages {
		sections[i] = fmt.Sprintf("--- Page %d ---\n\n%s", p.Number, p.Text)
	}
	return []byte(strings.Join(sections, "\n\n")), nil
}
