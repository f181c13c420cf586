package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

// DOCXExporter renders a word-processor document structurally equivalent to
// the PDF export: title block, then one section per structure page with
// explicit page breaks between, each line becoming one paragraph.
type DOCXExporter struct{}

func NewDOCX() *DOCXExporter { return &DOCXExporter{} }

func (e *DOCXExporter) Format() string { return "docx" }
func (e *DOCXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}
func (e *DOCXExporter) Extension() string { return "docx" }

func (e *DOCXExporter) Export(doc Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText("Translation Result").Size("32").Bold()
	w.AddParagraph().AddText("Language: " + model.LanguageName(doc.LanguageCode)).Size("24").Italic()
	w.AddParagraph().AddText("File: " + doc.FileName).Size("24").Italic()
	w.AddParagraph()

	pages, paged := derivePages(doc)
	for i, p := range pages {
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}
		if paged {
			w.AddParagraph().AddText(fmt.Sprintf("Page %d", p.Number)).Size("24").Bold()
			w.AddParagraph()
		}
		for _, line := range strings.Split(p.Text, "\n") {
			para := w.AddParagraph()
			if line != "" {
				para.AddText(line).Size("22")
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}
