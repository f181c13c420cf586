package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/AlkamaSunasara00/tranzora-ai/internal/model"
)

// PDFExporter renders a paginated A4 document: a title block on the first
// page, then one PDF page per structure page (or a single page for flat
// text). Margins and font sizes follow the reference output but are
// presentation detail, not contract.
type PDFExporter struct{}

func NewPDF() *PDFExporter { return &PDFExporter{} }

func (e *PDFExporter) Format() string      { return "pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }
func (e *PDFExporter) Extension() string   { return "pdf" }

func (e *PDFExporter) Export(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(true, 40)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(40, 60, "Translation Result")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(40, 80, "Language: "+model.LanguageName(doc.LanguageCode))
	pdf.Text(40, 95, "File: "+doc.FileName)

	pages, paged := derivePages(doc)
	y := 130.0
	for i, p := range pages {
		if i > 0 {
			pdf.AddPage()
			y = 60
		}
		if paged {
			pdf.SetTextColor(150, 150, 150)
			pdf.SetFont("Helvetica", "", 10)
			pdf.Text(40, y, fmt.Sprintf("Page %d", p.Number))
			y += 30
		}
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetXY(40, y-11)
		pdf.MultiCell(515, 14, p.Text, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
