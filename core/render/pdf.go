// PDF renderer.
// Lays the crawl report out as a simple printable listing using gofpdf.
// Text goes through gofpdf's cp1252 translator; characters outside that
// code page do not survive.

package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/titlecrawl/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders the crawl report as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render writes one entry per visited URL in ascending order: title, URL,
// and the page status when it was not fetched cleanly.
func (r *PDFRenderer) Render(report *core.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr("Crawl report"), "", "L", false)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Seed: %s  (%d pages)", report.Seed, len(report.Titles))), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pages := statusByURL(report)
	for _, u := range SortedURLs(report.Titles) {
		title := report.Titles[u]
		if title == "" {
			title = "(no title)"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 5.5, tr(title), "", "L", false)

		pdf.SetFont("Courier", "", 8)
		pdf.MultiCell(0, 4, tr(u), "", "L", false)

		if p, ok := pages[u]; ok && p.Status != core.StatusOK {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(160, 0, 0)
			pdf.MultiCell(0, 4, tr(statusLine(p)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func statusLine(p core.PageRecord) string {
	switch {
	case p.Error != "":
		return fmt.Sprintf("%s: %s", p.Status, p.Error)
	case p.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d %s", p.Status, p.StatusCode, p.ContentType)
	default:
		return string(p.Status)
	}
}
