// Package render provides output renderers for crawl reports.
// This file implements the Markdown renderer: the report is laid out as an
// HTML link list and converted with html-to-markdown.
package render

import (
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/titlecrawl/core"
)

// MarkdownRenderer writes the report as a Markdown link list.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render lists every visited URL in ascending order, linked under its title.
// Pages without a title use the URL as link text.
func (r *MarkdownRenderer) Render(report *core.Report) ([]byte, error) {
	markdown, err := htmltomarkdown.ConvertString(reportHTML(report))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// reportHTML lays the report out as an HTML fragment.
func reportHTML(report *core.Report) string {
	pages := statusByURL(report)

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString("Titles: "+report.Seed))
	fmt.Fprintf(&b, "<p>%d pages</p>\n<ul>\n", len(report.Titles))
	for _, u := range SortedURLs(report.Titles) {
		text := report.Titles[u]
		if text == "" {
			text = u
		}
		fmt.Fprintf(&b, `<li><a href="%s">%s</a>`, html.EscapeString(u), html.EscapeString(text))
		if p, ok := pages[u]; ok && p.Status != core.StatusOK {
			fmt.Fprintf(&b, " <em>(%s)</em>", html.EscapeString(string(p.Status)))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
