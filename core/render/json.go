// JSON renderer.
// Produces the persisted URL → title object: keys in ascending order,
// two-space indentation, non-ASCII and HTML characters written as-is.

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gaurav-prasanna/titlecrawl/core"
)

// JSONRenderer produces the URL → title mapping as JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes report.Titles. Failed and titleless pages both map to "".
func (r *JSONRenderer) Render(report *core.Report) ([]byte, error) {
	titles := report.Titles
	if titles == nil {
		titles = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// encoding/json sorts map keys.
	if err := enc.Encode(titles); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// SortedURLs returns the keys of titles in ascending order.
func SortedURLs(titles map[string]string) []string {
	urls := make([]string, 0, len(titles))
	for u := range titles {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// statusByURL indexes the page records of a report.
func statusByURL(report *core.Report) map[string]core.PageRecord {
	out := make(map[string]core.PageRecord, len(report.Pages))
	for _, p := range report.Pages {
		out[p.URL] = p
	}
	return out
}
