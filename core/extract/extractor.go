// Package extract pulls the page title and navigational links out of raw HTML.
// Comment nodes are removed before anything is read, so markup that was
// commented out never contributes a title or a link.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/titlecrawl/core/normalize"
	"golang.org/x/net/html"
)

// skippedPrefixes are href prefixes that never lead to another page.
// Matching is case-sensitive on the trimmed value.
var skippedPrefixes = []string{"javascript:", "mailto:", "tel:", "#"}

// HTMLExtractor reads titles and anchors with goquery.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Page parses the document once and returns both its title and its links.
func (e *HTMLExtractor) Page(rawHTML string, baseURL string) (string, []string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return "", nil, err
	}
	links, err := links(doc, baseURL)
	if err != nil {
		return "", nil, err
	}
	return title(doc), links, nil
}

// Title returns the trimmed text of the first <title> element, or "" if
// the document has none.
func (e *HTMLExtractor) Title(rawHTML string) (string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return "", err
	}
	return title(doc), nil
}

// Links returns the absolute URLs of all anchors in the document, resolved
// against baseURL, deduplicated and in document order. Fragments are left
// intact.
func (e *HTMLExtractor) Links(rawHTML string, baseURL string) ([]string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}
	return links(doc, baseURL)
}

func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, n := range doc.Nodes {
		stripComments(n)
	}
	return doc, nil
}

// stripComments detaches every comment node below n.
func stripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			stripComments(c)
		}
		c = next
	}
}

func title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func links(doc *goquery.Document, baseURL string) ([]string, error) {
	base, err := normalize.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	seen := make(map[string]bool)
	var out []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := resolveURL(strings.TrimSpace(href), base)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	})

	return out, nil
}

// resolveURL resolves href against base, returning "" for hrefs that are
// skipped or cannot be parsed. The result keeps the characters of href and
// base as written; nothing is percent-encoded or decoded.
func resolveURL(href string, base *url.URL) string {
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(href, prefix) {
			return ""
		}
	}

	parsed, err := normalize.Parse(href)
	if err != nil {
		return ""
	}
	return normalize.String(base.ResolveReference(parsed))
}
