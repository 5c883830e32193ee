// Package core defines the shared types and collaborator interfaces for titlecrawl.
// The crawl engine talks to each stage through one of these interfaces so
// that tests can swap in fakes.
package core

import (
	"context"
	"fmt"
	"time"
)

// FetchResult holds the raw response of a fetch. Non-2xx responses are
// reported here rather than as errors.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string // decoded as UTF-8
}

// TransportError reports a fetch that produced no HTTP response at all
// (DNS failure, refused connection, timeout, truncated body).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PageStatus classifies how a visited page was handled.
type PageStatus string

const (
	StatusOK             PageStatus = "ok"
	StatusHTTPError      PageStatus = "http_error"
	StatusNotHTML        PageStatus = "not_html"
	StatusTransportError PageStatus = "transport_error"
	StatusParseError     PageStatus = "parse_error"
)

// PageRecord is the outcome of visiting one URL.
type PageRecord struct {
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Status      PageStatus    `json:"status"`
	StatusCode  int           `json:"status_code,omitempty"`
	ContentType string        `json:"content_type,omitempty"`
	Error       string        `json:"error,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Duration    time.Duration `json:"duration"`
}

// Report is the result of one crawl run.
type Report struct {
	Seed       string
	StartedAt  time.Time
	FinishedAt time.Time

	// Titles maps every visited URL to its title ("" for failures and
	// titleless pages).
	Titles map[string]string

	// Pages lists the same URLs in traversal order with their status.
	Pages []PageRecord
}

// Fetcher retrieves a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the title and outgoing links from an HTML page.
type Extractor interface {
	Page(html string, baseURL string) (title string, links []string, err error)
}

// Renderer converts a crawl report into a final output format.
type Renderer interface {
	Render(report *Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}
