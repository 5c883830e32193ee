// Package fetch implements the Fetcher interface.
// It performs plain HTTP GET requests and hands back whatever the server
// answered; only transport problems are reported as errors.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/titlecrawl/core"
	"golang.org/x/text/encoding/unicode"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (compatible; MusashinoCrawler/1.0)"
	defaultMaxBodySize = 10 * 1024 * 1024
)

// Options controls HTTP fetching behaviour.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	Headers     map[string]string
	MaxBodySize int64
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	headers     map[string]string
	maxBodySize int64
}

// New creates an HTTPFetcher. Zero option values fall back to defaults.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &HTTPFetcher{
		client:      &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		headers:     headers,
		maxBodySize: opts.MaxBodySize,
	}
}

// Fetch retrieves the given URL. Any HTTP status is a successful fetch;
// a *core.TransportError is returned when no complete response was read.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &core.TransportError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &core.TransportError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &core.FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        DecodeUTF8(body),
	}, nil
}

// DecodeUTF8 decodes body as UTF-8 whatever the page declares, replacing
// invalid byte sequences with U+FFFD.
func DecodeUTF8(body []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "�")
	}
	return string(decoded)
}
