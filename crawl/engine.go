// Package crawl walks a single site breadth-first from a seed URL and
// records the title of every page it visits.
//
// The frontier accepts any same-domain link; whether a URL was already
// visited is only decided when it is dequeued. That check-and-mark is the
// single point that guarantees a URL is fetched at most once.
package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/titlecrawl/core"
	"github.com/gaurav-prasanna/titlecrawl/core/extract"
	"github.com/gaurav-prasanna/titlecrawl/core/logger"
	"github.com/gaurav-prasanna/titlecrawl/core/normalize"
)

const (
	// DefaultMaxPages caps the number of visited URLs per run.
	DefaultMaxPages = 30
	// DefaultDelay spaces consecutive requests.
	DefaultDelay = 500 * time.Millisecond
)

// Engine drives crawl runs. It holds no per-run state and can start any
// number of runs sequentially.
type Engine struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	limiter    *Limiter
	log        *slog.Logger
	maxPages   int
	skipStatic bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPages sets the page budget. Values below 1 are ignored.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPages = n
		}
	}
}

// WithDelay sets the pause between requests, with no token bucket.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.limiter = NewLimiter(d, RateLimit{})
	}
}

// WithLimiter replaces the request limiter entirely.
func WithLimiter(l *Limiter) Option {
	return func(e *Engine) {
		e.limiter = l
	}
}

// WithExtractor replaces the HTML extractor.
func WithExtractor(x core.Extractor) Option {
	return func(e *Engine) {
		e.extractor = x
	}
}

// WithLogger sets the logger used for progress and failure lines.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithSkipStaticAssets keeps links to images, stylesheets, archives and
// similar files out of the frontier.
func WithSkipStaticAssets(skip bool) Option {
	return func(e *Engine) {
		e.skipStatic = skip
	}
}

// New creates an Engine that fetches pages through fetcher.
func New(fetcher core.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher:   fetcher,
		extractor: extract.New(),
		limiter:   NewLimiter(DefaultDelay, RateLimit{}),
		maxPages:  DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.L()
	}
	return e
}

// Crawl runs a complete crawl from seed. Individual page failures never
// make it fail; only a malformed seed or a cancelled ctx does. On
// cancellation the pages processed so far are returned with ctx's error.
func (e *Engine) Crawl(ctx context.Context, seed string) (*core.Report, error) {
	run, err := e.Start(seed)
	if err != nil {
		return nil, err
	}

	e.log.Debug("crawl started", "seed", seed, "domain", run.domain, "max_pages", e.maxPages)

	for {
		ok, err := run.Step(ctx)
		if err != nil {
			return run.Report(), err
		}
		if !ok {
			break
		}
	}

	report := run.Report()
	e.log.Debug("crawl finished", "pages", len(report.Pages), "pending", run.frontier.Len())
	return report, nil
}

// Run is the state of one crawl: frontier, visited set and results.
type Run struct {
	engine   *Engine
	seed     string
	domain   string
	frontier *Queue
	visited  map[string]bool
	report   *core.Report
}

// Start initializes a run for seed without fetching anything.
// It returns an error matching ErrMalformedSeed if seed has no usable host.
func (e *Engine) Start(seed string) (*Run, error) {
	domain, err := SeedDomain(seed)
	if err != nil {
		return nil, err
	}
	return &Run{
		engine:   e,
		seed:     seed,
		domain:   domain,
		frontier: NewQueue(seed),
		visited:  make(map[string]bool),
		report: &core.Report{
			Seed:      seed,
			StartedAt: time.Now(),
			Titles:    make(map[string]string),
		},
	}, nil
}

// Done reports whether the run has nothing left to do: the frontier is
// drained or the page budget is spent.
func (r *Run) Done() bool {
	return !r.frontier.HasNext() || len(r.visited) >= r.engine.maxPages
}

// Step visits the next unvisited URL in the frontier. Already-visited
// entries are discarded on the way. It returns false once the run is Done.
func (r *Run) Step(ctx context.Context) (bool, error) {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		url := r.frontier.Next()
		if r.visited[url] {
			continue
		}

		if err := r.engine.limiter.Wait(ctx, r.domain); err != nil {
			return false, err
		}

		r.visited[url] = true
		r.visit(ctx, url)
		r.engine.limiter.Done(r.domain)
		return true, nil
	}
	return false, nil
}

// Frontier returns the URLs still queued, in dequeue order.
func (r *Run) Frontier() []string {
	return r.frontier.Pending()
}

// Visited returns the number of URLs claimed so far.
func (r *Run) Visited() int {
	return len(r.visited)
}

// Report returns the results gathered so far.
func (r *Run) Report() *core.Report {
	r.report.FinishedAt = time.Now()
	return r.report
}

// visit fetches one claimed URL and records exactly one PageRecord for it.
func (r *Run) visit(ctx context.Context, url string) {
	e := r.engine
	e.log.Info("crawling", "url", url)

	rec := core.PageRecord{URL: url, FetchedAt: time.Now()}
	res, err := e.fetcher.Fetch(ctx, url)
	rec.Duration = time.Since(rec.FetchedAt)

	switch {
	case err != nil:
		rec.Status = core.StatusTransportError
		rec.Error = err.Error()
		e.log.Warn("fetch failed", "url", url, "error", err)

	case res.StatusCode != http.StatusOK:
		rec.Status = core.StatusHTTPError
		rec.StatusCode = res.StatusCode
		rec.ContentType = res.ContentType
		e.log.Debug("skipping page", "url", url, "status", res.StatusCode)

	case !isHTML(res.ContentType):
		rec.Status = core.StatusNotHTML
		rec.StatusCode = res.StatusCode
		rec.ContentType = res.ContentType
		e.log.Debug("skipping page", "url", url, "content_type", res.ContentType)

	default:
		rec.StatusCode = res.StatusCode
		rec.ContentType = res.ContentType
		title, links, err := e.extractor.Page(res.Body, url)
		if err != nil {
			rec.Status = core.StatusParseError
			rec.Error = err.Error()
			e.log.Warn("parse failed", "url", url, "error", err)
			break
		}
		rec.Status = core.StatusOK
		rec.Title = title
		r.enqueue(links)
	}

	r.report.Titles[url] = rec.Title
	r.report.Pages = append(r.report.Pages, rec)
}

// enqueue normalizes discovered links and queues those in scope.
func (r *Run) enqueue(links []string) {
	for _, link := range links {
		next := normalize.URL(link)
		if r.visited[next] || !IsSameDomain(next, r.domain) {
			continue
		}
		if r.engine.skipStatic && IsStaticAsset(next) {
			continue
		}
		r.frontier.Add(next)
	}
}

func isHTML(contentType string) bool {
	return strings.Contains(contentType, "text/html")
}
