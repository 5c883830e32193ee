// Package store keeps a history of crawl runs in SQLite.
// Each run is appended; nothing is read back when a new crawl starts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gaurav-prasanna/titlecrawl/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	seed TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	page_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	url TEXT NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL,
	status_code INTEGER NOT NULL DEFAULT 0,
	content_type TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	fetched_at TEXT NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
`

// SQLiteStore appends crawl reports to a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path, creating parent directories
// as needed.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReport stores the run and all of its page records in one transaction
// and returns the new run ID.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *core.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (seed, started_at, finished_at, page_count) VALUES (?, ?, ?, ?)`,
		report.Seed,
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		len(report.Pages),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO pages (run_id, seq, url, title, status, status_code, content_type, error, fetched_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range report.Pages {
		if _, err := stmt.ExecContext(ctx,
			runID, i, p.URL, p.Title, string(p.Status), p.StatusCode,
			p.ContentType, p.Error, formatTime(p.FetchedAt), p.Duration.Milliseconds(),
		); err != nil {
			return 0, fmt.Errorf("inserting page %s: %w", p.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Pages returns the page records of a run in traversal order.
func (s *SQLiteStore) Pages(ctx context.Context, runID int64) ([]core.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT url, title, status, status_code, content_type, error, fetched_at, duration_ms
	FROM pages WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var out []core.PageRecord
	for rows.Next() {
		var (
			p          core.PageRecord
			status     string
			fetchedAt  string
			durationMS int64
		)
		if err := rows.Scan(&p.URL, &p.Title, &status, &p.StatusCode, &p.ContentType, &p.Error, &fetchedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		p.Status = core.PageStatus(status)
		p.FetchedAt = parseTime(fetchedAt)
		p.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, p)
	}
	return out, rows.Err()
}

// RunCount returns how many runs have been stored.
func (s *SQLiteStore) RunCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
