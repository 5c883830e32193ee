package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/titlecrawl/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "db", "titlecrawl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesFile(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	_, err := os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestSQLiteStore_SaveReport(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	fetched := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	report := &core.Report{
		Seed:       "https://example.com",
		StartedAt:  fetched,
		FinishedAt: fetched.Add(2 * time.Second),
		Titles: map[string]string{
			"https://example.com":   "Home",
			"https://example.com/x": "",
		},
		Pages: []core.PageRecord{
			{URL: "https://example.com", Title: "Home", Status: core.StatusOK, StatusCode: 200,
				ContentType: "text/html", FetchedAt: fetched, Duration: 120 * time.Millisecond},
			{URL: "https://example.com/x", Status: core.StatusTransportError,
				Error: "dial tcp: refused", FetchedAt: fetched.Add(time.Second)},
		},
	}

	runID, err := s.SaveReport(ctx, report)
	require.NoError(t, err)
	assert.Positive(t, runID)

	pages, err := s.Pages(ctx, runID)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "https://example.com", pages[0].URL)
	assert.Equal(t, "Home", pages[0].Title)
	assert.Equal(t, core.StatusOK, pages[0].Status)
	assert.Equal(t, 200, pages[0].StatusCode)
	assert.Equal(t, 120*time.Millisecond, pages[0].Duration)
	assert.True(t, fetched.Equal(pages[0].FetchedAt))

	assert.Equal(t, core.StatusTransportError, pages[1].Status)
	assert.Equal(t, "dial tcp: refused", pages[1].Error)

	// A second run is appended, not merged.
	second, err := s.SaveReport(ctx, &core.Report{Seed: "https://example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, runID, second)

	n, err := s.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty, err := s.Pages(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
