// Package output handles file naming and writing for crawl results.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New returns a Writer for outputDir, creating the directory if needed.
// An empty outputDir means the working directory.
func New(outputDir string) (*Writer, error) {
	dir := outputDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving output directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return &Writer{OutputDir: dir}, nil
}

// Write stores data as OutputDir/name, replacing any existing file, and
// returns the full path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName swaps the extension of name for ext.
// Example: FileName("musashino_titles.json", ".md") → "musashino_titles.md"
func FileName(name string, ext string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "titles"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
