// Package config holds the crawler settings and their defaults.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values.
const (
	// AppName is used for the XDG config directory and the env prefix.
	AppName = "titlecrawl"

	DefaultSeed      = "https://www.musashino-u.ac.jp"
	DefaultUserAgent = "Mozilla/5.0 (compatible; MusashinoCrawler/1.0)"
	DefaultTimeout   = 10 * time.Second

	// DefaultDelay is the pause between two requests to the crawled host.
	DefaultDelay = 500 * time.Millisecond

	DefaultMaxPages    = 30
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
	DefaultOutputDir   = "."
	DefaultOutputFile  = "musashino_titles.json"
	DefaultFormat      = FormatJSON
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Formats lists the accepted values of Config.Format.
var Formats = []string{FormatJSON, FormatMarkdown, FormatPDF}

// RateLimit caps requests per window on top of Delay. Zero Requests disables it.
type RateLimit struct {
	Requests int           `mapstructure:"requests" yaml:"requests"`
	Window   time.Duration `mapstructure:"window" yaml:"window"`
}

// Config holds everything a crawl run needs.
type Config struct {
	Seed        string            `mapstructure:"seed" yaml:"seed"`
	UserAgent   string            `mapstructure:"user_agent" yaml:"user_agent"`
	Headers     map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
	Timeout     time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	Delay       time.Duration     `mapstructure:"delay" yaml:"delay"`
	MaxPages    int               `mapstructure:"max_pages" yaml:"max_pages"`
	MaxBodySize int64             `mapstructure:"max_body_size" yaml:"max_body_size"`
	RateLimit   RateLimit         `mapstructure:"rate_limit" yaml:"rate_limit"`

	// SkipStaticAssets keeps links to images, archives and the like out of
	// the frontier. Off by default so every same-host link is visited.
	SkipStaticAssets bool `mapstructure:"skip_static" yaml:"skip_static"`

	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	OutputFile string `mapstructure:"output" yaml:"output"`
	Format     string `mapstructure:"format" yaml:"format"`

	// DBPath enables the SQLite run history when non-empty.
	DBPath string `mapstructure:"db" yaml:"db"`

	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	Quiet   bool `mapstructure:"quiet" yaml:"quiet"`
	LogJSON bool `mapstructure:"log_json" yaml:"log_json"`
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		Seed:        DefaultSeed,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		Delay:       DefaultDelay,
		MaxPages:    DefaultMaxPages,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   DefaultOutputDir,
		OutputFile:  DefaultOutputFile,
		Format:      DefaultFormat,
	}
}

// Validate checks the configuration for values the crawler cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Seed) == "" {
		return ErrNoSeed
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.RateLimit.Requests < 0 || (c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0) {
		return ErrInvalidRateLimit
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return ErrNoOutputFile
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, c.Format, strings.Join(Formats, ", "))
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
