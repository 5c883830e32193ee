package config

import "errors"

// Validation errors returned by Config.Validate. Match them with errors.Is.
var (
	// ErrNoSeed is returned when the seed URL is empty.
	ErrNoSeed = errors.New("no seed URL specified")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	// Use 0 for no delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxPages is returned when the page budget is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxBodySize is returned when the body cap is negative.
	// 0 means the fetcher default.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	ErrInvalidRateLimit = errors.New("invalid rate limit: requests must be non-negative and window positive")

	ErrNoOutputFile = errors.New("no output file name specified")

	// ErrUnknownFormat is returned for a format outside Formats.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrConfigNotFound is returned when an explicitly named config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
