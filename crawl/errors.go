package crawl

import (
	"errors"
	"fmt"
)

// ErrMalformedSeed is matched by errors.Is for any seed whose domain cannot
// be determined. The crawl refuses to start in that case.
var ErrMalformedSeed = errors.New("malformed seed URL")

var errMissingHost = errors.New("no host component")

// SeedError describes why a seed URL was rejected.
type SeedError struct {
	Seed string
	Err  error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrMalformedSeed, e.Seed, e.Err)
}

func (e *SeedError) Unwrap() []error {
	return []error{ErrMalformedSeed, e.Err}
}
