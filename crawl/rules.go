// URL scope rules.
// Decides which discovered links may join the frontier.

package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/gaurav-prasanna/titlecrawl/core/normalize"
)

// staticExtensions lists path suffixes that never serve an HTML page.
var staticExtensions = map[string]bool{
	// images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".ico": true, ".bmp": true,
	// styles, scripts and fonts
	".css": true, ".js": true, ".mjs": true, ".woff": true, ".woff2": true,
	".ttf": true, ".eot": true,
	// media
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	// archives and office documents
	".zip": true, ".tar": true, ".gz": true, ".pdf": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// SeedDomain returns the authority of the seed URL: userinfo (if any),
// host and port, as written.
// It fails when the seed does not parse or has no host.
func SeedDomain(seed string) (string, error) {
	parsed, err := normalize.Parse(seed)
	if err != nil {
		return "", &SeedError{Seed: seed, Err: err}
	}
	if parsed.Host == "" {
		return "", &SeedError{Seed: seed, Err: errMissingHost}
	}
	return authority(parsed), nil
}

// IsSameDomain reports whether rawURL's authority equals domain exactly.
// Subdomains, other ports and added or missing userinfo all count as
// different domains.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := normalize.Parse(rawURL)
	if err != nil {
		return false
	}
	return authority(parsed) == domain
}

// IsStaticAsset reports whether the last path segment of rawURL ends in
// one of staticExtensions. Case is ignored; the query is not looked at.
func IsStaticAsset(rawURL string) bool {
	parsed, err := normalize.Parse(rawURL)
	if err != nil {
		return false
	}
	return staticExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

func authority(u *url.URL) string {
	if u.User == nil {
		return u.Host
	}
	return u.User.String() + "@" + u.Host
}
