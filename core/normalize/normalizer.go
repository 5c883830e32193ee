// Package normalize canonicalizes URLs into the keys used by the frontier
// and the visited set.
//
// URLs are kept in the form they were written in: non-ASCII characters and
// existing percent escapes survive unchanged.
package normalize

import (
	"net/url"
	"strings"
)

// URL strips the fragment from rawURL by cutting at the first '#'. Everything
// before it is returned byte for byte, whether or not it parses.
func URL(rawURL string) string {
	before, _, _ := strings.Cut(rawURL, "#")
	return before
}

// Parse parses rawURL with every '%' taken literally, so the decoded fields
// (Host, Path, ...) hold the text exactly as written. Pair it with String.
func Parse(rawURL string) (*url.URL, error) {
	return url.Parse(strings.ReplaceAll(rawURL, "%", "%25"))
}

// String formats a URL obtained from Parse (or resolved against one) back
// into its as-written form.
func String(u *url.URL) string {
	return unescape(u.String())
}

// unescape decodes every %XX sequence in one pass. After Parse, each escape
// in url.URL.String output stands for a byte that was literal in the input.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
