package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fragment", "https://example.com/a?x=1", "https://example.com/a?x=1"},
		{"fragment removed", "https://example.com/a#top", "https://example.com/a"},
		{"query kept before fragment", "https://example.com/a?x=1#s", "https://example.com/a?x=1"},
		{"empty fragment", "https://example.com/a#", "https://example.com/a"},
		{"bare host kept", "https://example.com", "https://example.com"},
		{"trailing slash kept", "https://example.com/docs/", "https://example.com/docs/"},
		{"unparseable passes through", "http://[::1", "http://[::1"},
		{"non-ASCII path kept as written", "https://example.com/日本語/ページ#sec", "https://example.com/日本語/ページ"},
		{"escapes kept as written", "https://example.com/%E6%97%A5?q=a%20b#x", "https://example.com/%E6%97%A5?q=a%20b"},
		{"invalid escape still loses fragment", "https://example.com/%zz#frag", "https://example.com/%zz"},
		{"unparseable still loses fragment", "http://[::1/a#frag", "http://[::1/a"},
		{"only first hash counts", "https://example.com/a#b#c", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, URL(tt.in))
		})
	}
}

func TestURL_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com/a#top",
		"https://example.com/%E6%97%A5%E6%9C%AC?q=a%20b#x",
		"https://example.com:8443/path/../x#frag",
		"mailto:someone@example.com",
		"/relative/only#f",
	}
	for _, in := range inputs {
		once := URL(in)
		assert.Equal(t, once, URL(once), "input %q", in)
	}
}

func TestParseString_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com",
		"https://example.com/学部/案内?q=武蔵野",
		"https://example.com/%E5%AD%A6%E9%83%A8/",
		"https://example.com/a%20b?x=%E6&y=1",
		"https://example.com/a b",
		"https://example.com/%zz",
		"https://user@example.com:8443/p",
	}
	for _, in := range inputs {
		u, err := Parse(in)
		if !assert.NoError(t, err, in) {
			continue
		}
		assert.Equal(t, in, String(u))
	}
}

func TestParse_DecodedFieldsAsWritten(t *testing.T) {
	t.Parallel()

	u, err := Parse("https://example.com/%E5%AD%A6/学?q=%20")
	assert.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)
	assert.Equal(t, "/%E5%AD%A6/学", u.Path)
}
