package crawl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDomain(t *testing.T) {
	t.Parallel()

	got, err := SeedDomain("https://www.musashino-u.ac.jp")
	require.NoError(t, err)
	assert.Equal(t, "www.musashino-u.ac.jp", got)

	got, err = SeedDomain("http://localhost:8080/start#x")
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", got)

	got, err = SeedDomain("https://user@example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got)
	assert.True(t, IsSameDomain("https://user@example.com/y", got))
	assert.False(t, IsSameDomain("https://example.com/y", got))

	_, err = SeedDomain("not a url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSeed))

	var se *SeedError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "not a url", se.Seed)
}

func TestIsSameDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a", true},
		{"http://example.com/a", true},
		{"https://example.com", true},
		{"https://www.example.com/a", false},
		{"https://example.com:8443/a", false},
		{"https://other.com/example.com", false},
		{"javascript:void(0)", false},
		{"http://[::1", false},
		{"https://user@example.com/x", false},
		{"https://example.com/学部/案内", true},
		{"https://example.com/x/%zz", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSameDomain(tt.url, "example.com"), tt.url)
	}
}

func TestIsStaticAsset(t *testing.T) {
	t.Parallel()

	assert.True(t, IsStaticAsset("https://example.com/img/logo.PNG"))
	assert.True(t, IsStaticAsset("https://example.com/files/a.pdf?dl=1"))
	assert.False(t, IsStaticAsset("https://example.com/about"))
	assert.False(t, IsStaticAsset("https://example.com/page.html"))
}
