package crawl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue("https://example.com")
	q.Add("https://example.com/a")
	q.Add("https://example.com/b")

	require.Equal(t, 3, q.Len())
	assert.Equal(t, "https://example.com", q.Next())
	assert.Equal(t, "https://example.com/a", q.Next())
	assert.Equal(t, []string{"https://example.com/b"}, q.Pending())
	assert.Equal(t, "https://example.com/b", q.Next())
	assert.False(t, q.HasNext())
	assert.Empty(t, q.Pending())
}

func TestQueue_AddDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	q.Add("https://example.com/a")
	q.Add("https://example.com/a")
	assert.Equal(t, 2, q.Len())
}

func TestQueue_CompactsConsumedPrefix(t *testing.T) {
	t.Parallel()

	q := NewQueue()
	for i := 0; i < 3000; i++ {
		q.Add(fmt.Sprintf("u%d", i))
	}
	for i := 0; i < 2000; i++ {
		require.Equal(t, fmt.Sprintf("u%d", i), q.Next())
	}
	assert.Equal(t, 1000, q.Len())
	assert.Equal(t, "u2000", q.Next())
	q.Add("tail")
	pending := q.Pending()
	assert.Equal(t, "u2001", pending[0])
	assert.Equal(t, "tail", pending[len(pending)-1])
}
