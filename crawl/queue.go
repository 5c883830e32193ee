// BFS frontier.
// Enqueueing never deduplicates; the engine checks the visited set when an
// entry is dequeued.

package crawl

// Queue is a FIFO of URLs awaiting a visit.
type Queue struct {
	items []string
	idx   int // current read position
}

// NewQueue creates a Queue holding the given URLs in order.
func NewQueue(urls ...string) *Queue {
	q := &Queue{}
	for _, u := range urls {
		q.Add(u)
	}
	return q
}

// Add appends a URL to the back of the queue.
func (q *Queue) Add(url string) {
	q.items = append(q.items, url)
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the front URL and advances the read position.
// It must only be called when HasNext is true.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.items[q.idx] = ""
	q.idx++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.idx > 1024 && q.idx*2 > len(q.items) {
		q.items = append([]string(nil), q.items[q.idx:]...)
		q.idx = 0
	}
	return url
}

// Len returns the number of URLs still waiting.
func (q *Queue) Len() int {
	return len(q.items) - q.idx
}

// Pending returns a copy of the waiting URLs in dequeue order.
func (q *Queue) Pending() []string {
	out := make([]string, q.Len())
	copy(out, q.items[q.idx:])
	return out
}
