package playlist

// Queue is a FIFO of track IDs waiting to be played.
type Queue struct {
	ids []string
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{ids: make([]string, 0)}
}

// Enqueue appends id at the tail.
func (q *Queue) Enqueue(id string) {
	q.ids = append(q.ids, id)
}

// Dequeue removes and returns the head.
func (q *Queue) Dequeue() (string, error) {
	if len(q.ids) == 0 {
		return "", ErrEmpty
	}
	id := q.ids[0]
	q.ids[0] = ""
	q.ids = q.ids[1:]
	return id, nil
}

// Peek returns the head without removing it.
func (q *Queue) Peek() (string, error) {
	if len(q.ids) == 0 {
		return "", ErrEmpty
	}
	return q.ids[0], nil
}

// Purge rebuilds the queue without any entry for id.
// Returns the number of entries dropped.
func (q *Queue) Purge(id string) int {
	kept := make([]string, 0, len(q.ids))
	for _, v := range q.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	removed := len(q.ids) - len(kept)
	q.ids = kept
	return removed
}

// Clear removes all entries.
func (q *Queue) Clear() {
	q.ids = q.ids[:0]
}

// IDs returns a copy of the queue, head first.
func (q *Queue) IDs() []string {
	result := make([]string, len(q.ids))
	copy(result, q.ids)
	return result
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	return len(q.ids)
}

// IsEmpty returns true if the queue has no entries.
func (q *Queue) IsEmpty() bool {
	return len(q.ids) == 0
}
