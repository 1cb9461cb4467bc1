package playlist

// History is a LIFO of previously played track IDs.
type History struct {
	ids     []string
	maxSize int
}

// NewHistory creates a new history. A maxSize <= 0 means unbounded;
// otherwise the oldest entries are dropped once the limit is exceeded.
func NewHistory(maxSize int) *History {
	return &History{maxSize: maxSize}
}

// Push records id as the most recent entry.
func (h *History) Push(id string) {
	h.ids = append(h.ids, id)

	if h.maxSize > 0 && len(h.ids) > h.maxSize {
		excess := len(h.ids) - h.maxSize
		h.ids = append(h.ids[:0], h.ids[excess:]...)
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (string, error) {
	n := len(h.ids)
	if n == 0 {
		return "", ErrEmpty
	}
	id := h.ids[n-1]
	h.ids = h.ids[:n-1]
	return id, nil
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (string, error) {
	if len(h.ids) == 0 {
		return "", ErrEmpty
	}
	return h.ids[len(h.ids)-1], nil
}

// Purge drops every entry for id and returns how many were dropped.
func (h *History) Purge(id string) int {
	kept := h.ids[:0]
	for _, v := range h.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	removed := len(h.ids) - len(kept)
	h.ids = kept
	return removed
}

// Clear removes all entries.
func (h *History) Clear() {
	h.ids = nil
}

// IDs returns the entries most recent first.
func (h *History) IDs() []string {
	result := make([]string, len(h.ids))
	for i, id := range h.ids {
		result[len(h.ids)-1-i] = id
	}
	return result
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.ids)
}

// IsEmpty returns true if there is no history.
func (h *History) IsEmpty() bool {
	return len(h.ids) == 0
}
