// Package playlist provides the ordered track containers used by playback:
// a bidirectional Playlist, a FIFO Queue and a LIFO History.
// All of them hold catalog track IDs, never track records.
package playlist

import "errors"

var (
	ErrNotFound      = errors.New("track not in playlist")
	ErrInvalidHandle = errors.New("invalid playlist handle")
	ErrEmpty         = errors.New("container is empty")
)

// Handle addresses one entry of a Playlist. The zero Handle is invalid.
// A handle becomes stale once its entry is removed, even if the
// underlying slot is later reused.
type Handle struct {
	slot int // 1-based index into nodes
	gen  uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.slot == 0
}

type node struct {
	id   string
	prev int // slot of previous node, 0 if none
	next int // slot of next node, 0 if none
	gen  uint32
	live bool
}

// Playlist is a doubly-linked list of track IDs backed by a node arena.
// Links are slot indices, so removing an entry never leaves dangling
// references: stale handles are detected by generation.
type Playlist struct {
	nodes []node // nodes[0] is a sentinel and never used
	free  []int
	head  int
	tail  int
	size  int
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{nodes: make([]node, 1)}
}

// Append adds a track ID at the tail and returns its handle.
func (p *Playlist) Append(id string) Handle {
	slot := p.alloc()
	n := &p.nodes[slot]
	n.id = id
	n.prev = p.tail
	n.next = 0
	n.live = true

	if p.tail == 0 {
		p.head = slot
	} else {
		p.nodes[p.tail].next = slot
	}
	p.tail = slot
	p.size++
	return Handle{slot: slot, gen: n.gen}
}

func (p *Playlist) alloc() int {
	if n := len(p.free); n > 0 {
		slot := p.free[n-1]
		p.free = p.free[:n-1]
		return slot
	}
	p.nodes = append(p.nodes, node{})
	return len(p.nodes) - 1
}

func (p *Playlist) valid(h Handle) bool {
	if h.slot <= 0 || h.slot >= len(p.nodes) {
		return false
	}
	n := p.nodes[h.slot]
	return n.live && n.gen == h.gen
}

func (p *Playlist) handle(slot int) (Handle, bool) {
	if slot == 0 {
		return Handle{}, false
	}
	return Handle{slot: slot, gen: p.nodes[slot].gen}, true
}

// Find returns the handle of the first entry holding id.
func (p *Playlist) Find(id string) (Handle, error) {
	for slot := p.head; slot != 0; slot = p.nodes[slot].next {
		if p.nodes[slot].id == id {
			h, _ := p.handle(slot)
			return h, nil
		}
	}
	return Handle{}, ErrNotFound
}

// Contains reports whether id appears in the playlist.
func (p *Playlist) Contains(id string) bool {
	_, err := p.Find(id)
	return err == nil
}

// Remove unlinks the entry addressed by h.
func (p *Playlist) Remove(h Handle) error {
	if !p.valid(h) {
		return ErrInvalidHandle
	}
	n := &p.nodes[h.slot]

	if n.prev != 0 {
		p.nodes[n.prev].next = n.next
	} else {
		p.head = n.next
	}
	if n.next != 0 {
		p.nodes[n.next].prev = n.prev
	} else {
		p.tail = n.prev
	}

	*n = node{gen: n.gen + 1}
	p.free = append(p.free, h.slot)
	p.size--
	return nil
}

// RemoveAll removes every entry holding id and returns how many were removed.
func (p *Playlist) RemoveAll(id string) int {
	removed := 0
	for slot := p.head; slot != 0; {
		next := p.nodes[slot].next
		if p.nodes[slot].id == id {
			h, _ := p.handle(slot)
			_ = p.Remove(h)
			removed++
		}
		slot = next
	}
	return removed
}

// Head returns the first entry, or false if the playlist is empty.
func (p *Playlist) Head() (Handle, bool) {
	return p.handle(p.head)
}

// Next returns the entry after h, or false at the tail or for a stale handle.
func (p *Playlist) Next(h Handle) (Handle, bool) {
	if !p.valid(h) {
		return Handle{}, false
	}
	return p.handle(p.nodes[h.slot].next)
}

// Prev returns the entry before h, or false at the head or for a stale handle.
func (p *Playlist) Prev(h Handle) (Handle, bool) {
	if !p.valid(h) {
		return Handle{}, false
	}
	return p.handle(p.nodes[h.slot].prev)
}

// ID returns the track ID at h.
func (p *Playlist) ID(h Handle) (string, bool) {
	if !p.valid(h) {
		return "", false
	}
	return p.nodes[h.slot].id, true
}

// Valid reports whether h still addresses a live entry.
func (p *Playlist) Valid(h Handle) bool {
	return p.valid(h)
}

// IDs returns all track IDs in order, head to tail.
func (p *Playlist) IDs() []string {
	result := make([]string, 0, p.size)
	for slot := p.head; slot != 0; slot = p.nodes[slot].next {
		result = append(result, p.nodes[slot].id)
	}
	return result
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return p.size
}

// IsEmpty returns true if the playlist has no entries.
func (p *Playlist) IsEmpty() bool {
	return p.size == 0
}
