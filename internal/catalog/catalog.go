package catalog

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotFound     = errors.New("track not found")
	ErrDuplicateID  = errors.New("track id already exists")
	ErrUnknownField = errors.New("unknown track field")
	ErrEmptyID      = errors.New("track id is empty")
)

// Field names accepted by FindBy.
const (
	FieldID     = "id"
	FieldTitle  = "title"
	FieldArtist = "artist"
	FieldAlbum  = "album"
	FieldGenre  = "genre"
	FieldYear   = "year"
	FieldPath   = "path"
)

type node struct {
	track *Track
	next  *node
}

// Catalog is an insertion-ordered, singly-linked collection of tracks
// unique by ID. The index only accelerates lookups; order lives in the chain.
type Catalog struct {
	head  *node
	tail  *node
	index map[string]*Track
	size  int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]*Track)}
}

// Add appends a track. Returns ErrDuplicateID if the ID is taken.
func (c *Catalog) Add(t *Track) error {
	if t == nil || t.ID == "" {
		return ErrEmptyID
	}
	if _, ok := c.index[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}

	n := &node{track: t}
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}
	c.tail = n
	c.index[t.ID] = t
	c.size++
	return nil
}

// Remove unlinks the track with the given ID and returns it.
func (c *Catalog) Remove(id string) (*Track, error) {
	var prev *node
	for cur := c.head; cur != nil; cur = cur.next {
		if cur.track.ID != id {
			prev = cur
			continue
		}
		if prev == nil {
			c.head = cur.next
		} else {
			prev.next = cur.next
		}
		if c.tail == cur {
			c.tail = prev
		}
		delete(c.index, id)
		c.size--
		return cur.track, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Get returns the track with the given ID.
func (c *Catalog) Get(id string) (*Track, error) {
	t, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// Has reports whether a track with the given ID exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Update edits a track in place. Because every container resolves tracks
// through the catalog, the change is visible everywhere.
func (c *Catalog) Update(id string, u TrackUpdate) (*Track, error) {
	t, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	u.apply(t)
	return t, nil
}

// FindBy returns all tracks whose field exactly equals value, in catalog order.
func (c *Catalog) FindBy(field, value string) ([]*Track, error) {
	get, err := fieldGetter(field)
	if err != nil {
		return nil, err
	}
	var results []*Track
	for cur := c.head; cur != nil; cur = cur.next {
		if get(cur.track) == value {
			results = append(results, cur.track)
		}
	}
	return results, nil
}

// All returns every track in insertion order.
func (c *Catalog) All() []*Track {
	result := make([]*Track, 0, c.size)
	for cur := c.head; cur != nil; cur = cur.next {
		result = append(result, cur.track)
	}
	return result
}

// Playable returns the tracks that have an audio file, in catalog order.
func (c *Catalog) Playable() []*Track {
	var result []*Track
	for cur := c.head; cur != nil; cur = cur.next {
		if cur.track.Playable() {
			result = append(result, cur.track)
		}
	}
	return result
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return c.size
}

func fieldGetter(field string) (func(*Track) string, error) {
	switch field {
	case FieldID:
		return func(t *Track) string { return t.ID }, nil
	case FieldTitle:
		return func(t *Track) string { return t.Title }, nil
	case FieldArtist:
		return func(t *Track) string { return t.Artist }, nil
	case FieldAlbum:
		return func(t *Track) string { return t.Album }, nil
	case FieldGenre:
		return func(t *Track) string { return t.Genre }, nil
	case FieldYear:
		return func(t *Track) string { return strconv.Itoa(t.Year) }, nil
	case FieldPath:
		return func(t *Track) string { return t.Path }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
