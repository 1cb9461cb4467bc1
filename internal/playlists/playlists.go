// Package playlists keeps the named playlists of the library.
package playlists

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/llehouerou/musicbox/internal/playlist"
)

var (
	ErrNotFound       = errors.New("playlist not found")
	ErrExists         = errors.New("playlist already exists")
	ErrEmptyName      = errors.New("playlist name is empty")
	ErrDuplicateEntry = errors.New("track already in playlist")
)

// Playlists maps unique, case-sensitive names to playlists.
// Names are kept in creation order for display.
type Playlists struct {
	byName          map[string]*playlist.Playlist
	order           []string
	allowDuplicates bool
}

// New creates an empty registry. When allowDuplicates is false, AddTrack
// rejects a track already present in the target playlist.
func New(allowDuplicates bool) *Playlists {
	return &Playlists{
		byName:          make(map[string]*playlist.Playlist),
		allowDuplicates: allowDuplicates,
	}
}

// Create creates a new empty playlist.
func (p *Playlists) Create(name string) (*playlist.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if _, ok := p.byName[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}
	pl := playlist.NewPlaylist()
	p.byName[name] = pl
	p.order = append(p.order, name)
	return pl, nil
}

// Put registers pl under name, used when restoring saved state.
func (p *Playlists) Put(name string, pl *playlist.Playlist) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if _, ok := p.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	p.byName[name] = pl
	p.order = append(p.order, name)
	return nil
}

// Delete removes a playlist. Tracks in the catalog are not affected.
func (p *Playlists) Delete(name string) error {
	if _, ok := p.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(p.byName, name)
	p.order = slices.DeleteFunc(p.order, func(n string) bool { return n == name })
	return nil
}

// Rename renames a playlist, keeping its position in the listing.
func (p *Playlists) Rename(oldName, newName string) error {
	pl, ok := p.byName[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if strings.TrimSpace(newName) == "" {
		return ErrEmptyName
	}
	if oldName == newName {
		return nil
	}
	if _, ok := p.byName[newName]; ok {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}
	delete(p.byName, oldName)
	p.byName[newName] = pl
	if i := slices.Index(p.order, oldName); i >= 0 {
		p.order[i] = newName
	}
	return nil
}

// Get returns the playlist with the given name.
func (p *Playlists) Get(name string) (*playlist.Playlist, error) {
	pl, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return pl, nil
}

// AddTrack appends a track ID to the named playlist.
func (p *Playlists) AddTrack(name, id string) (playlist.Handle, error) {
	pl, err := p.Get(name)
	if err != nil {
		return playlist.Handle{}, err
	}
	if !p.allowDuplicates && pl.Contains(id) {
		return playlist.Handle{}, fmt.Errorf("%w: %s in %s", ErrDuplicateEntry, id, name)
	}
	return pl.Append(id), nil
}

// RemoveTrack removes the first entry of id from the named playlist and
// returns the handle it occupied.
func (p *Playlists) RemoveTrack(name, id string) (playlist.Handle, error) {
	pl, err := p.Get(name)
	if err != nil {
		return playlist.Handle{}, err
	}
	h, err := pl.Find(id)
	if err != nil {
		return playlist.Handle{}, fmt.Errorf("%w: %s in %s", err, id, name)
	}
	if err := pl.Remove(h); err != nil {
		return playlist.Handle{}, err
	}
	return h, nil
}

// PurgeTrack removes id from every playlist.
// Returns the number of playlists that contained it.
func (p *Playlists) PurgeTrack(id string) int {
	affected := 0
	for _, name := range p.order {
		if p.byName[name].RemoveAll(id) > 0 {
			affected++
		}
	}
	return affected
}

// Names returns playlist names in creation order.
func (p *Playlists) Names() []string {
	return slices.Clone(p.order)
}

// Len returns the number of playlists.
func (p *Playlists) Len() int {
	return len(p.order)
}
