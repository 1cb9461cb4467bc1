package app

import (
	"github.com/samber/lo"

	"github.com/llehouerou/musicbox/internal/catalog"
)

// PlaylistSummary describes a playlist for listings.
type PlaylistSummary struct {
	Name   string
	Tracks int
}

// CreatePlaylist creates an empty playlist.
func (a *App) CreatePlaylist(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.playlists.Create(name); err != nil {
		return err
	}
	return a.saveLocked()
}

// DeletePlaylist deletes a playlist, stopping playback if it is active.
func (a *App) DeletePlaylist(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.playlists.Delete(name); err != nil {
		return err
	}
	a.engine.ForgetPlaylist(name)
	return a.saveLocked()
}

// RenamePlaylist renames a playlist, keeping its position and any active
// playback on it.
func (a *App) RenamePlaylist(oldName, newName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.playlists.Rename(oldName, newName); err != nil {
		return err
	}
	a.engine.RenamePlaylist(oldName, newName)
	return a.saveLocked()
}

// AddToPlaylist appends a catalog track to a playlist.
func (a *App) AddToPlaylist(name, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.catalog.Get(id); err != nil {
		return err
	}
	if _, err := a.playlists.AddTrack(name, id); err != nil {
		return err
	}
	return a.saveLocked()
}

// RemoveFromPlaylist removes the first entry of id from a playlist.
func (a *App) RemoveFromPlaylist(name, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, err := a.playlists.RemoveTrack(name, id)
	if err != nil {
		return err
	}
	a.engine.ForgetPlaylistEntry(name, h)
	return a.saveLocked()
}

// PlaylistTracks returns copies of a playlist's tracks in order.
func (a *App) PlaylistTracks(name string) ([]*catalog.Track, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pl, err := a.playlists.Get(name)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(pl.IDs(), func(id string, _ int) (*catalog.Track, bool) {
		t, err := a.catalog.Get(id)
		if err != nil {
			return nil, false
		}
		return copyTrack(t), true
	}), nil
}

// ListPlaylists returns every playlist in creation order.
func (a *App) ListPlaylists() []PlaylistSummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	return lo.FilterMap(a.playlists.Names(), func(name string, _ int) (PlaylistSummary, bool) {
		pl, err := a.playlists.Get(name)
		if err != nil {
			return PlaylistSummary{}, false
		}
		return PlaylistSummary{Name: name, Tracks: pl.Len()}, true
	})
}
