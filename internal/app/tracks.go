package app

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/player"
)

// ErrUnsupportedFile is returned when importing a file the player cannot decode.
var ErrUnsupportedFile = errors.New("unsupported audio file")

// AddTrack adds t to the catalog. Admin only.
func (a *App) AddTrack(t *catalog.Track) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.catalog.Add(t); err != nil {
		return err
	}
	a.logger.Info().Str("track", t.ID).Msg("track added")
	return a.saveLocked()
}

// EditTrack updates fields of a catalog track in place. Admin only.
func (a *App) EditTrack(id string, u catalog.TrackUpdate) (*catalog.Track, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.catalog.Update(id, u)
	if err != nil {
		return nil, err
	}
	return copyTrack(t), a.saveLocked()
}

// RemoveTrack deletes a track and every reference to it: playlist
// entries, queue and history slots, and the current session. Admin only.
func (a *App) RemoveTrack(id string) (*catalog.Track, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.catalog.Remove(id)
	if err != nil {
		return nil, err
	}
	purged := a.playlists.PurgeTrack(id)
	a.engine.ForgetTrack(id)

	a.logger.Info().
		Str("track", id).
		Int("playlists", purged).
		Msg("track removed")
	return t, a.saveLocked()
}

// ImportFile adds a track built from the tags of an audio file. An empty
// id gets a generated one. Admin only.
func (a *App) ImportFile(path, id string) (*catalog.Track, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if !player.IsMusicFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	t := catalog.FromPath(path, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.catalog.Add(t); err != nil {
		return nil, err
	}
	a.logger.Info().Str("track", t.ID).Str("path", path).Msg("file imported")
	return copyTrack(t), a.saveLocked()
}

// ListTracks returns copies of every catalog track in order.
func (a *App) ListTracks() []*catalog.Track {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyTracks(a.catalog.All())
}

// GetTrack returns a copy of one catalog track.
func (a *App) GetTrack(id string) (*catalog.Track, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, err := a.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return copyTrack(t), nil
}

// SearchTracks returns tracks whose field equals value.
func (a *App) SearchTracks(field, value string) ([]*catalog.Track, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	found, err := a.catalog.FindBy(field, value)
	if err != nil {
		return nil, err
	}
	return copyTracks(found), nil
}

func copyTrack(t *catalog.Track) *catalog.Track {
	c := *t
	return &c
}

func copyTracks(ts []*catalog.Track) []*catalog.Track {
	return lo.Map(ts, func(t *catalog.Track, _ int) *catalog.Track { return copyTrack(t) })
}
