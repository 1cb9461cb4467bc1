package app

import (
	"context"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/playback"
)

// Enqueue appends a catalog track to the play queue.
func (a *App) Enqueue(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.catalog.Get(id); err != nil {
		return err
	}
	a.engine.Enqueue(id)
	return nil
}

// ClearQueue empties the play queue.
func (a *App) ClearQueue() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.ClearQueue()
}

// QueueTracks returns the queue, front first.
func (a *App) QueueTracks() []*catalog.Track {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Snapshot().Queue
}

// HistoryTracks returns the play history, most recent first.
func (a *App) HistoryTracks() []*catalog.Track {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Snapshot().History
}

// PlayTrack plays a catalog track outside playlist mode.
func (a *App) PlayTrack(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.PlayFromCatalog(ctx, id)
}

// PlayFile plays a track that need not be in the catalog.
func (a *App) PlayFile(ctx context.Context, t *catalog.Track) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.PlayTrack(ctx, t)
}

// PlayPlaylist plays a playlist from its first entry.
func (a *App) PlayPlaylist(ctx context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.PlayFromPlaylist(ctx, name)
}

// Advance moves to the next or previous track from src.
func (a *App) Advance(ctx context.Context, dir playback.Direction, src playback.Source) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Advance(ctx, dir, src)
}

// Pause pauses playback.
func (a *App) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Pause()
}

// Resume resumes playback.
func (a *App) Resume() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Resume()
}

// TogglePause pauses when playing and resumes when paused.
func (a *App) TogglePause() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.engine.State() {
	case playback.StatePlaying:
		a.engine.Pause()
	case playback.StatePaused:
		return a.engine.Resume()
	case playback.StateIdle:
	}
	return nil
}

// Stop stops playback.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Stop()
}

// ToggleAutoplay flips autoplay and returns the new setting.
func (a *App) ToggleAutoplay() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.ToggleAutoplay()
}

// Snapshot returns the playback session view.
func (a *App) Snapshot() playback.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Snapshot()
}
