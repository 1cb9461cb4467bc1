package playback

import (
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/musicbox/internal/catalog"
)

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	State         State
	Current       *catalog.Track // nil when idle
	Elapsed       time.Duration
	Duration      time.Duration
	DurationKnown bool
	Playlist      string // active playlist, empty outside playlist mode
	PlaylistMode  bool
	Autoplay      bool
	Queue         []*catalog.Track // front first
	History       []*catalog.Track // most recent first
}

// Snapshot returns the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:         e.stateLocked(),
		Duration:      e.s.duration,
		DurationKnown: e.s.durationKnown,
		Playlist:      e.s.playlist,
		PlaylistMode:  e.s.playlistMode,
		Autoplay:      e.s.autoplay,
		Queue:         e.resolve(e.queue.IDs()),
		History:       e.resolve(e.history.IDs()),
	}
	if e.s.current != nil {
		c := *e.s.current
		snap.Current = &c
		snap.Elapsed = e.player.Position()
	}
	return snap
}

// resolve maps ids to copies of their catalog tracks, skipping ids that
// no longer resolve.
func (e *Engine) resolve(ids []string) []*catalog.Track {
	return lo.FilterMap(ids, func(id string, _ int) (*catalog.Track, bool) {
		t, err := e.catalog.Get(id)
		if err != nil {
			return nil, false
		}
		c := *t
		return &c, true
	})
}
