package playback

import (
	"time"

	"github.com/llehouerou/musicbox/internal/autoplay"
	"github.com/llehouerou/musicbox/internal/catalog"
)

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted each time a track starts.
//
// Emitted by every successful play path, explicit or autoplay.
// NOT emitted by Pause, Resume or Stop.
//
// Previous is nil for the first track of a session.
type TrackChange struct {
	Previous *catalog.Track
	Current  *catalog.Track
	Source   string // "catalog", "playlist", "queue", "history", "similar" or "autoplay"
}

// PositionChange is emitted periodically while a track is current.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
	Known    bool // false when the duration lookup failed
}

// AutoplayEvent is emitted after the end-of-track resolver ran.
// Fallback is true when the track was chosen at random and the user
// should be told.
type AutoplayEvent struct {
	Decision autoplay.Decision
	Track    *catalog.Track // nil when Decision.Kind is None
	Fallback bool
	Err      error
}

// ErrorEvent is emitted when a non-interactive operation fails.
type ErrorEvent struct {
	Operation string // e.g., "play", "autoplay"
	Path      string // track path if applicable
	Err       error
}
