// internal/playback/state.go
package playback

// State represents the session state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is current (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Source selects where Advance takes the next track from.
type Source int

const (
	SourceQueue Source = iota
	SourcePlaylist
	SourceHistory
	SourceSimilar
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceQueue:
		return "queue"
	case SourcePlaylist:
		return "playlist"
	case SourceHistory:
		return "history"
	case SourceSimilar:
		return "similar"
	default:
		return "unknown"
	}
}

// Direction is the cursor movement for SourcePlaylist. Other sources
// ignore it.
type Direction int

const (
	Forward Direction = iota
	Backward
)
