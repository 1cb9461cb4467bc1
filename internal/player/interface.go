// internal/player/interface.go
package player

import "time"

// Interface is the audio output device as seen by the playback engine.
// Play loads and starts a file in one call; "busy" is State() == Playing
// and elapsed time is Position().
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	FinishedChan() <-chan struct{}
}

// DurationLookup resolves the length of an audio file.
// ok is false whenever the length cannot be determined.
type DurationLookup interface {
	Duration(path string) (d time.Duration, ok bool)
}

// DurationFunc adapts a function to DurationLookup.
type DurationFunc func(path string) (time.Duration, bool)

// Duration calls f(path).
func (f DurationFunc) Duration(path string) (time.Duration, bool) {
	return f(path)
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
