// Package player drives the audio output device through beep.
package player

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
)

// State represents the playback state of the device.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// Player plays one audio file at a time on the system speaker.
type Player struct {
	mu         sync.Mutex
	state      State
	ctrl       *beep.Ctrl
	streamer   beep.StreamSeekCloser
	format     beep.Format
	file       *os.File
	duration   time.Duration
	finishedCh chan struct{}
	generation uint64 // bumped on every Play/Stop so stale callbacks are ignored
}

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// New creates a stopped player.
func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
	}
}

// FinishedChan delivers one signal each time a track plays to its end.
// Stopping a track does not signal.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// IsMusicFile reports whether the file extension is one the player decodes.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV, extOGG:
		return true
	default:
		return false
	}
}
