package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop halts playback and releases the file. No-op when already stopped.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == Stopped && p.streamer == nil {
		p.mu.Unlock()
		return
	}
	p.generation++
	streamer, file := p.streamer, p.file
	p.streamer = nil
	p.file = nil
	p.ctrl = nil
	p.duration = 0
	p.state = Stopped
	p.mu.Unlock()

	speaker.Clear()

	if streamer != nil {
		streamer.Close()
	}
	if file != nil {
		file.Close()
	}
}

// Pause pauses playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume continues paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// State returns the current device state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the elapsed playback time of the current track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the current track.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}
