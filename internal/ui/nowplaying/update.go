package nowplaying

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/musicbox/internal/autoplay"
	"github.com/llehouerou/musicbox/internal/errmsg"
	"github.com/llehouerou/musicbox/internal/keymap"
	"github.com/llehouerou/musicbox/internal/playback"
	"github.com/llehouerou/musicbox/internal/ui/render"
)

// Update handles keys, engine events and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		m.handleEvent(msg.event)
		m.snap = m.ctrl.Snapshot()
		return m, waitForEvent(m.sub)

	case closedMsg:
		return m, tea.Quit

	case logLineMsg:
		m.setStatus(render.Sanitize(string(msg)), statusWarning)
		return m, waitForLine(m.logs)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())

	var err error
	var op errmsg.Op
	switch action {
	case keymap.ActionQuit:
		m.ctrl.Stop()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionPlayPause:
		op, err = errmsg.OpPlaybackResume, m.ctrl.TogglePause()
	case keymap.ActionStop:
		m.ctrl.Stop()
	case keymap.ActionNextQueued:
		op, err = errmsg.OpPlaybackNext, m.ctrl.Advance(m.ctx, playback.Forward, playback.SourceQueue)
	case keymap.ActionNextInPlaylist:
		op, err = errmsg.OpPlaybackNext, m.ctrl.Advance(m.ctx, playback.Forward, playback.SourcePlaylist)
	case keymap.ActionPrevInPlaylist:
		op, err = errmsg.OpPlaybackPrev, m.ctrl.Advance(m.ctx, playback.Backward, playback.SourcePlaylist)
	case keymap.ActionPrevPlayed:
		op, err = errmsg.OpPlaybackPrev, m.ctrl.Advance(m.ctx, playback.Backward, playback.SourceHistory)
	case keymap.ActionSimilar:
		op, err = errmsg.OpAutoplay, m.ctrl.Advance(m.ctx, playback.Forward, playback.SourceSimilar)
	case keymap.ActionClearQueue:
		m.ctrl.ClearQueue()
		m.setStatus("Queue cleared", statusInfo)
	case keymap.ActionToggleAutoplay:
		if m.ctrl.ToggleAutoplay() {
			m.setStatus("Autoplay on", statusInfo)
		} else {
			m.setStatus("Autoplay off", statusInfo)
		}
	default:
		return m, nil
	}

	if err != nil {
		kind := statusError
		if isTerminal(err) {
			kind = statusWarning
		}
		m.setStatus(errmsg.Format(op, err), kind)
	}
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

// isTerminal reports errors that only mean there is nowhere to go.
func isTerminal(err error) bool {
	return errors.Is(err, playback.ErrNoNext) ||
		errors.Is(err, playback.ErrNoPrevious) ||
		errors.Is(err, autoplay.ErrNoEligibleTrack)
}

func (m *Model) handleEvent(ev any) {
	switch ev := ev.(type) {
	case playback.AutoplayEvent:
		switch {
		case ev.Err != nil:
			m.setStatus(errmsg.Format(errmsg.OpAutoplay, ev.Err), statusWarning)
		case ev.Fallback && ev.Track != nil:
			m.setStatus(fmt.Sprintf("Nothing similar, playing %s", ev.Track), statusInfo)
		case ev.Track != nil:
			m.setStatus(fmt.Sprintf("Autoplay (%s): %s", ev.Decision.Kind, ev.Track), statusInfo)
		}
	case playback.ErrorEvent:
		m.setStatus(errmsg.Format(errmsg.OpAutoplay, ev.Err), statusWarning)
	}
}

func (m *Model) setStatus(text string, kind statusKind) {
	m.status = text
	m.statusKind = kind
}
