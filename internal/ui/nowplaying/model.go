// Package nowplaying is the terminal screen of the play command: the
// current track with its progress, the queue, the history and the
// playback keys.
package nowplaying

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/musicbox/internal/keymap"
	"github.com/llehouerou/musicbox/internal/playback"
)

// Controller is the playback surface the screen drives.
type Controller interface {
	Snapshot() playback.Snapshot
	TogglePause() error
	Advance(ctx context.Context, dir playback.Direction, src playback.Source) error
	ToggleAutoplay() bool
	ClearQueue()
	Stop()
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarning
	statusError
)

// Model is the bubbletea model of the screen.
type Model struct {
	ctx  context.Context
	ctrl Controller
	sub  *playback.Subscription
	logs <-chan string
	keys *keymap.Resolver

	snap       playback.Snapshot
	status     string
	statusKind statusKind
	showHelp   bool
	width      int
}

// New creates the screen. logs carries captured stderr lines and may be nil.
func New(ctx context.Context, ctrl Controller, sub *playback.Subscription, logs <-chan string) Model {
	return Model{
		ctx:   ctx,
		ctrl:  ctrl,
		sub:   sub,
		logs:  logs,
		keys:  keymap.NewResolver(keymap.All),
		snap:  ctrl.Snapshot(),
		width: 80,
	}
}

// Init starts listening for engine events and captured output.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.sub), waitForLine(m.logs))
}

type (
	eventMsg   struct{ event any }
	closedMsg  struct{}
	logLineMsg string
)

// waitForEvent blocks until the next engine event.
func waitForEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-sub.StateChanged:
			return eventOrClosed(ev, ok)
		case ev, ok := <-sub.TrackChanged:
			return eventOrClosed(ev, ok)
		case ev, ok := <-sub.PositionChanged:
			return eventOrClosed(ev, ok)
		case ev, ok := <-sub.Autoplay:
			return eventOrClosed(ev, ok)
		case ev, ok := <-sub.Error:
			return eventOrClosed(ev, ok)
		case <-sub.Done:
			return closedMsg{}
		}
	}
}

func eventOrClosed(ev any, ok bool) tea.Msg {
	if !ok {
		return closedMsg{}
	}
	return eventMsg{event: ev}
}

func waitForLine(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return logLineMsg(line)
	}
}
