package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/musicbox/internal/autoplay"
	"github.com/llehouerou/musicbox/internal/playlist"
)

// Advance moves to another track taken from src.
//
//   - SourceQueue dequeues the head, ErrNoNext when empty.
//   - SourcePlaylist steps the cursor in dir, ErrNoNext or ErrNoPrevious
//     at either end or outside playlist mode.
//   - SourceHistory pops the last track, ErrNoPrevious when empty. The
//     replaced track is not pushed back.
//   - SourceSimilar picks by artist then genre, falling back to a random
//     track; autoplay.ErrNoEligibleTrack with fewer than two playable tracks.
func (e *Engine) Advance(ctx context.Context, dir Direction, src Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	switch src {
	case SourceQueue:
		return e.nextFromQueueLocked(src.String())
	case SourcePlaylist:
		return e.stepPlaylistLocked(dir, src.String())
	case SourceHistory:
		return e.previousFromHistoryLocked()
	case SourceSimilar:
		return e.similarLocked()
	default:
		return fmt.Errorf("unknown source %d", src)
	}
}

func (e *Engine) nextFromQueueLocked(source string) error {
	id, err := e.queue.Dequeue()
	if errors.Is(err, playlist.ErrEmpty) {
		return ErrNoNext
	}
	if err != nil {
		return err
	}
	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	return e.playLocked(t, true, source)
}

func (e *Engine) stepPlaylistLocked(dir Direction, source string) error {
	terminal := ErrNoNext
	if dir == Backward {
		terminal = ErrNoPrevious
	}
	if !e.s.playlistMode {
		return terminal
	}

	pl, err := e.playlists.Get(e.s.playlist)
	if err != nil {
		return terminal
	}

	var (
		h  playlist.Handle
		ok bool
	)
	if dir == Backward {
		h, ok = pl.Prev(e.s.cursor)
	} else {
		h, ok = pl.Next(e.s.cursor)
	}
	if !ok {
		return terminal
	}

	id, _ := pl.ID(h)
	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := e.playLocked(t, true, source); err != nil {
		return err
	}
	e.s.cursor = h
	return nil
}

func (e *Engine) previousFromHistoryLocked() error {
	id, err := e.history.Pop()
	if errors.Is(err, playlist.ErrEmpty) {
		return ErrNoPrevious
	}
	if err != nil {
		return err
	}
	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	return e.playLocked(t, false, SourceHistory.String())
}

func (e *Engine) similarLocked() error {
	d, err := autoplay.Pick(e.s.current, e.catalog.All(), e.rand)
	if err != nil {
		return err
	}
	if err := e.applyLocked(d, SourceSimilar.String()); err != nil {
		return err
	}
	if d.Kind == autoplay.Random {
		e.notifyFallbackLocked(d)
	}
	return nil
}

// applyLocked plays the track a decision names.
func (e *Engine) applyLocked(d autoplay.Decision, source string) error {
	switch d.Kind {
	case autoplay.FromQueue:
		return e.nextFromQueueLocked(source)
	case autoplay.FromPlaylist:
		return e.stepPlaylistLocked(Forward, source)
	case autoplay.Similar, autoplay.Random:
		t, err := e.catalog.Get(d.ID)
		if err != nil {
			return err
		}
		return e.playLocked(t, true, source)
	default:
		return autoplay.ErrNoEligibleTrack
	}
}

func (e *Engine) notifyFallbackLocked(d autoplay.Decision) {
	e.logger.Info().Str("track", d.ID).Msg("no similar track, playing random fallback")
	e.emitAutoplay(AutoplayEvent{Decision: d, Track: e.s.current, Fallback: true})
}
