package playback

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/musicbox/internal/autoplay"
)

// HandleFinished reacts to the current track playing to its end: the
// session disengages and, with autoplay on, the next track is resolved
// and started. Triggers within the cooldown of the previous one return
// ErrCooldown and change nothing.
//
// Failures are reported through events and logs only and leave the
// session parked on the finished track.
func (e *Engine) HandleFinished(ctx context.Context) (autoplay.Decision, error) {
	none := autoplay.Decision{Kind: autoplay.None}
	if err := ctx.Err(); err != nil {
		return none, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s.current == nil {
		return none, nil
	}

	now := e.now()
	if !e.lastFinished.IsZero() && now.Sub(e.lastFinished) < e.cfg.Cooldown {
		e.logger.Debug().Msg("autoplay cooldown active, skipping trigger")
		return none, ErrCooldown
	}
	e.lastFinished = now

	prev := e.stateLocked()
	if prev != StatePlaying {
		return none, nil
	}
	e.s.engaged = false
	e.player.Stop()
	e.emitState(prev, StatePaused)

	if !e.s.autoplay {
		return none, nil
	}

	d, err := autoplay.Resolve(e.autoplayInputLocked())
	if err != nil {
		e.logger.Info().Str("track", e.s.current.ID).Msg("no eligible tracks for autoplay, stopping")
		e.emitAutoplay(AutoplayEvent{Decision: d, Err: err})
		return d, err
	}

	if err := e.applyLocked(d, "autoplay"); err != nil {
		e.logger.Warn().
			Err(err).
			Str("track", d.ID).
			Str("strategy", d.Kind.String()).
			Msg("autoplay failed")
		e.emitError(ErrorEvent{Operation: "autoplay", Err: err})
		e.emitAutoplay(AutoplayEvent{Decision: d, Err: err})
		return d, err
	}

	if d.Kind == autoplay.Random {
		e.notifyFallbackLocked(d)
	} else {
		e.emitAutoplay(AutoplayEvent{Decision: d, Track: e.s.current})
	}
	return d, nil
}

func (e *Engine) autoplayInputLocked() autoplay.Input {
	in := autoplay.Input{
		Current:      e.s.current,
		PlaylistMode: e.s.playlistMode,
		Tracks:       e.catalog.All(),
		Rand:         e.rand,
	}

	if id, err := e.queue.Peek(); err == nil {
		in.QueueHead, _ = e.catalog.Get(id)
	}

	if e.s.playlistMode {
		if pl, err := e.playlists.Get(e.s.playlist); err == nil {
			if next, ok := pl.Next(e.s.cursor); ok {
				id, _ := pl.ID(next)
				in.PlaylistNext, _ = e.catalog.Get(id)
			}
		}
	}

	return in
}

// Run pumps end-of-track signals from the player into HandleFinished and
// publishes PositionChange events while a track is current.
// Blocks until ctx is cancelled or the engine is closed.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Debug().
		Dur("interval", e.cfg.PositionInterval).
		Msg("starting playback loop")

	ticker := time.NewTicker(e.cfg.PositionInterval)
	defer ticker.Stop()

	finished := e.player.FinishedChan()
	for {
		select {
		case <-ctx.Done():
			e.logger.Debug().Msg("playback loop stopped")
			return
		case <-e.done:
			return
		case <-finished:
			e.guard.Lock()
			_, err := e.HandleFinished(ctx)
			e.guard.Unlock()
			if err != nil && !errors.Is(err, ErrCooldown) && !errors.Is(err, autoplay.ErrNoEligibleTrack) {
				e.logger.Debug().Err(err).Msg("end of track handled with error")
			}
		case <-ticker.C:
			e.publishPosition()
		}
	}
}

func (e *Engine) publishPosition() {
	e.mu.Lock()
	if e.s.current == nil {
		e.mu.Unlock()
		return
	}
	ev := PositionChange{
		Position: e.player.Position(),
		Duration: e.s.duration,
		Known:    e.s.durationKnown,
	}
	e.mu.Unlock()

	e.emit(func(s *Subscription) { s.sendPosition(ev) })
}
