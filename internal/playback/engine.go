// Package playback runs the single playback session: what is current,
// how the next track is picked, and what subscribers are told.
package playback

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/config"
	"github.com/llehouerou/musicbox/internal/player"
	"github.com/llehouerou/musicbox/internal/playlist"
	"github.com/llehouerou/musicbox/internal/playlists"
)

var (
	ErrUnplayable = errors.New("track unplayable")
	ErrAudio      = errors.New("audio error")
	ErrNoNext     = errors.New("no next track")
	ErrNoPrevious = errors.New("no previous track")
	ErrCooldown   = errors.New("autoplay cooldown active")
)

// Options configures an Engine.
type Options struct {
	// Config holds the playback settings. Nil uses config.DefaultPlayback.
	Config *config.Playback
	// Durations resolves track lengths. Nil leaves every duration unknown.
	Durations player.DurationLookup
	// Now is the clock used for the end-of-track cooldown. Nil uses time.Now.
	Now func() time.Time
	// Rand drives the random similarity fallback. Nil uses the global source.
	Rand   *rand.Rand
	Logger zerolog.Logger
	// Guard is taken by Run around end-of-track handling so the host can
	// serialize it with its own mutations of the catalog and playlists.
	Guard sync.Locker
}

type session struct {
	current       *catalog.Track
	previous      string
	engaged       bool
	duration      time.Duration
	durationKnown bool
	autoplay      bool
	playlist      string
	cursor        playlist.Handle
	playlistMode  bool
}

// Engine owns the session, the queue and the history.
// The catalog and playlists are shared with the host.
type Engine struct {
	mu sync.Mutex

	player    player.Interface
	catalog   *catalog.Catalog
	playlists *playlists.Playlists
	queue     *playlist.Queue
	history   *playlist.History

	cfg          config.Playback
	durations    player.DurationLookup
	now          func() time.Time
	rand         *rand.Rand
	logger       zerolog.Logger
	guard        sync.Locker
	lastFinished time.Time

	s session

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

var unknownDuration = player.DurationFunc(func(string) (time.Duration, bool) { return 0, false })

// New creates an idle engine.
func New(p player.Interface, cat *catalog.Catalog, pls *playlists.Playlists, opts Options) *Engine {
	defaults := config.DefaultPlayback()
	cfg := defaults
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}
	if cfg.PositionInterval <= 0 {
		cfg.PositionInterval = defaults.PositionInterval
	}

	e := &Engine{
		player:    p,
		catalog:   cat,
		playlists: pls,
		queue:     playlist.NewQueue(),
		history:   playlist.NewHistory(cfg.HistorySize),
		cfg:       cfg,
		durations: opts.Durations,
		now:       opts.Now,
		rand:      opts.Rand,
		logger:    opts.Logger.With().Str("component", "engine").Logger(),
		guard:     opts.Guard,
		s:         session{autoplay: cfg.Autoplay},
		done:      make(chan struct{}),
	}
	if e.durations == nil {
		e.durations = unknownDuration
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.guard == nil {
		e.guard = nopLocker{}
	}
	return e
}

// State returns the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	switch {
	case e.s.current == nil:
		return StateIdle
	case e.s.engaged:
		return StatePlaying
	default:
		return StatePaused
	}
}

// Play starts the catalog track id. Playlist mode is left as is.
func (e *Engine) Play(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	return e.playLocked(t, true, "catalog")
}

// PlayTrack starts t, which need not be in the catalog unless the
// configuration requires it. A catalog entry with the same ID is
// preferred so later edits stay visible.
func (e *Engine) PlayTrack(ctx context.Context, t *catalog.Track) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: no track", ErrUnplayable)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if owned, err := e.catalog.Get(t.ID); err == nil {
		t = owned
	} else if e.cfg.RequireCatalog {
		return err
	}
	return e.playLocked(t, true, "catalog")
}

// PlayFromCatalog starts the catalog track id and leaves playlist mode.
func (e *Engine) PlayFromCatalog(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := e.playLocked(t, true, "catalog"); err != nil {
		return err
	}
	e.clearPlaylistLocked()
	return nil
}

// PlayFromPlaylist enters playlist mode on name and starts its first entry.
func (e *Engine) PlayFromPlaylist(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	pl, err := e.playlists.Get(name)
	if err != nil {
		return err
	}
	head, ok := pl.Head()
	if !ok {
		return fmt.Errorf("%w: %s", playlist.ErrEmpty, name)
	}
	id, _ := pl.ID(head)
	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := e.playLocked(t, true, "playlist"); err != nil {
		return err
	}
	e.s.playlist = name
	e.s.cursor = head
	e.s.playlistMode = true
	return nil
}

// Pause pauses a playing track. No-op in any other state.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stateLocked() != StatePlaying {
		return
	}
	e.player.Pause()
	e.s.engaged = false
	e.emitState(StatePlaying, StatePaused)
}

// Resume continues a paused track. A track that already ran to its end
// restarts from the beginning. No-op unless paused.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stateLocked() != StatePaused {
		return nil
	}
	if e.player.State() == player.Paused {
		e.player.Resume()
	} else {
		if err := checkPlayable(e.s.current); err != nil {
			return err
		}
		if err := e.player.Play(e.s.current.Path); err != nil {
			return fmt.Errorf("%w: %w", ErrAudio, err)
		}
	}
	e.s.engaged = true
	e.emitState(StatePaused, StatePlaying)
	return nil
}

// Stop halts playback and clears the session. No-op when idle.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	prev := e.stateLocked()
	if prev == StateIdle {
		return
	}
	e.player.Stop()
	e.s = session{autoplay: e.s.autoplay, previous: e.s.current.ID}
	e.logger.Debug().Msg("stopped")
	e.emitState(prev, StateIdle)
}

// ToggleAutoplay flips autoplay and returns the new setting.
func (e *Engine) ToggleAutoplay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s.autoplay = !e.s.autoplay
	return e.s.autoplay
}

// SetAutoplay enables or disables autoplay.
func (e *Engine) SetAutoplay(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s.autoplay = enabled
}

// Enqueue appends id to the play queue.
func (e *Engine) Enqueue(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.Enqueue(id)
}

// ClearQueue empties the play queue.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.Clear()
}

// ForgetTrack drops id from the queue and history after it left the
// catalog, stopping playback if it is current.
func (e *Engine) ForgetTrack(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queue.Purge(id)
	e.history.Purge(id)
	if e.s.current != nil && e.s.current.ID == id {
		e.stopLocked()
	}
	if e.s.previous == id {
		e.s.previous = ""
	}
}

// ForgetPlaylist stops playback when name is the active playlist.
func (e *Engine) ForgetPlaylist(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s.playlistMode && e.s.playlist == name {
		e.stopLocked()
	}
}

// RenamePlaylist keeps the active playlist reference after a rename.
func (e *Engine) RenamePlaylist(oldName, newName string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s.playlist == oldName {
		e.s.playlist = newName
	}
}

// ForgetPlaylistEntry drops the cursor when the entry it addresses was
// removed. Playlist mode continues with no successor.
func (e *Engine) ForgetPlaylistEntry(name string, h playlist.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.s.playlist == name && e.s.cursor == h {
		e.s.cursor = playlist.Handle{}
	}
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

// Close stops playback and shuts down subscriptions.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.stopLocked()
	close(e.done)
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()

	return nil
}

// playLocked starts t. On failure the session is left untouched.
func (e *Engine) playLocked(t *catalog.Track, pushHistory bool, source string) error {
	if err := checkPlayable(t); err != nil {
		return err
	}
	if err := e.player.Play(t.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrAudio, err)
	}

	prevState := e.stateLocked()
	prev := e.s.current
	last := e.s.previous
	if prev != nil {
		last = prev.ID
	}
	if pushHistory && last != "" && last != t.ID {
		e.history.Push(last)
	}
	e.s.previous = t.ID

	e.s.current = t
	e.s.engaged = true
	e.s.duration, e.s.durationKnown = e.durations.Duration(t.Path)

	e.logger.Info().
		Str("track", t.ID).
		Str("title", t.Title).
		Str("source", source).
		Msg("playing")

	e.emitTrack(TrackChange{Previous: prev, Current: t, Source: source})
	if prevState != StatePlaying {
		e.emitState(prevState, StatePlaying)
	}
	return nil
}

func (e *Engine) clearPlaylistLocked() {
	e.s.playlist = ""
	e.s.cursor = playlist.Handle{}
	e.s.playlistMode = false
}

func checkPlayable(t *catalog.Track) error {
	if !t.Playable() {
		return fmt.Errorf("%w: %s has no audio file", ErrUnplayable, t.ID)
	}
	info, err := os.Stat(t.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnplayable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrUnplayable, t.Path)
	}
	return nil
}

func (e *Engine) emit(fn func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		fn(sub)
	}
}

func (e *Engine) emitState(prev, curr State) {
	e.emit(func(s *Subscription) { s.sendState(StateChange{Previous: prev, Current: curr}) })
}

func (e *Engine) emitTrack(tc TrackChange) {
	e.emit(func(s *Subscription) { s.sendTrack(tc) })
}

func (e *Engine) emitAutoplay(ev AutoplayEvent) {
	e.emit(func(s *Subscription) { s.sendAutoplay(ev) })
}

func (e *Engine) emitError(ev ErrorEvent) {
	e.emit(func(s *Subscription) { s.sendError(ev) })
}
