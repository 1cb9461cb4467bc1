package playback

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/musicbox/internal/autoplay"
	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/config"
	"github.com/llehouerou/musicbox/internal/player"
	"github.com/llehouerou/musicbox/internal/playlist"
	"github.com/llehouerou/musicbox/internal/playlists"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	engine    *Engine
	player    *player.Mock
	catalog   *catalog.Catalog
	playlists *playlists.Playlists
	clock     *fakeClock
	dir       string
}

// newFixture builds an engine over a catalog whose tracks point at real
// files in a temp dir, so the playable check passes.
func newFixture(t *testing.T, tracks ...*catalog.Track) *fixture {
	t.Helper()
	dir := t.TempDir()
	cat := catalog.New()
	for _, tr := range tracks {
		if tr.Path != "" {
			tr.Path = writeAudio(t, dir, tr.Path)
		}
		require.NoError(t, cat.Add(tr))
	}

	p := player.NewMock()
	pls := playlists.New(false)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	e := New(p, cat, pls, Options{
		Durations: player.DurationFunc(func(string) (time.Duration, bool) { return 3 * time.Minute, true }),
		Now:       clock.Now,
		Rand:      rand.New(rand.NewPCG(7, 7)),
		Logger:    zerolog.Nop(),
	})
	t.Cleanup(func() { _ = e.Close() })

	return &fixture{engine: e, player: p, catalog: cat, playlists: pls, clock: clock, dir: dir}
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o600))
	return path
}

func tr(id, artist, genre, file string) *catalog.Track {
	return &catalog.Track{ID: id, Title: "Title " + id, Artist: artist, Genre: genre, Path: file}
}

func currentID(e *Engine) string {
	snap := e.Snapshot()
	if snap.Current == nil {
		return ""
	}
	return snap.Current.ID
}

func historyIDs(e *Engine) []string {
	var ids []string
	for _, t := range e.Snapshot().History {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestEngine_StartsIdle(t *testing.T) {
	f := newFixture(t)

	snap := f.engine.Snapshot()

	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Current)
	assert.Empty(t, snap.Queue)
	assert.Empty(t, snap.History)
	assert.True(t, snap.Autoplay)
}

func TestEngine_Play(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()

	require.NoError(t, f.engine.Play(ctx, "a"))

	snap := f.engine.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, "a", snap.Current.ID)
	assert.True(t, snap.DurationKnown)
	assert.Equal(t, 3*time.Minute, snap.Duration)
	assert.Empty(t, snap.History, "first play pushes nothing")
	assert.Equal(t, []string{filepath.Join(f.dir, "a.mp3")}, f.player.PlayCalls())
}

func TestEngine_Play_PushesPreviousOnce(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()

	require.NoError(t, f.engine.Play(ctx, "a"))
	require.NoError(t, f.engine.Play(ctx, "a"))
	require.NoError(t, f.engine.Play(ctx, "b"))

	assert.Equal(t, []string{"a"}, historyIDs(f.engine))
}

func TestEngine_Play_PushesPreviousAfterStop(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()

	require.NoError(t, f.engine.Play(ctx, "a"))
	f.engine.Stop()
	require.NoError(t, f.engine.Play(ctx, "b"))

	assert.Equal(t, []string{"a"}, historyIDs(f.engine))
}

func TestEngine_Play_SameTrackAfterStopPushesNothing(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"))
	ctx := context.Background()

	require.NoError(t, f.engine.Play(ctx, "a"))
	f.engine.Stop()
	require.NoError(t, f.engine.Play(ctx, "a"))

	assert.Empty(t, historyIDs(f.engine))
}

func TestEngine_PlayTrack_Nil(t *testing.T) {
	f := newFixture(t)

	err := f.engine.PlayTrack(context.Background(), nil)

	assert.ErrorIs(t, err, ErrUnplayable)
	assert.Equal(t, StateIdle, f.engine.State())
}

func TestEngine_New_DefaultConfig(t *testing.T) {
	e := New(player.NewMock(), catalog.New(), playlists.New(false), Options{Logger: zerolog.Nop()})
	t.Cleanup(func() { _ = e.Close() })

	assert.True(t, e.Snapshot().Autoplay)
	assert.Equal(t, config.DefaultPlayback().Cooldown, e.cfg.Cooldown)
}

func TestEngine_ClearQueue(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	f.engine.Enqueue("a")
	f.engine.Enqueue("b")

	f.engine.ClearQueue()

	assert.Empty(t, f.engine.Snapshot().Queue)
	assert.ErrorIs(t, f.engine.Advance(context.Background(), Forward, SourceQueue), ErrNoNext)
}

func TestEngine_Play_Unplayable(t *testing.T) {
	f := newFixture(t, tr("silent", "A", "G", ""))
	missing := &catalog.Track{ID: "gone", Path: filepath.Join(f.dir, "missing.mp3")}
	ctx := context.Background()

	err := f.engine.Play(ctx, "silent")
	assert.ErrorIs(t, err, ErrUnplayable)

	err = f.engine.PlayTrack(ctx, missing)
	assert.ErrorIs(t, err, ErrUnplayable)

	err = f.engine.PlayTrack(ctx, &catalog.Track{ID: "dir", Path: f.dir})
	assert.ErrorIs(t, err, ErrUnplayable)

	assert.Equal(t, StateIdle, f.engine.State())
	assert.Empty(t, f.player.PlayCalls())
}

func TestEngine_Play_NotInCatalog(t *testing.T) {
	f := newFixture(t)

	err := f.engine.Play(context.Background(), "nope")

	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestEngine_PlayTrack_OutsideCatalog(t *testing.T) {
	f := newFixture(t)
	outside := &catalog.Track{ID: "x", Title: "Loose", Path: writeAudio(t, f.dir, "x.mp3")}

	require.NoError(t, f.engine.PlayTrack(context.Background(), outside))

	assert.Equal(t, "x", currentID(f.engine))
	assert.Equal(t, StatePlaying, f.engine.State())
}

func TestEngine_PlayTrack_RequireCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultPlayback()
	cfg.RequireCatalog = true
	e := New(player.NewMock(), catalog.New(), playlists.New(false), Options{Config: &cfg, Logger: zerolog.Nop()})
	outside := &catalog.Track{ID: "x", Path: writeAudio(t, dir, "x.mp3")}

	err := e.PlayTrack(context.Background(), outside)

	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, StateIdle, e.State())
}

func TestEngine_Play_AudioErrorLeavesSession(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))

	f.player.SetPlayError(errors.New("device lost"))
	err := f.engine.Play(ctx, "b")

	assert.ErrorIs(t, err, ErrAudio)
	assert.Equal(t, "a", currentID(f.engine))
	assert.Empty(t, historyIDs(f.engine))
}

func TestEngine_PauseResumeStop(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"))
	ctx := context.Background()

	// All no-ops while idle
	f.engine.Pause()
	require.NoError(t, f.engine.Resume())
	f.engine.Stop()
	assert.Equal(t, StateIdle, f.engine.State())
	assert.Equal(t, 0, f.player.StopCalls())

	require.NoError(t, f.engine.Play(ctx, "a"))
	f.engine.Pause()
	assert.Equal(t, StatePaused, f.engine.State())
	assert.Equal(t, player.Paused, f.player.State())

	require.NoError(t, f.engine.Resume())
	assert.Equal(t, StatePlaying, f.engine.State())
	assert.Equal(t, player.Playing, f.player.State())

	f.engine.Stop()
	assert.Equal(t, StateIdle, f.engine.State())
	assert.Nil(t, f.engine.Snapshot().Current)

	f.engine.Stop()
	assert.Equal(t, 1, f.player.StopCalls(), "second stop is a no-op")
}

func TestEngine_PlayFromPlaylist(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"), tr("c", "C", "G", "c.mp3"))
	ctx := context.Background()
	_, err := f.playlists.Create("mix")
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		_, err := f.playlists.AddTrack("mix", id)
		require.NoError(t, err)
	}

	require.NoError(t, f.engine.PlayFromPlaylist(ctx, "mix"))
	snap := f.engine.Snapshot()
	assert.True(t, snap.PlaylistMode)
	assert.Equal(t, "mix", snap.Playlist)
	assert.Equal(t, "a", snap.Current.ID)

	assert.ErrorIs(t, f.engine.Advance(ctx, Backward, SourcePlaylist), ErrNoPrevious)

	require.NoError(t, f.engine.Advance(ctx, Forward, SourcePlaylist))
	require.NoError(t, f.engine.Advance(ctx, Forward, SourcePlaylist))
	assert.Equal(t, "c", currentID(f.engine))
	assert.ErrorIs(t, f.engine.Advance(ctx, Forward, SourcePlaylist), ErrNoNext)

	require.NoError(t, f.engine.Advance(ctx, Backward, SourcePlaylist))
	assert.Equal(t, "b", currentID(f.engine))

	require.NoError(t, f.engine.PlayFromCatalog(ctx, "a"))
	assert.False(t, f.engine.Snapshot().PlaylistMode)
	assert.ErrorIs(t, f.engine.Advance(ctx, Forward, SourcePlaylist), ErrNoNext)
}

func TestEngine_PlayFromPlaylist_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.playlists.Create("empty")
	require.NoError(t, err)

	assert.ErrorIs(t, f.engine.PlayFromPlaylist(context.Background(), "empty"), playlist.ErrEmpty)
	assert.ErrorIs(t, f.engine.PlayFromPlaylist(context.Background(), "absent"), playlists.ErrNotFound)
}

func TestEngine_AdvanceQueue(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()

	assert.ErrorIs(t, f.engine.Advance(ctx, Forward, SourceQueue), ErrNoNext)

	f.engine.Enqueue("b")
	f.engine.Enqueue("a")
	require.NoError(t, f.engine.Advance(ctx, Forward, SourceQueue))
	assert.Equal(t, "b", currentID(f.engine))
	require.NoError(t, f.engine.Advance(ctx, Forward, SourceQueue))
	assert.Equal(t, "a", currentID(f.engine))
	assert.Empty(t, f.engine.Snapshot().Queue)
}

func TestEngine_AdvanceHistory_DoesNotPushReplaced(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"), tr("c", "C", "G", "c.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))
	require.NoError(t, f.engine.Play(ctx, "b"))
	require.NoError(t, f.engine.Play(ctx, "c"))
	assert.Equal(t, []string{"b", "a"}, historyIDs(f.engine))

	require.NoError(t, f.engine.Advance(ctx, Backward, SourceHistory))
	assert.Equal(t, "b", currentID(f.engine))
	assert.Equal(t, []string{"a"}, historyIDs(f.engine))

	require.NoError(t, f.engine.Advance(ctx, Backward, SourceHistory))
	assert.Equal(t, "a", currentID(f.engine))
	assert.ErrorIs(t, f.engine.Advance(ctx, Backward, SourceHistory), ErrNoPrevious)
}

func TestEngine_AdvanceSimilar(t *testing.T) {
	f := newFixture(t,
		tr("cur", "A", "G", "cur.mp3"),
		tr("artist", "A", "X", "artist.mp3"),
		tr("genre", "Y", "G", "genre.mp3"),
		tr("none", "Z", "Z", "none.mp3"),
	)
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "cur"))

	require.NoError(t, f.engine.Advance(ctx, Forward, SourceSimilar))

	assert.Equal(t, "artist", currentID(f.engine))
}

func TestEngine_AdvanceSimilar_RandomFallbackNotifies(t *testing.T) {
	f := newFixture(t, tr("cur", "A", "G", "cur.mp3"), tr("x", "X", "X", "x.mp3"))
	sub := f.engine.Subscribe()
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "cur"))

	require.NoError(t, f.engine.Advance(ctx, Forward, SourceSimilar))

	assert.Equal(t, "x", currentID(f.engine))
	select {
	case ev := <-sub.Autoplay:
		assert.True(t, ev.Fallback)
		assert.Equal(t, autoplay.Random, ev.Decision.Kind)
	default:
		t.Fatal("expected fallback notice")
	}
}

func TestEngine_HandleFinished_Queue(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("q", "Q", "Q", "q.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))
	f.engine.Enqueue("q")

	d, err := f.engine.HandleFinished(ctx)

	require.NoError(t, err)
	assert.Equal(t, autoplay.Decision{Kind: autoplay.FromQueue, ID: "q"}, d)
	assert.Equal(t, "q", currentID(f.engine))
	assert.Equal(t, StatePlaying, f.engine.State())
	assert.Equal(t, []string{"a"}, historyIDs(f.engine))
}

func TestEngine_HandleFinished_PlaylistSuccessor(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "Z", "Z", "b.mp3"), tr("sim", "A", "G", "sim.mp3"))
	ctx := context.Background()
	_, err := f.playlists.Create("mix")
	require.NoError(t, err)
	_, _ = f.playlists.AddTrack("mix", "a")
	_, _ = f.playlists.AddTrack("mix", "b")
	require.NoError(t, f.engine.PlayFromPlaylist(ctx, "mix"))

	d, err := f.engine.HandleFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, autoplay.FromPlaylist, d.Kind)
	assert.Equal(t, "b", currentID(f.engine))

	// At the tail the session parks rather than picking a similar track
	f.clock.Advance(3 * time.Second)
	d, err = f.engine.HandleFinished(ctx)
	assert.ErrorIs(t, err, autoplay.ErrNoEligibleTrack)
	assert.Equal(t, autoplay.None, d.Kind)
	assert.Equal(t, StatePaused, f.engine.State())
	assert.Equal(t, "b", currentID(f.engine))
}

func TestEngine_HandleFinished_FewerThanTwoPlayable(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("silent", "A", "G", ""))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))

	_, err := f.engine.HandleFinished(ctx)

	assert.ErrorIs(t, err, autoplay.ErrNoEligibleTrack)
	snap := f.engine.Snapshot()
	assert.Equal(t, StatePaused, snap.State, "engaged=false")
	assert.Equal(t, "a", snap.Current.ID, "current is kept")
}

func TestEngine_HandleFinished_Cooldown(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "A", "G", "b.mp3"), tr("c", "A", "G", "c.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))

	_, err := f.engine.HandleFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", currentID(f.engine))

	f.clock.Advance(500 * time.Millisecond)
	_, err = f.engine.HandleFinished(ctx)
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Equal(t, "b", currentID(f.engine))

	f.clock.Advance(2 * time.Second)
	_, err = f.engine.HandleFinished(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", currentID(f.engine))
}

func TestEngine_HandleFinished_AutoplayOff(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "A", "G", "b.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))
	assert.False(t, f.engine.ToggleAutoplay())

	d, err := f.engine.HandleFinished(ctx)

	require.NoError(t, err)
	assert.Equal(t, autoplay.None, d.Kind)
	assert.Equal(t, StatePaused, f.engine.State())

	// Resuming a finished track restarts it
	require.NoError(t, f.engine.Resume())
	assert.Equal(t, StatePlaying, f.engine.State())
	assert.Len(t, f.player.PlayCalls(), 2)
}

func TestEngine_HandleFinished_UnplayableIsNonFatal(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "A", "G", "b.mp3"))
	sub := f.engine.Subscribe()
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "a"))
	b, _ := f.catalog.Get("b")
	require.NoError(t, os.Remove(b.Path))

	_, err := f.engine.HandleFinished(ctx)

	assert.ErrorIs(t, err, ErrUnplayable)
	assert.Equal(t, StatePaused, f.engine.State())
	select {
	case ev := <-sub.Error:
		assert.Equal(t, "autoplay", ev.Operation)
	default:
		t.Fatal("expected error event")
	}
}

func TestEngine_HandleFinished_Idle(t *testing.T) {
	f := newFixture(t)

	d, err := f.engine.HandleFinished(context.Background())

	require.NoError(t, err)
	assert.Equal(t, autoplay.None, d.Kind)
}

func TestEngine_ForgetTrack(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()
	require.NoError(t, f.engine.Play(ctx, "b"))
	require.NoError(t, f.engine.Play(ctx, "a"))
	f.engine.Enqueue("b")
	f.engine.Enqueue("a")
	f.engine.Enqueue("b")

	f.engine.ForgetTrack("b")
	assert.Equal(t, StatePlaying, f.engine.State())
	assert.Empty(t, historyIDs(f.engine))
	queue := f.engine.Snapshot().Queue
	require.Len(t, queue, 1)
	assert.Equal(t, "a", queue[0].ID)

	f.engine.ForgetTrack("a")
	assert.Equal(t, StateIdle, f.engine.State())

	require.NoError(t, f.engine.Play(ctx, "b"))
	assert.Empty(t, historyIDs(f.engine), "deleted track is never pushed")
}

func TestEngine_ForgetAndRenamePlaylist(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"), tr("b", "B", "G", "b.mp3"))
	ctx := context.Background()
	_, _ = f.playlists.Create("mix")
	ha, _ := f.playlists.AddTrack("mix", "a")
	_, _ = f.playlists.AddTrack("mix", "b")
	require.NoError(t, f.engine.PlayFromPlaylist(ctx, "mix"))

	require.NoError(t, f.playlists.Rename("mix", "road"))
	f.engine.RenamePlaylist("mix", "road")
	assert.Equal(t, "road", f.engine.Snapshot().Playlist)
	require.NoError(t, f.engine.Advance(ctx, Forward, SourcePlaylist))
	require.NoError(t, f.engine.Advance(ctx, Backward, SourcePlaylist))

	// Removing the cursor entry drops the cursor
	_, err := f.playlists.RemoveTrack("road", "a")
	require.NoError(t, err)
	f.engine.ForgetPlaylistEntry("road", ha)
	assert.ErrorIs(t, f.engine.Advance(ctx, Forward, SourcePlaylist), ErrNoNext)
	assert.True(t, f.engine.Snapshot().PlaylistMode)

	f.engine.ForgetPlaylist("other")
	assert.Equal(t, StatePlaying, f.engine.State())
	f.engine.ForgetPlaylist("road")
	assert.Equal(t, StateIdle, f.engine.State())
}

func TestEngine_EditVisibleThroughSession(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"))
	require.NoError(t, f.engine.Play(context.Background(), "a"))

	title := "Renamed"
	_, err := f.catalog.Update("a", catalog.TrackUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", f.engine.Snapshot().Current.Title)
}

func TestEngine_Events(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"))
	sub := f.engine.Subscribe()
	require.NoError(t, f.engine.Play(context.Background(), "a"))

	tc := <-sub.TrackChanged
	assert.Nil(t, tc.Previous)
	assert.Equal(t, "a", tc.Current.ID)

	sc := <-sub.StateChanged
	assert.Equal(t, StateChange{Previous: StateIdle, Current: StatePlaying}, sc)

	require.NoError(t, f.engine.Close())
	<-sub.Done
}

func TestEngine_CanceledContext(t *testing.T) {
	f := newFixture(t, tr("a", "A", "G", "a.mp3"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.engine.Play(ctx, "a"), context.Canceled)
	assert.ErrorIs(t, f.engine.Advance(ctx, Forward, SourceQueue), context.Canceled)
}
