// Package app is the command surface shared by the CLI and the TUI.
// It keeps the catalog, the playlists and the playback engine consistent
// with each other and persists after every library mutation.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/config"
	"github.com/llehouerou/musicbox/internal/logging"
	"github.com/llehouerou/musicbox/internal/playback"
	"github.com/llehouerou/musicbox/internal/player"
	"github.com/llehouerou/musicbox/internal/playlists"
	"github.com/llehouerou/musicbox/internal/store"
)

var (
	ErrForbidden   = errors.New("permission denied")
	ErrUnknownRole = errors.New("unknown role")
	// ErrSave wraps a persistence failure after an in-memory change that
	// did succeed.
	ErrSave = errors.New("save failed")
)

// Role gates the library-editing commands.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Deps are the collaborators of an App.
type Deps struct {
	Player    player.Interface
	Store     store.Store
	Durations player.DurationLookup
	Logger    zerolog.Logger
	// Now and Rand are forwarded to the engine, nil for the real ones.
	Now  func() time.Time
	Rand *rand.Rand
}

// App serializes every command behind one mutex. The playback engine's
// end-of-track loop takes the same mutex.
type App struct {
	mu sync.Mutex

	role      Role
	cfg       *config.Config
	catalog   *catalog.Catalog
	playlists *playlists.Playlists
	engine    *playback.Engine
	store     store.Store
	logger    zerolog.Logger

	loadErr error
}

// New loads the persisted library, seeding demo data when nothing was
// saved yet. A load failure does not prevent startup: the App starts
// empty and reports it through LoadError.
func New(cfg *config.Config, role Role, deps Deps) *App {
	a := &App{
		role:   role,
		cfg:    cfg,
		store:  deps.Store,
		logger: logging.Component(deps.Logger, "app"),
	}

	allowDuplicates := cfg.Playlists.AllowDuplicates
	a.catalog = catalog.New()
	a.playlists = playlists.New(allowDuplicates)

	snap, err := a.store.Load()
	switch {
	case err != nil:
		a.loadErr = err
		a.logger.Error().Err(err).Msg("failed to load library, starting empty")
	case snap != nil:
		cat, pls, err := store.Restore(*snap, allowDuplicates)
		if err != nil {
			a.loadErr = err
			a.logger.Error().Err(err).Msg("failed to restore library, starting empty")
		} else {
			a.catalog, a.playlists = cat, pls
		}
	case cfg.ShouldSeedDemo():
		a.seedDemo()
	}

	pb := cfg.GetPlaybackConfig()
	a.engine = playback.New(deps.Player, a.catalog, a.playlists, playback.Options{
		Config:    &pb,
		Durations: deps.Durations,
		Now:       deps.Now,
		Rand:      deps.Rand,
		Logger:    deps.Logger,
		Guard:     &a.mu,
	})

	return a
}

func (a *App) seedDemo() {
	for _, t := range catalog.DemoTracks() {
		_ = a.catalog.Add(t)
	}
	if _, err := a.playlists.Create(catalog.DemoPlaylistName); err == nil {
		for _, id := range catalog.DemoPlaylistIDs() {
			_, _ = a.playlists.AddTrack(catalog.DemoPlaylistName, id)
		}
	}
	a.logger.Info().Int("tracks", a.catalog.Len()).Msg("seeded demo library")
	if err := a.saveLocked(); err != nil {
		a.loadErr = err
	}
}

// Role returns the role the App was opened with.
func (a *App) Role() Role {
	return a.role
}

// LoadError returns the error that prevented loading the saved library.
func (a *App) LoadError() error {
	return a.loadErr
}

// Save persists the catalog and playlists.
func (a *App) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveLocked()
}

func (a *App) saveLocked() error {
	if err := a.store.Save(store.Capture(a.catalog, a.playlists)); err != nil {
		a.logger.Error().Err(err).Msg("failed to save library")
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func (a *App) requireAdmin() error {
	if a.role != RoleAdmin {
		return fmt.Errorf("%w: %s role cannot edit the catalog", ErrForbidden, a.role)
	}
	return nil
}

// Run drives end-of-track handling and position updates until ctx ends.
func (a *App) Run(ctx context.Context) {
	a.engine.Run(ctx)
}

// Subscribe returns a playback event subscription.
func (a *App) Subscribe() *playback.Subscription {
	return a.engine.Subscribe()
}

// Close stops playback and closes the store.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.engine.Close()
	return a.store.Close()
}
