// Package store persists the catalog and playlists as a single sqlite
// snapshot. Queue, history and the playback session are never stored.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the persistence boundary of the application.
type Store interface {
	// Save replaces whatever was persisted with snap.
	Save(snap Snapshot) error
	// Load returns the last saved snapshot, or nil when nothing was saved.
	Load() (*Snapshot, error)
	Close() error
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Tracks    []TrackRecord
	Playlists []PlaylistRecord
}

// TrackRecord is a catalog entry as stored.
type TrackRecord struct {
	ID     string
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
	Path   string
}

// PlaylistRecord is a named playlist as an ordered list of track IDs.
type PlaylistRecord struct {
	Name     string
	TrackIDs []string
}

// SQLite is the sqlite-backed Store.
type SQLite struct {
	db *sql.DB
}

// Verify SQLite implements Store at compile time.
var _ Store = (*SQLite)(nil)

// Open opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*SQLite, error) {
	if path != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" on one database and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Save(snap Snapshot) error {
	return saveSnapshot(s.db, snap)
}

func (s *SQLite) Load() (*Snapshot, error) {
	return loadSnapshot(s.db)
}
