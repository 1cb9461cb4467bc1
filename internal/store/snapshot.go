package store

import (
	"database/sql"
	"errors"
	"time"
)

func loadSnapshot(db *sql.DB) (*Snapshot, error) {
	var savedAt int64
	err := db.QueryRow(`SELECT saved_at FROM snapshot_state WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nothing persisted yet
	}
	if err != nil {
		return nil, err
	}

	tracks, err := loadTracks(db)
	if err != nil {
		return nil, err
	}
	playlists, err := loadPlaylists(db)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Tracks: tracks, Playlists: playlists}, nil
}

func loadTracks(db *sql.DB) ([]TrackRecord, error) {
	rows, err := db.Query(`
		SELECT id, title, artist, album, genre, year, path
		FROM tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []TrackRecord
	for rows.Next() {
		var t TrackRecord
		var year sql.NullInt64
		var path sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Album, &t.Genre, &year, &path); err != nil {
			return nil, err
		}
		t.Year = intValue(year)
		t.Path = stringValue(path)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func loadPlaylists(db *sql.DB) ([]PlaylistRecord, error) {
	rows, err := db.Query(`
		SELECT p.name, pt.track_id
		FROM playlists p
		LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id
		ORDER BY p.position, pt.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []PlaylistRecord
	for rows.Next() {
		var name string
		var trackID sql.NullString
		if err := rows.Scan(&name, &trackID); err != nil {
			return nil, err
		}
		if n := len(playlists); n == 0 || playlists[n-1].Name != name {
			playlists = append(playlists, PlaylistRecord{Name: name, TrackIDs: []string{}})
		}
		if trackID.Valid {
			last := &playlists[len(playlists)-1]
			last.TrackIDs = append(last.TrackIDs, trackID.String)
		}
	}
	return playlists, rows.Err()
}

func saveSnapshot(sqlDB *sql.DB, snap Snapshot) error {
	return withTx(sqlDB, func(tx *sql.Tx) error {
		// Clear existing snapshot; playlist_tracks cascades
		for _, table := range []string{"playlists", "tracks"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return err
			}
		}

		if err := insertTracks(tx, snap.Tracks); err != nil {
			return err
		}
		if err := insertPlaylists(tx, snap.Playlists); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO snapshot_state (id, saved_at)
			VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at
		`, time.Now().Unix())
		return err
	})
}

func insertTracks(tx *sql.Tx, tracks []TrackRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO tracks (id, position, title, artist, album, genre, year, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		_, err := stmt.Exec(t.ID, i, t.Title, t.Artist, t.Album, t.Genre, nullInt(t.Year), nullString(t.Path))
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPlaylists(tx *sql.Tx, playlists []PlaylistRecord) error {
	entry, err := tx.Prepare(`
		INSERT INTO playlist_tracks (playlist_id, position, track_id)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entry.Close()

	for i, p := range playlists {
		res, err := tx.Exec(`INSERT INTO playlists (position, name) VALUES (?, ?)`, i, p.Name)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for pos, trackID := range p.TrackIDs {
			if _, err := entry.Exec(id, pos, trackID); err != nil {
				return err
			}
		}
	}
	return nil
}
