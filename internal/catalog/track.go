// Package catalog holds the master collection of track records.
package catalog

import (
	"fmt"
	"strings"
)

// Track describes a single song and the audio file backing it.
// The catalog owns every Track; other containers refer to it by ID.
type Track struct {
	ID     string
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
	Path   string // empty means no playable audio
}

// Playable reports whether the track has an audio file reference.
func (t *Track) Playable() bool {
	return t != nil && strings.TrimSpace(t.Path) != ""
}

// String returns "Title - Artist".
func (t *Track) String() string {
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}

// TrackUpdate carries the editable fields of a track.
// Nil fields are left unchanged.
type TrackUpdate struct {
	Title  *string
	Artist *string
	Album  *string
	Genre  *string
	Year   *int
	Path   *string
}

func (u TrackUpdate) apply(t *Track) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Artist != nil {
		t.Artist = *u.Artist
	}
	if u.Album != nil {
		t.Album = *u.Album
	}
	if u.Genre != nil {
		t.Genre = *u.Genre
	}
	if u.Year != nil {
		t.Year = *u.Year
	}
	if u.Path != nil {
		t.Path = *u.Path
	}
}
