package store

import (
	"fmt"

	"github.com/llehouerou/musicbox/internal/catalog"
	"github.com/llehouerou/musicbox/internal/playlist"
	"github.com/llehouerou/musicbox/internal/playlists"
)

// Capture copies the catalog and playlists into a snapshot.
func Capture(cat *catalog.Catalog, pls *playlists.Playlists) Snapshot {
	all := cat.All()
	snap := Snapshot{
		Tracks:    make([]TrackRecord, 0, len(all)),
		Playlists: make([]PlaylistRecord, 0, pls.Len()),
	}
	for _, t := range all {
		snap.Tracks = append(snap.Tracks, TrackRecord{
			ID:     t.ID,
			Title:  t.Title,
			Artist: t.Artist,
			Album:  t.Album,
			Genre:  t.Genre,
			Year:   t.Year,
			Path:   t.Path,
		})
	}
	for _, name := range pls.Names() {
		pl, err := pls.Get(name)
		if err != nil {
			continue
		}
		snap.Playlists = append(snap.Playlists, PlaylistRecord{Name: name, TrackIDs: pl.IDs()})
	}
	return snap
}

// Restore rebuilds the catalog and playlists from a snapshot. Playlist
// entries whose track is missing from the catalog are dropped.
func Restore(snap Snapshot, allowDuplicates bool) (*catalog.Catalog, *playlists.Playlists, error) {
	cat := catalog.New()
	for _, r := range snap.Tracks {
		t := &catalog.Track{
			ID:     r.ID,
			Title:  r.Title,
			Artist: r.Artist,
			Album:  r.Album,
			Genre:  r.Genre,
			Year:   r.Year,
			Path:   r.Path,
		}
		if err := cat.Add(t); err != nil {
			return nil, nil, fmt.Errorf("restore track %s: %w", r.ID, err)
		}
	}

	pls := playlists.New(allowDuplicates)
	for _, r := range snap.Playlists {
		pl := playlist.NewPlaylist()
		for _, id := range r.TrackIDs {
			if cat.Has(id) {
				pl.Append(id)
			}
		}
		if err := pls.Put(r.Name, pl); err != nil {
			return nil, nil, fmt.Errorf("restore playlist %s: %w", r.Name, err)
		}
	}

	return cat, pls, nil
}
