package catalog

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/llehouerou/musicbox/internal/player"
)

// FromPath builds a track from an audio file's tags.
// If id is empty a random one is assigned.
// Missing tags fall back to the file name for the title.
func FromPath(path, id string) *Track {
	if id == "" {
		id = uuid.NewString()
	}

	info, err := player.ReadTrackInfo(path)
	if err != nil {
		return &Track{
			ID:    id,
			Path:  path,
			Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		}
	}

	return &Track{
		ID:     id,
		Path:   path,
		Title:  info.Title,
		Artist: info.Artist,
		Album:  info.Album,
		Genre:  info.Genre,
		Year:   info.Year,
	}
}
