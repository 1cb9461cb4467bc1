package player

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo holds the tag metadata of an audio file.
type TrackInfo struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
	Track  int
}

// ReadTrackInfo reads tags from the file at path.
// The title falls back to the file name when untagged.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	track, _ := m.Track()

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}

	return &TrackInfo{
		Path:   path,
		Title:  title,
		Artist: artist,
		Album:  m.Album(),
		Genre:  m.Genre(),
		Year:   m.Year(),
		Track:  track,
	}, nil
}

// DecodeDuration is a DurationLookup that decodes the file headers
// to compute its length.
var DecodeDuration DurationLookup = DurationFunc(audioDuration)

func audioDuration(path string) (time.Duration, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	streamer, format, err := decode(f, filepath.Ext(path))
	if err != nil {
		return 0, false
	}
	defer streamer.Close()

	n := streamer.Len()
	if n <= 0 {
		return 0, false
	}
	return format.SampleRate.D(n), true
}
