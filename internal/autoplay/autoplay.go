// Package autoplay decides which track plays next when the current one
// finishes on its own.
package autoplay

import (
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/llehouerou/musicbox/internal/catalog"
)

// ErrNoEligibleTrack is returned when every strategy came up empty.
var ErrNoEligibleTrack = errors.New("no eligible tracks")

// Kind identifies the strategy that produced a decision.
type Kind int

const (
	None Kind = iota
	FromQueue
	FromPlaylist
	Similar
	Random
)

func (k Kind) String() string {
	switch k {
	case FromQueue:
		return "queue"
	case FromPlaylist:
		return "playlist"
	case Similar:
		return "similar"
	case Random:
		return "random"
	default:
		return "none"
	}
}

// Decision is the resolver's answer. ID is empty for None.
type Decision struct {
	Kind Kind
	ID   string
}

// Input is a read-only view of the session at the moment a track ended.
type Input struct {
	Current      *catalog.Track
	PlaylistMode bool
	// QueueHead is the track at the front of the queue, nil if the queue is
	// empty or its head no longer resolves.
	QueueHead *catalog.Track
	// PlaylistNext is the successor of the playlist cursor, nil at the tail.
	PlaylistNext *catalog.Track
	// Tracks is the whole catalog in display order.
	Tracks []*catalog.Track
	// Rand drives the random fallback. Nil uses the global source.
	Rand *rand.Rand
}

// Resolve applies the autoplay rules in order and returns the first that
// yields a track. It never mutates anything.
func Resolve(in Input) (Decision, error) {
	if in.QueueHead != nil && in.QueueHead.Playable() {
		return Decision{Kind: FromQueue, ID: in.QueueHead.ID}, nil
	}

	if in.PlaylistMode {
		if in.PlaylistNext != nil && in.PlaylistNext.Playable() {
			return Decision{Kind: FromPlaylist, ID: in.PlaylistNext.ID}, nil
		}
		return Decision{Kind: None}, ErrNoEligibleTrack
	}

	return Pick(in.Current, in.Tracks, in.Rand)
}

// Pick chooses the track most similar to current among the playable tracks,
// falling back to a random one when nothing shares an artist or genre.
// With fewer than two playable tracks it returns ErrNoEligibleTrack.
func Pick(current *catalog.Track, tracks []*catalog.Track, r *rand.Rand) (Decision, error) {
	playable := lo.Filter(tracks, func(t *catalog.Track, _ int) bool {
		return t.Playable()
	})
	if current == nil || len(playable) < 2 {
		return Decision{Kind: None}, ErrNoEligibleTrack
	}

	others := lo.Filter(playable, func(t *catalog.Track, _ int) bool {
		return t.ID != current.ID
	})
	if len(others) == 0 {
		return Decision{Kind: None}, ErrNoEligibleTrack
	}

	if best, ok := mostSimilar(current, others); ok {
		return Decision{Kind: Similar, ID: best.ID}, nil
	}

	var i int
	if r != nil {
		i = r.IntN(len(others))
	} else {
		i = rand.IntN(len(others))
	}
	return Decision{Kind: Random, ID: others[i].ID}, nil
}

// Score weighs how close candidate is to current: 2 for a shared artist,
// 1 for a shared genre, 0 otherwise.
func Score(current, candidate *catalog.Track) int {
	switch {
	case candidate.Artist == current.Artist:
		return 2
	case candidate.Genre == current.Genre:
		return 1
	default:
		return 0
	}
}

// mostSimilar returns the highest scoring candidate. Ties keep the earlier
// candidate so catalog order breaks them.
func mostSimilar(current *catalog.Track, candidates []*catalog.Track) (*catalog.Track, bool) {
	var best *catalog.Track
	bestScore := 0
	for _, c := range candidates {
		if s := Score(current, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, best != nil
}
