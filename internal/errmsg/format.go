// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpTrackAdd    Op = "add track"
	OpTrackEdit   Op = "edit track"
	OpTrackRemove Op = "remove track"
	OpTrackSearch Op = "search tracks"
	OpImportFile  Op = "import file"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"
	OpPlaylistShow     Op = "show playlist"

	// Queue operations
	OpQueueAdd Op = "add to queue"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackNext   Op = "play next track"
	OpPlaybackPrev   Op = "play previous track"
	OpAutoplay       Op = "autoplay"

	// Persistence
	OpStoreLoad Op = "load library"
	OpStoreSave Op = "save library"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
