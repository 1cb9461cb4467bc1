// Package keymap defines the key bindings of the now-playing screen.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	ActionPlayPause      Action = "play_pause"
	ActionStop           Action = "stop"
	ActionNextQueued     Action = "next_queued"
	ActionClearQueue     Action = "clear_queue"
	ActionNextInPlaylist Action = "next_in_playlist"
	ActionPrevInPlaylist Action = "prev_in_playlist"
	ActionPrevPlayed     Action = "prev_played"
	ActionSimilar        Action = "similar"
	ActionToggleAutoplay Action = "toggle_autoplay"
)
