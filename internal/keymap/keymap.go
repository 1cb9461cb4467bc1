package keymap

// Binding maps keys to an action, with help text.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "playback"
}

// All contains every key binding, in help order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	{ActionPlayPause, []string{" "}, "Pause/resume", "playback"},
	{ActionStop, []string{"x"}, "Stop", "playback"},
	{ActionNextQueued, []string{"n"}, "Next from queue", "playback"},
	{ActionClearQueue, []string{"c"}, "Clear queue", "playback"},
	{ActionNextInPlaylist, []string{"]", "pgdown"}, "Next in playlist", "playback"},
	{ActionPrevInPlaylist, []string{"[", "pgup"}, "Previous in playlist", "playback"},
	{ActionPrevPlayed, []string{"p", "backspace"}, "Previously played", "playback"},
	{ActionSimilar, []string{"s"}, "Play something similar", "playback"},
	{ActionToggleAutoplay, []string{"a"}, "Toggle autoplay", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
