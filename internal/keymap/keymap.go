package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "playback"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSuspend, []string{"ctrl+z"}, "Suspend to shell", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Pause and rewind", "playback"},
	{ActionNextWindow, []string{"n", "pgdown"}, "Next window", "playback"},
	{ActionPrevWindow, []string{"p", "pgup"}, "Previous window", "playback"},
	{ActionFirstWindow, []string{"home"}, "First window", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionRestart, []string{"0"}, "Restart window", "playback"},
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

// DisplayKey returns the label shown in help for a key string.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
