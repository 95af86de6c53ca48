// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionSuspend Action = "suspend"
	ActionHelp    Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextWindow  Action = "next_window"
	ActionPrevWindow  Action = "prev_window"
	ActionFirstWindow Action = "first_window"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionRestart     Action = "restart"
)
