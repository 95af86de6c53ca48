// Package engine wraps the audio engine behind the small surface the session
// controller is allowed to touch.
package engine

// State is the engine playback state reported to observers.
//
//	┌──────┐ prepare ┌───────────┐ loaded ┌───────┐ end of last item ┌───────┐
//	│ Idle │────────▶│ Buffering │───────▶│ Ready │─────────────────▶│ Ended │
//	└──────┘         └───────────┘        └───────┘                  └───────┘
//	    ▲                  │  ▲               │
//	    └──── error ───────┘  └─ next item ───┘
//
// Unknown is never produced by this package's engines; it is the label for any
// value outside the enumerated set.
type State int

const (
	StateIdle State = iota
	StateBuffering
	StateReady
	StateEnded
	StateUnknown
)

// String returns the stable label used in logs and on the status surface.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBuffering:
		return "Buffering"
	case StateReady:
		return "Ready"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true if the engine will not make progress on its own.
func (s State) IsTerminal() bool {
	return s == StateIdle || s == StateEnded
}
