package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/tideplay/internal/media"
)

// State is everything needed to pick playback up again after the engine has
// been torn down. It is only meaningful for the source it was captured from.
type State struct {
	Autoplay    bool
	WindowIndex int
	Position    time.Duration
}

// DefaultState starts at the beginning of the first window and plays as soon
// as the engine is ready.
func DefaultState() State {
	return State{Autoplay: true}
}

// Phase is the controller's ownership state.
type Phase int

const (
	PhaseDetached Phase = iota
	PhaseActive
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDetached:
		return "Detached"
	case PhaseActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Handle identifies one acquired engine. It grants no access to the engine.
type Handle struct {
	ID     uuid.UUID
	Source media.Source
}
