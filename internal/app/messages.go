package app

import (
	"time"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/lifecycle"
)

// TickMsg refreshes position while a session is held.
type TickMsg time.Time

// HostEventMsg carries visibility events to apply in order.
type HostEventMsg struct {
	Events []lifecycle.Event
}

// EngineEventMsg is one engine callback forwarded to the UI loop.
type EngineEventMsg EngineEvent

// EventsClosedMsg is sent when the forwarder is closed.
type EventsClosedMsg struct{}

// EngineEvent is either a state change or an error.
type EngineEvent struct {
	State engine.State
	Err   error
}
