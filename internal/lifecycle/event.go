// Package lifecycle turns host visibility events into session acquire and
// release calls.
package lifecycle

import (
	"fmt"
	"strings"
)

// Event is a host visibility transition.
type Event int

const (
	// Start: the surface became visible, possibly without focus.
	Start Event = iota
	// Resume: the surface is visible and focused.
	Resume
	// Pause: the surface is losing focus.
	Pause
	// Stop: the surface is no longer visible.
	Stop
)

func (e Event) String() string {
	switch e {
	case Start:
		return "Start"
	case Resume:
		return "Resume"
	case Pause:
		return "Pause"
	case Stop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// Band says whether the host can keep a surface visible without focus.
type Band int

const (
	// SingleWindow hosts never show an unfocused surface, and may skip Stop.
	SingleWindow Band = iota
	// MultiWindow hosts can show several surfaces at once.
	MultiWindow
)

func (b Band) String() string {
	switch b {
	case SingleWindow:
		return "single"
	case MultiWindow:
		return "multi"
	default:
		return "unknown"
	}
}

// Boundary is the event pair that acquires and releases the engine.
type Boundary struct {
	Acquire Event
	Release Event
}

// Boundaries returns the acquire/release pair for the band:
//
//	band          acquire on   release on
//	MultiWindow   Start        Stop
//	SingleWindow  Resume       Pause
//
// Acquire as late and release as early as the host guarantees it can.
func (b Band) Boundaries() Boundary {
	if b == MultiWindow {
		return Boundary{Acquire: Start, Release: Stop}
	}
	return Boundary{Acquire: Resume, Release: Pause}
}

// ParseBand parses "multi" or "single". "auto" and "" resolve to def.
func ParseBand(s string, def Band) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return def, nil
	case "multi", "multi-window", "multiwindow":
		return MultiWindow, nil
	case "single", "single-window", "singlewindow":
		return SingleWindow, nil
	default:
		return def, fmt.Errorf("unknown band %q", s)
	}
}
