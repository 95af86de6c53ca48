package engine

import (
	"time"

	"github.com/llehouerou/tideplay/internal/media"
)

// Engine is the contract between a session controller and one running engine
// instance. Nothing outside this surface is inspected.
type Engine interface {
	SetMediaSource(src media.Source)
	SetAutoplay(autoplay bool)
	SeekTo(window int, position time.Duration)
	// Prepare starts loading asynchronously. Progress and failures are
	// reported to observers only.
	Prepare()
	AddObserver(o Observer)
	RemoveObserver(o Observer)
	// Release tears the engine down. No observer is called after it returns.
	Release()

	CurrentPosition() time.Duration
	CurrentWindowIndex() int
	Autoplay() bool
	State() State
}

// Factory builds a fresh engine instance.
type Factory func() (Engine, error)

// Describer is implemented by engines that know what they are playing.
type Describer interface {
	TrackInfo() *TrackInfo
	Duration() time.Duration
}

// Verify implementations at compile time.
var (
	_ Engine    = (*Player)(nil)
	_ Describer = (*Player)(nil)
	_ Engine    = (*Mock)(nil)
)
