// Package session owns the lifetime of a single playback engine: it builds
// one when asked, seeds it with resume state, and captures that state again
// before tearing the engine down.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/notify"
	"github.com/llehouerou/tideplay/internal/surface"
)

var (
	// ErrAlreadyActive is returned by Acquire while an engine is held.
	ErrAlreadyActive = errors.New("session already active")
	// ErrDetached is returned by playback controls while no engine is held.
	ErrDetached = errors.New("session not active")
)

const defaultBufferingMessage = "Buffering..."

// Controller owns at most one engine at a time.
//
//	DETACHED --Acquire--> ACTIVE
//	ACTIVE   --Release--> DETACHED  (state captured)
//	DETACHED --Release--> DETACHED  (returns last captured state)
//	ACTIVE   --Acquire--> ErrAlreadyActive
//
// Acquire and Release are meant to be driven from one host context. The
// playback controls may be called from other goroutines.
type Controller struct {
	mu      sync.Mutex
	build   engine.Factory
	surface surface.Surface
	log     zerolog.Logger
	toaster notify.Toaster
	bufMsg  string
	extra   []engine.Observer

	phase  Phase
	active binding // valid only in PhaseActive
	last   State
}

// binding is the engine held while active.
type binding struct {
	handle   Handle
	engine   engine.Engine
	observer *stateObserver
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithToaster sets where the buffering notification goes.
func WithToaster(t notify.Toaster) Option {
	return func(c *Controller) { c.toaster = t }
}

// WithBufferingMessage overrides the buffering notification text.
func WithBufferingMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.bufMsg = msg
		}
	}
}

// WithObserver registers o on every engine alongside the controller's own
// observer. It is removed before the engine is released.
func WithObserver(o engine.Observer) Option {
	return func(c *Controller) { c.extra = append(c.extra, o) }
}

// New creates a detached controller.
func New(build engine.Factory, surf surface.Surface, opts ...Option) *Controller {
	c := &Controller{
		build:   build,
		surface: surf,
		log:     zerolog.Nop(),
		toaster: notify.NopToaster{},
		bufMsg:  defaultBufferingMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire builds an engine, attaches it to the surface, loads src at the
// position in st and starts preparing. Source problems are not reported here;
// they reach observers once the engine tries to load.
func (c *Controller) Acquire(src media.Source, st State) (Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseActive {
		return Handle{}, ErrAlreadyActive
	}

	eng, err := c.build()
	if err != nil {
		return Handle{}, fmt.Errorf("build engine: %w", err)
	}
	if err := c.surface.Attach(eng); err != nil {
		eng.Release()
		return Handle{}, fmt.Errorf("attach engine: %w", err)
	}

	h := Handle{ID: uuid.New(), Source: src}
	log := c.log.With().Str("session", h.ID.String()).Logger()
	obs := newStateObserver(log, c.toaster, c.bufMsg)

	eng.SetMediaSource(src)
	eng.SetAutoplay(st.Autoplay)
	eng.SeekTo(st.WindowIndex, st.Position)
	eng.AddObserver(obs)
	for _, o := range c.extra {
		eng.AddObserver(o)
	}

	c.active = binding{handle: h, engine: eng, observer: obs}
	c.phase = PhaseActive

	log.Info().
		Int("windows", src.Len()).
		Int("window", st.WindowIndex).
		Dur("position", st.Position).
		Bool("autoplay", st.Autoplay).
		Msg("session acquired")

	eng.Prepare()
	return h, nil
}

// Release captures the resume state, unregisters observers, detaches and
// destroys the engine. Without an engine it returns the last captured state.
func (c *Controller) Release() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseActive {
		return c.last
	}

	b := c.active
	st := State{
		Autoplay:    b.engine.Autoplay(),
		WindowIndex: b.engine.CurrentWindowIndex(),
		Position:    b.engine.CurrentPosition(),
	}

	b.observer.close()
	b.engine.RemoveObserver(b.observer)
	for _, o := range c.extra {
		b.engine.RemoveObserver(o)
	}
	c.surface.Detach(b.engine)
	b.engine.Release()

	c.active = binding{}
	c.phase = PhaseDetached
	c.last = st

	c.log.Info().
		Str("session", b.handle.ID.String()).
		Int("window", st.WindowIndex).
		Dur("position", st.Position).
		Bool("autoplay", st.Autoplay).
		Msg("session released")
	return st
}

// Phase returns the ownership state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Active returns true while an engine is held.
func (c *Controller) Active() bool {
	return c.Phase() == PhaseActive
}

// Handle returns the current handle.
func (c *Controller) Handle() (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return Handle{}, false
	}
	return c.active.handle, true
}

// LastState returns the state captured by the most recent Release.
func (c *Controller) LastState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Snapshot reads the live resume state without releasing.
func (c *Controller) Snapshot() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return c.last, false
	}
	e := c.active.engine
	return State{
		Autoplay:    e.Autoplay(),
		WindowIndex: e.CurrentWindowIndex(),
		Position:    e.CurrentPosition(),
	}, true
}

// EngineState returns the last state the engine reported, and its last error.
// Detached controllers report Idle.
func (c *Controller) EngineState() (engine.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return engine.StateIdle, nil
	}
	return c.active.observer.snapshot()
}

// SetAutoplay plays or pauses the held engine.
func (c *Controller) SetAutoplay(autoplay bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return ErrDetached
	}
	c.active.engine.SetAutoplay(autoplay)
	return nil
}

// TogglePlay flips autoplay and returns the new value.
func (c *Controller) TogglePlay() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return false, ErrDetached
	}
	next := !c.active.engine.Autoplay()
	c.active.engine.SetAutoplay(next)
	return next, nil
}

// SeekTo moves to position in window.
func (c *Controller) SeekTo(window int, position time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return ErrDetached
	}
	if window < 0 || window >= c.active.handle.Source.Len() {
		return fmt.Errorf("window %d out of range [0,%d)", window, c.active.handle.Source.Len())
	}
	c.active.engine.SeekTo(window, max(position, 0))
	return nil
}

// Seek moves by delta inside the current window.
func (c *Controller) Seek(delta time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return ErrDetached
	}
	e := c.active.engine
	e.SeekTo(e.CurrentWindowIndex(), max(e.CurrentPosition()+delta, 0))
	return nil
}

// TrackInfo describes the current window when the engine can report it.
func (c *Controller) TrackInfo() (*engine.TrackInfo, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseActive {
		return nil, 0
	}
	d, ok := c.active.engine.(engine.Describer)
	if !ok {
		return nil, 0
	}
	return d.TrackInfo(), d.Duration()
}
