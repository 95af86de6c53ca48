package lifecycle

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/media"
	"github.com/llehouerou/tideplay/internal/session"
)

// SessionController is the part of session.Controller the binder drives.
type SessionController interface {
	Acquire(src media.Source, st session.State) (session.Handle, error)
	Release() session.State
	Active() bool
}

var _ SessionController = (*session.Controller)(nil)

// Binder feeds host events to a session controller according to the band,
// carrying resume state from each release into the next acquire.
type Binder struct {
	band      Band
	ctrl      SessionController
	src       media.Source
	state     session.State
	log       zerolog.Logger
	onRelease func(media.Source, session.State)
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithBinderLogger sets the logger.
func WithBinderLogger(l zerolog.Logger) BinderOption {
	return func(b *Binder) { b.log = l }
}

// OnRelease registers fn to run after every release with the captured state.
func OnRelease(fn func(media.Source, session.State)) BinderOption {
	return func(b *Binder) { b.onRelease = fn }
}

// NewBinder creates a binder that will acquire src starting from initial.
func NewBinder(band Band, ctrl SessionController, src media.Source, initial session.State, opts ...BinderOption) *Binder {
	b := &Binder{
		band:  band,
		ctrl:  ctrl,
		src:   src,
		state: initial,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle applies one host event. Events that are not a boundary for the band
// are ignored; an acquire boundary while already active does nothing.
func (b *Binder) Handle(ev Event) error {
	bounds := b.band.Boundaries()
	b.log.Debug().Str("event", ev.String()).Str("band", b.band.String()).Msg("host event")

	switch ev {
	case bounds.Acquire:
		if b.ctrl.Active() {
			return nil
		}
		_, err := b.ctrl.Acquire(b.src, b.state)
		return err
	case bounds.Release:
		if !b.ctrl.Active() {
			return nil
		}
		b.state = b.ctrl.Release()
		if b.onRelease != nil {
			b.onRelease(b.src, b.state)
		}
	}
	return nil
}

// Band returns the binder's band.
func (b *Binder) Band() Band { return b.band }

// State returns the resume state the next acquire will use.
func (b *Binder) State() session.State { return b.state }

// Source returns the source the binder acquires.
func (b *Binder) Source() media.Source { return b.src }

// Shutdown releases whatever is held, as if the host went invisible.
func (b *Binder) Shutdown() {
	if !b.ctrl.Active() {
		return
	}
	b.state = b.ctrl.Release()
	if b.onRelease != nil {
		b.onRelease(b.src, b.state)
	}
}
