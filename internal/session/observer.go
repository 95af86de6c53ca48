package session

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/llehouerou/tideplay/internal/engine"
	"github.com/llehouerou/tideplay/internal/notify"
)

// stateObserver logs engine transitions and toasts on entering Buffering.
// Once closed it ignores everything, so callbacks racing a release are inert.
type stateObserver struct {
	log     zerolog.Logger
	toaster notify.Toaster
	msg     string
	closed  atomic.Bool

	mu      sync.Mutex
	last    engine.State
	lastErr error
}

func newStateObserver(log zerolog.Logger, toaster notify.Toaster, msg string) *stateObserver {
	return &stateObserver{
		log:     log,
		toaster: toaster,
		msg:     msg,
		last:    engine.StateIdle,
	}
}

func (o *stateObserver) OnStateChanged(s engine.State) {
	if o.closed.Load() {
		return
	}
	o.mu.Lock()
	prev := o.last
	o.last = s
	o.mu.Unlock()

	o.log.Info().
		Str("state", s.String()).
		Str("previous", prev.String()).
		Msg("engine state changed")

	if s == engine.StateBuffering && prev != engine.StateBuffering {
		o.toast()
	}
}

func (o *stateObserver) OnPlayerError(err error) {
	if o.closed.Load() {
		return
	}
	o.mu.Lock()
	o.lastErr = err
	o.mu.Unlock()
	o.log.Warn().Err(err).Msg("engine error")
}

func (o *stateObserver) toast() {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn().Interface("panic", r).Msg("toaster panicked")
		}
	}()
	o.toaster.Toast(o.msg)
}

func (o *stateObserver) close() {
	o.closed.Store(true)
}

func (o *stateObserver) snapshot() (engine.State, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last, o.lastErr
}
