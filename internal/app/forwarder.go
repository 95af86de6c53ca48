package app

import (
	"sync"

	"github.com/llehouerou/tideplay/internal/engine"
)

// Forwarder is an engine observer that hands callbacks to the UI loop.
// Callbacks never block: when the buffer is full the event is dropped, the UI
// reads live state on the next tick anyway.
type Forwarder struct {
	mu     sync.Mutex
	ch     chan EngineEvent
	closed bool
}

// NewForwarder creates a forwarder with room for size pending events.
func NewForwarder(size int) *Forwarder {
	return &Forwarder{ch: make(chan EngineEvent, size)}
}

// OnStateChanged implements engine.Observer.
func (f *Forwarder) OnStateChanged(s engine.State) {
	f.send(EngineEvent{State: s})
}

// OnPlayerError implements engine.Observer.
func (f *Forwarder) OnPlayerError(err error) {
	f.send(EngineEvent{State: engine.StateIdle, Err: err})
}

func (f *Forwarder) send(ev EngineEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- ev:
	default:
	}
}

// Events returns the receive side.
func (f *Forwarder) Events() <-chan EngineEvent {
	return f.ch
}

// Close stops forwarding and closes the channel.
func (f *Forwarder) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

var _ engine.Observer = (*Forwarder)(nil)
