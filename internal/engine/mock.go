package engine

import (
	"sync"
	"time"

	"github.com/llehouerou/tideplay/internal/media"
)

// Mock is a test double for Engine. It echoes back whatever it was given.
type Mock struct {
	mu        sync.Mutex
	source    media.Source
	autoplay  bool
	window    int
	position  time.Duration
	state     State
	observers observerList
	calls     []string
	prepared  bool
	released  bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{state: StateIdle}
}

// MockFactory returns a Factory that records every engine it builds.
func MockFactory(built *[]*Mock) Factory {
	return func() (Engine, error) {
		m := NewMock()
		*built = append(*built, m)
		return m, nil
	}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) SetMediaSource(src media.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetMediaSource")
	m.source = src
}

func (m *Mock) SetAutoplay(autoplay bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetAutoplay")
	m.autoplay = autoplay
}

func (m *Mock) SeekTo(window int, position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SeekTo")
	m.window = window
	m.position = position
}

func (m *Mock) Prepare() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Prepare")
	m.prepared = true
}

func (m *Mock) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AddObserver")
	m.observers = m.observers.add(o)
}

func (m *Mock) RemoveObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveObserver")
	m.observers = m.observers.remove(o)
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Release")
	m.released = true
	m.observers = nil
}

func (m *Mock) CurrentPosition() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) CurrentWindowIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window
}

func (m *Mock) Autoplay() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoplay
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Test helpers

// Emit moves the mock to s and notifies the registered observers.
func (m *Mock) Emit(s State) {
	m.mu.Lock()
	m.state = s
	obs := m.observers
	m.mu.Unlock()
	for _, o := range obs {
		o.OnStateChanged(s)
	}
}

// Fail reports err to observers and moves the mock to Idle.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	obs := m.observers
	m.mu.Unlock()
	for _, o := range obs {
		o.OnPlayerError(err)
	}
	m.Emit(StateIdle)
}

// SetPosition simulates playback progress.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) Source() media.Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Mock) Observers() []Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Observer(nil), m.observers...)
}

func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) Prepared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prepared
}

func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}
