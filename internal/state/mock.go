package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	sessions map[string]SessionRecord
	history  []SessionRecord
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{sessions: make(map[string]SessionRecord)}
}

func (m *Mock) GetSession(sourceKey string) (*SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[sourceKey]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &rec, nil
}

func (m *Mock) SaveSession(rec SessionRecord) {
	_ = m.SaveSessionNow(rec)
}

func (m *Mock) SaveSessionNow(rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.SourceKey] = rec
	m.history = append([]SessionRecord{rec}, m.history...)
	return nil
}

func (m *Mock) History(limit int) ([]SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.history) {
		limit = len(m.history)
	}
	return append([]SessionRecord(nil), m.history[:limit]...), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
