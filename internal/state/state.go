// Package state persists resume state across process restarts.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tideplay"
	dbFileName   = "tideplay.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]SessionRecord // latest state per source
	released  []SessionRecord          // every save, in order
	now       func() time.Time
}

// Open opens the database under the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (or creates) the database at path.
func OpenPath(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps writes from the debounce timer serialized.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{
		db:      db,
		pending: make(map[string]SessionRecord),
		now:     time.Now,
	}, nil
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	states, released := m.takePendingLocked()
	m.saveMu.Unlock()

	_ = saveBatch(m.db, states, released)

	return m.db.Close()
}

// GetSession returns the saved resume state for a source key, or nil.
func (m *Manager) GetSession(sourceKey string) (*SessionRecord, error) {
	return getSession(m.db, sourceKey)
}

// History returns the most recent releases, newest first.
func (m *Manager) History(limit int) ([]SessionRecord, error) {
	return listHistory(m.db, limit)
}

// SaveSessionNow writes rec immediately.
func (m *Manager) SaveSessionNow(rec SessionRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = m.now()
	}
	return saveSession(m.db, rec)
}

// SaveSession schedules rec to be written after a short debounce. The resume
// state of a source collapses to its latest save; every save still gets its
// own history row.
func (m *Manager) SaveSession(rec SessionRecord) {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = m.now()
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[rec.SourceKey] = rec
	m.released = append(m.released, rec)

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		states, released := m.takePendingLocked()
		m.saveMu.Unlock()

		_ = saveBatch(m.db, states, released)
	})
}

func (m *Manager) takePendingLocked() (states, released []SessionRecord) {
	for _, rec := range m.pending {
		states = append(states, rec)
	}
	released = m.released
	m.pending = make(map[string]SessionRecord)
	m.released = nil
	return states, released
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
