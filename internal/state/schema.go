package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			source_key TEXT PRIMARY KEY,
			label TEXT,
			autoplay INTEGER NOT NULL DEFAULT 1,
			window_index INTEGER NOT NULL DEFAULT 0,
			position_ms INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_key TEXT NOT NULL,
			label TEXT,
			autoplay INTEGER NOT NULL,
			window_index INTEGER NOT NULL,
			position_ms INTEGER NOT NULL,
			released_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_session_history_released ON session_history(released_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
