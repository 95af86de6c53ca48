package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tideplay/internal/db"
	"github.com/llehouerou/tideplay/internal/session"
)

// historyLimit caps session_history; older rows are pruned on save.
const historyLimit = 200

// SessionRecord is resume state tied to the source it was captured from.
type SessionRecord struct {
	SourceKey string
	Label     string // display name, optional
	State     session.State
	UpdatedAt time.Time
}

func getSession(db *sql.DB, sourceKey string) (*SessionRecord, error) {
	row := db.QueryRow(`
		SELECT source_key, label, autoplay, window_index, position_ms, updated_at
		FROM session_state WHERE source_key = ?
	`, sourceKey)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// saveSession upserts the current state and appends to the history.
func saveSession(db *sql.DB, rec SessionRecord) error {
	return saveBatch(db, []SessionRecord{rec}, []SessionRecord{rec})
}

// saveBatch upserts every record in states and appends every record in
// released to the history, in one transaction.
func saveBatch(db *sql.DB, states, released []SessionRecord) error {
	if len(states) == 0 && len(released) == 0 {
		return nil
	}
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		for _, rec := range states {
			_, err := tx.Exec(`
				INSERT INTO session_state (source_key, label, autoplay, window_index, position_ms, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(source_key) DO UPDATE SET
					label = excluded.label,
					autoplay = excluded.autoplay,
					window_index = excluded.window_index,
					position_ms = excluded.position_ms,
					updated_at = excluded.updated_at
			`, rec.SourceKey, nullLabel(rec), rec.State.Autoplay, rec.State.WindowIndex,
				rec.State.Position.Milliseconds(), rec.UpdatedAt.UnixMilli())
			if err != nil {
				return err
			}
		}

		for _, rec := range released {
			_, err := tx.Exec(`
				INSERT INTO session_history (source_key, label, autoplay, window_index, position_ms, released_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, rec.SourceKey, nullLabel(rec), rec.State.Autoplay, rec.State.WindowIndex,
				rec.State.Position.Milliseconds(), rec.UpdatedAt.UnixMilli())
			if err != nil {
				return err
			}
		}

		_, err := tx.Exec(`
			DELETE FROM session_history WHERE id NOT IN (
				SELECT id FROM session_history ORDER BY released_at DESC, id DESC LIMIT ?
			)
		`, historyLimit)
		return err
	})
}

func nullLabel(rec SessionRecord) sql.NullString {
	return sql.NullString{String: rec.Label, Valid: rec.Label != ""}
}

func listHistory(db *sql.DB, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = historyLimit
	}
	rows, err := db.Query(`
		SELECT source_key, label, autoplay, window_index, position_ms, released_at
		FROM session_history
		ORDER BY released_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*SessionRecord, error) {
	var rec SessionRecord
	var label sql.NullString
	var posMs, updated int64
	err := s.Scan(&rec.SourceKey, &label, &rec.State.Autoplay, &rec.State.WindowIndex, &posMs, &updated)
	if err != nil {
		return nil, err
	}
	rec.Label = dbutil.NullStringValue(label)
	rec.State.Position = time.Duration(posMs) * time.Millisecond
	rec.UpdatedAt = time.UnixMilli(updated)
	return &rec, nil
}
