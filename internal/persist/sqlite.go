// Package persist provides optional snapshot export of a Memory's
// concept network to SQLite or Neo4j, for host introspection and
// offline analysis. Neither backend is imported by internal/memory or
// internal/reasoner: persistence is a host-driven side export, never a
// dependency of the reasoning core.
package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nars-core/internal/memory"
	"nars-core/internal/sentence"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    taken_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS concepts (
    snapshot_id TEXT NOT NULL,
    name TEXT NOT NULL,
    belief_count INTEGER NOT NULL,
    beliefs TEXT,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tasks (
    snapshot_id TEXT NOT NULL,
    key TEXT NOT NULL,
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`

// SQLiteStore persists Memory snapshots to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at
// path and applies its schema, following the pragma set the teacher
// uses for its own SQLite storage.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("persist: sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persist: ping sqlite: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("persist: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persist: apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot writes mem's current concept and global-task bag
// contents as a new, timestamped snapshot row set.
func (s *SQLiteStore) SaveSnapshot(mem *memory.Memory) (string, error) {
	snapshotID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("persist: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO snapshots (id, taken_at) VALUES (?, ?)",
		snapshotID, time.Now().Unix(),
	); err != nil {
		return "", fmt.Errorf("persist: insert snapshot: %w", err)
	}

	for _, name := range mem.ConceptBagSnapshot() {
		c, ok := mem.ConceptAt(name)
		if !ok {
			continue
		}
		beliefsJSON, err := json.Marshal(beliefSummaries(c.Beliefs()))
		if err != nil {
			return "", fmt.Errorf("persist: marshal beliefs for %q: %w", name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO concepts (snapshot_id, name, belief_count, beliefs)
			 VALUES (?, ?, ?, ?)`,
			snapshotID, name, len(c.Beliefs()), string(beliefsJSON),
		); err != nil {
			return "", fmt.Errorf("persist: insert concept %q: %w", name, err)
		}
	}

	for _, key := range mem.GlobalTaskBagSnapshot() {
		if _, err := tx.Exec(
			"INSERT INTO tasks (snapshot_id, key) VALUES (?, ?)",
			snapshotID, key,
		); err != nil {
			return "", fmt.Errorf("persist: insert task %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("persist: commit snapshot: %w", err)
	}

	return snapshotID, nil
}

type beliefSummary struct {
	Name       string  `json:"name"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

func beliefSummaries(beliefs []*sentence.Value) []beliefSummary {
	out := make([]beliefSummary, 0, len(beliefs))
	for _, b := range beliefs {
		s := beliefSummary{Name: b.Term.Name()}
		if b.Truth != nil {
			s.Frequency = b.Truth.Frequency.Value()
			s.Confidence = b.Truth.Confidence.Value()
		}
		out = append(out, s)
	}
	return out
}
