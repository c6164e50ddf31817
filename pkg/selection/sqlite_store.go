// ABOUTME: SQLite-backed selection store
// ABOUTME: One row per identifier, ordered by insertion sequence

package selection

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	id    TEXT PRIMARY KEY,
	note  TEXT NOT NULL DEFAULT '',
	seq   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_selections_seq ON selections(seq);
`

// SQLiteStore persists selections in a local SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens (creating if needed) the store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open selection store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init selection store: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Probe() bool {
	if s.db == nil {
		return false
	}
	return s.db.Ping() == nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrStoreClosed
	}
	var note string
	err := s.db.QueryRow(`SELECT note FROM selections WHERE id = ?`, key).Scan(&note)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get selection %s: %w", key, err)
	}
	return note, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.Exec(`
		INSERT INTO selections (id, note, seq)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM selections))
		ON CONFLICT(id) DO UPDATE SET note = excluded.note`, key, value)
	if err != nil {
		return fmt.Errorf("set selection %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(`DELETE FROM selections WHERE id = ?`, key); err != nil {
		return fmt.Errorf("remove selection %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys() ([]string, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.Query(`SELECT id FROM selections ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		keys = append(keys, id)
	}
	return keys, rows.Err()
}
