package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and provides access to repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer; also keeps shared-cache in-memory databases from
	// returning SQLITE_LOCKED across pooled connections.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS study_session (
		id          TEXT PRIMARY KEY,
		sequence    INTEGER NOT NULL,
		deck        TEXT NOT NULL DEFAULT '',
		mode        TEXT NOT NULL DEFAULT '',
		started_at  INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		attempts    INTEGER NOT NULL,
		correct     INTEGER NOT NULL,
		mastered    INTEGER NOT NULL,
		total       INTEGER NOT NULL,
		best_streak INTEGER NOT NULL,
		rounds      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS study_attempt (
		sequence   INTEGER PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES study_session(id) ON DELETE CASCADE,
		card_id    TEXT NOT NULL,
		stage      TEXT NOT NULL,
		correct    INTEGER NOT NULL,
		input      TEXT NOT NULL DEFAULT '',
		timestamp  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS study_attempt_card ON study_attempt (card_id)`,
	`CREATE INDEX IF NOT EXISTS study_attempt_session ON study_attempt (session_id)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FLASHIZ_DB environment variable
// 2. $XDG_DATA_HOME/flashiz/flashiz.db
// 3. ~/.local/share/flashiz/flashiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FLASHIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "flashiz", "flashiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
