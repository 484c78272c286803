package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver for hosted deployments.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

// Open connects to dsn and creates missing tables. A DSN starting with
// postgres:// or postgresql:// selects Postgres; anything else is
// treated as a SQLite path or URI.
func Open(dsn string) (*Store, error) {
	driverName, dialectName := driverFor(dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialectName == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialectName}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db, s.builder())
	if err != nil {
		db.Close()
		return nil, err
	}
	s.seq = seq

	return s, nil
}

func driverFor(dsn string) (driverName, dialectName string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres", dialect.Postgres
	}
	return "sqlite", dialect.SQLite
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the LLM request event repository.
func (s *Store) EventRepo() *Events {
	return &Events{db: s.db, b: s.builder(), seq: s.seq}
}

// KV returns the key-value repository.
func (s *Store) KV() *KV {
	return &KV{db: s.db, b: s.builder()}
}

// ChatRepo returns the chat history repository.
func (s *Store) ChatRepo() *Chat {
	return &Chat{db: s.db, b: s.builder(), seq: s.seq}
}

// ExerciseRepo returns the exercise catalog repository.
func (s *Store) ExerciseRepo() *Exercises {
	return &Exercises{db: s.db, b: s.builder()}
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// applyPragmas configures SQLite for single-user desktop use.
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

// DefaultDBPath resolves the database file path in priority order:
// 1. WELLNEST_DB environment variable
// 2. $XDG_DATA_HOME/wellnest/wellnest.db
// 3. ~/.local/share/wellnest/wellnest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WELLNEST_DB"); p != "" {
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

	p := filepath.Join(dataHome, "wellnest", "wellnest.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
// Postgres DSNs are left alone.
func EnsureDir(path string) error {
	if d, _ := driverFor(path); d == "postgres" {
		return nil
	}
	if strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
