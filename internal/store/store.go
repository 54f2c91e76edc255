// Package store implements the primary store over SQLite: the visibility
// query that selects indexable (version, project, owner) triples and the
// batch getters that hydrate project and version records.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	ierrors "github.com/forgelode/indexer/internal/errors"
)

// Store is the SQLite-backed primary store.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the store at path. An empty path opens an
// in-memory database for testing. Uses WAL mode for concurrent access.
func New(path string) (*Store, error) {
	var dsn string
	if path == "" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ierrors.Wrap(ierrors.ErrCodeStoreConnect,
				fmt.Errorf("failed to create directory %s: %w", dir, err))
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ierrors.Wrap(ierrors.ErrCodeStoreConnect, err)
	}

	// Single writer to prevent lock contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// WAL mode must be set via PRAGMA for modernc.org/sqlite; DSN params
	// may be ignored.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, ierrors.Wrap(ierrors.ErrCodeStoreConnect,
				fmt.Errorf("failed to set pragma: %w", err))
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates the tables if they do not exist. Array- and
// object-valued columns are stored as JSON text.
func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS team_members (
			team_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			is_owner INTEGER NOT NULL DEFAULT 0,
			accepted INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (team_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS organizations (
			id INTEGER PRIMARY KEY,
			team_id INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			categories TEXT NOT NULL DEFAULT '[]',
			additional_categories TEXT NOT NULL DEFAULT '[]',
			license TEXT NOT NULL DEFAULT '',
			license_url TEXT,
			icon_url TEXT,
			color INTEGER,
			team_id INTEGER NOT NULL,
			organization_id INTEGER,
			thread_id INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			requested_status TEXT,
			slug TEXT,
			follows INTEGER NOT NULL DEFAULT 0,
			downloads INTEGER NOT NULL DEFAULT 0,
			approved_at TEXT,
			published_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			queued_at TEXT,
			monetization_status TEXT NOT NULL DEFAULT 'monetized',
			project_types TEXT NOT NULL DEFAULT '[]',
			games TEXT NOT NULL DEFAULT '[]',
			links TEXT NOT NULL DEFAULT '{}',
			gallery TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS versions (
			id INTEGER PRIMARY KEY,
			project_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			loaders TEXT NOT NULL DEFAULT '[]',
			project_types TEXT NOT NULL DEFAULT '[]',
			version_fields TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_versions_project ON versions(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return ierrors.StoreError("failed to initialize schema", err)
		}
	}
	return nil
}

// placeholders returns a "?, ?, ..." list of the given length.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args converts ids to driver arguments.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// stringArgs converts strings to driver arguments.
func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
