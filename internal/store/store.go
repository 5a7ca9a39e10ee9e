// Package store is the SQLite-backed collaborator for command execution and
// mention sync.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// DefaultColumnName is the column seeded by Migrate.
const DefaultColumnName = "Backlog"

var (
	// ErrTaskNotFound is returned when a task id does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoDefaultColumn is returned when no column is marked default.
	ErrNoDefaultColumn = errors.New("no default column configured")
)

var _ smarttext.Collaborator = (*Store)(nil)

// Store implements smarttext.Collaborator on a bun database.
type Store struct {
	db *bun.DB
}

// New wraps an existing bun database.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open opens the SQLite database at path. ":memory:" opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		sqldb.SetMaxOpenConns(1)
	}
	return New(bun.NewDB(sqldb, sqlitedialect.New())), nil
}

// DSN builds the sqlite3 data source name for path with foreign keys on.
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_fk=1"
	}
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_fk=1"
}

// DB exposes the underlying database.
func (s *Store) DB() *bun.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Migrate creates missing tables and seeds the default column.
func (s *Store) Migrate(ctx context.Context) error {
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	count, err := s.db.NewSelect().Model((*Column)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count columns: %w", err)
	}
	if count > 0 {
		return nil
	}

	col := &Column{Name: DefaultColumnName, IsDefault: true}
	if _, err := s.db.NewInsert().Model(col).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed default column: %w", err)
	}
	return nil
}
