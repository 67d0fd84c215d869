// Package sqlite provides the durable, profile-scoped SQLite backing for
// search history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/agora-labs/agora-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/agora-labs/agora-cli/internal/core/domain"
	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is a SQLite-backed implementation of driven.HistoryStore.
// History outlives a single session, unlike the cache and session slot.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a store at the specified data directory.
// If dataDir is empty, defaults to ~/.agora/data/agora.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".agora", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "agora.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// Load returns all history items in stored order (front first). Rows that
// fail to scan are skipped rather than failing the whole load.
func (s *HistoryStore) Load(ctx context.Context) ([]domain.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, searched_at, result_count FROM search_history ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	items := make([]domain.HistoryItem, 0, domain.MaxHistoryItems)
	for rows.Next() {
		var item domain.HistoryItem
		var searchedAt time.Time
		if err := rows.Scan(&item.ID, &item.Query, &searchedAt, &item.ResultCount); err != nil {
			logger.Warn("Skipping unreadable history row: %v", err)
			continue
		}
		item.Timestamp = searchedAt
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return items, nil
}

// Save replaces the persisted list in one transaction.
func (s *HistoryStore) Save(ctx context.Context, items []domain.HistoryItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO search_history (id, query, searched_at, result_count, position)
			 VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.Query, item.Timestamp, item.ResultCount, i)
		if err != nil {
			return fmt.Errorf("inserting history item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// migrate applies embedded SQL migrations in filename order, tracking the
// applied set in a schema_migrations table.
func (s *HistoryStore) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int
		err := s.db.QueryRow(
			`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name).Scan(&applied)
		if err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			`INSERT INTO schema_migrations (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		logger.Debug("Applied migration %s", name)
	}
	return nil
}
