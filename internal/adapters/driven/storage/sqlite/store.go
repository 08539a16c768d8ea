package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.LedgerStore = (*Store)(nil)

// Store is a SQLite-backed ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the ledger database in dataDir.
// If dataDir is empty, defaults to ~/.gazettes/data/ledger.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gazettes", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ledger.db")

	// WAL lets batch workers write while the CLI reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_ledger.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or replaces the entry for entry.SourcePath.
func (s *Store) Save(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.SourcePath == "" {
		return fmt.Errorf("ledger entry without source path: %w", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (source_path, entity_id, gazette_date, clean_path, sentence_path,
			sentence_count, content_hash, run_id, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			entity_id = excluded.entity_id,
			gazette_date = excluded.gazette_date,
			clean_path = excluded.clean_path,
			sentence_path = excluded.sentence_path,
			sentence_count = excluded.sentence_count,
			content_hash = excluded.content_hash,
			run_id = excluded.run_id,
			processed_at = excluded.processed_at
	`, entry.SourcePath, entry.EntityID, entry.Date, entry.CleanPath, entry.SentencePath,
		entry.SentenceCount, entry.ContentHash, entry.RunID,
		entry.ProcessedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving ledger entry: %w", err)
	}
	return nil
}

// Get retrieves the entry for a source path.
func (s *Store) Get(ctx context.Context, sourcePath string) (*domain.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries WHERE source_path = ?
	`, sourcePath)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries ordered by date then source path.
func (s *Store) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		ORDER BY gazette_date, source_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return entries, nil
}

// Delete removes the entry for a source path.
func (s *Store) Delete(ctx context.Context, sourcePath string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM ledger_entries WHERE source_path = ?", sourcePath); err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}
	return nil
}

// DeleteTree removes the entry for path and every entry below it.
func (s *Store) DeleteTree(ctx context.Context, path string) (int, error) {
	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM ledger_entries
		WHERE source_path = ? OR substr(source_path, 1, length(?)) = ?
	`, path, prefix, prefix)
	if err != nil {
		return 0, fmt.Errorf("deleting ledger entries below %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted ledger entries: %w", err)
	}
	return int(n), nil
}

const ledgerColumns = `source_path, entity_id, gazette_date, clean_path, sentence_path,
		sentence_count, content_hash, run_id, processed_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*domain.LedgerEntry, error) {
	var (
		entry       domain.LedgerEntry
		processedAt string
	)
	err := row.Scan(&entry.SourcePath, &entry.EntityID, &entry.Date, &entry.CleanPath,
		&entry.SentencePath, &entry.SentenceCount, &entry.ContentHash, &entry.RunID, &processedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}

	entry.ProcessedAt, err = time.Parse(time.RFC3339Nano, processedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing processed_at %q: %w", processedAt, err)
	}
	return &entry, nil
}
