package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docmigrate/internal/domain"
	"docmigrate/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Ledger implements ports.MigrationLedger using SQLite
type Ledger struct {
	db     *sql.DB
	dbPath string
}

// Ensure Ledger implements MigrationLedger
var _ ports.MigrationLedger = (*Ledger)(nil)

// Open opens (creating if needed) the ledger database at dbPath.
// An empty dbPath selects the per-workspace default location.
func Open(dbPath, workspace string) (*Ledger, error) {
	if dbPath == "" {
		dbPath = DatabasePath(workspace)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			workspace TEXT NOT NULL,
			target TEXT NOT NULL,
			file_count INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS mappings (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			repository TEXT NOT NULL,
			rel_path TEXT NOT NULL,
			old_path TEXT NOT NULL,
			new_path TEXT NOT NULL,
			old_filename TEXT NOT NULL,
			new_filename TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_mappings_old_filename ON mappings(old_filename);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Ledger{db: db, dbPath: dbPath}, nil
}

// Path returns the database file location
func (l *Ledger) Path() string {
	return l.dbPath
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// DatabasePath returns the default ledger location for a workspace
func DatabasePath(workspace string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "docmigrate", hashWorkspace(workspace)+".db")
}

// hashWorkspace returns a short hash of the workspace path
func hashWorkspace(workspace string) string {
	h := sha256.Sum256([]byte(workspace))
	return hex.EncodeToString(h[:8])
}

// RecordRun stores a run and its mappings in one transaction
func (l *Ledger) RecordRun(ctx context.Context, run domain.RunRecord, mappings []domain.FileMapping) (int64, error) {
	tx, err := l.begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := tx.InsertRun(run)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	for i, m := range mappings {
		if err := tx.InsertMapping(id, i, m); err != nil {
			return 0, fmt.Errorf("failed to record mapping %s: %w", m.OldPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit returns all.
func (l *Ledger) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, started_at, workspace, target, file_count
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		var startedAt int64
		if err := rows.Scan(&r.ID, &startedAt, &r.Workspace, &r.Target, &r.FileCount); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(startedAt, 0)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunMappings returns the mappings of a run in their original order
func (l *Ledger) RunMappings(ctx context.Context, runID int64) ([]domain.FileMapping, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT repository, rel_path, old_path, new_path, old_filename, new_filename
		FROM mappings WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []domain.FileMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}

// FindByFilename returns every recorded move of an original filename, newest run first
func (l *Ledger) FindByFilename(ctx context.Context, filename string) ([]domain.LedgerEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT m.repository, m.rel_path, m.old_path, m.new_path, m.old_filename, m.new_filename,
		       r.id, r.started_at
		FROM mappings m JOIN runs r ON r.id = m.run_id
		WHERE m.old_filename = ?
		ORDER BY r.id DESC, m.seq
	`, filename)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var startedAt int64
		err := rows.Scan(
			&e.Mapping.Source.Repository, &e.Mapping.Source.RelPath,
			&e.Mapping.OldPath, &e.Mapping.NewPath,
			&e.Mapping.OldFilename, &e.Mapping.NewFilename,
			&e.RunID, &startedAt,
		)
		if err != nil {
			return nil, err
		}
		e.StartedAt = time.Unix(startedAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanMapping(rows *sql.Rows) (domain.FileMapping, error) {
	var m domain.FileMapping
	err := rows.Scan(
		&m.Source.Repository, &m.Source.RelPath,
		&m.OldPath, &m.NewPath,
		&m.OldFilename, &m.NewFilename,
	)
	return m, err
}
