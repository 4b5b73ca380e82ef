package sqlite

import (
	"context"
	"database/sql"

	"docmigrate/internal/domain"
)

// ledgerTx groups the inserts of one run
type ledgerTx struct {
	tx *sql.Tx
}

func (l *Ledger) begin(ctx context.Context) (*ledgerTx, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &ledgerTx{tx: tx}, nil
}

// InsertRun adds a run row and returns its ID
func (t *ledgerTx) InsertRun(run domain.RunRecord) (int64, error) {
	res, err := t.tx.Exec(`
		INSERT INTO runs (started_at, workspace, target, file_count)
		VALUES (?, ?, ?, ?)
	`, run.StartedAt.Unix(), run.Workspace, run.Target, run.FileCount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertMapping adds one mapping of a run
func (t *ledgerTx) InsertMapping(runID int64, seq int, m domain.FileMapping) error {
	_, err := t.tx.Exec(`
		INSERT INTO mappings (run_id, seq, repository, rel_path, old_path, new_path, old_filename, new_filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, seq, m.Source.Repository, m.Source.RelPath, m.OldPath, m.NewPath, m.OldFilename, m.NewFilename)
	return err
}

// Commit commits the transaction
func (t *ledgerTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction; after Commit it is a no-op
func (t *ledgerTx) Rollback() error {
	return t.tx.Rollback()
}
