package ports

import (
	"context"

	"docmigrate/internal/domain"
)

// MigrationLedger records executed migrations so moved documents can be traced
type MigrationLedger interface {
	// RecordRun stores a run and its mappings atomically and returns the run ID
	RecordRun(ctx context.Context, run domain.RunRecord, mappings []domain.FileMapping) (int64, error)

	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// RunMappings returns the mappings of one run
	RunMappings(ctx context.Context, runID int64) ([]domain.FileMapping, error)

	// FindByFilename returns every recorded mapping whose original filename matches
	FindByFilename(ctx context.Context, filename string) ([]domain.LedgerEntry, error)

	Close() error
}
