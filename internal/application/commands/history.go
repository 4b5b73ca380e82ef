package commands

import (
	"context"
	"fmt"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// HistoryResult contains recorded runs, or the mappings of one run
type HistoryResult struct {
	Runs     []domain.RunRecord
	Run      *domain.RunRecord
	Mappings []domain.FileMapping
}

// HistoryCommand lists recorded migrations. With a RunID it returns that
// run's mappings instead.
type HistoryCommand struct {
	ledger ports.MigrationLedger
	RunID  int64
	Limit  int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(ledger ports.MigrationLedger, runID int64, limit int) *HistoryCommand {
	return &HistoryCommand{
		ledger: ledger,
		RunID:  runID,
		Limit:  limit,
	}
}

// Validate checks the command arguments
func (c *HistoryCommand) Validate() error {
	if c.ledger == nil {
		return application.ErrLedgerDisabled
	}
	if c.RunID < 0 {
		return &application.ValidationError{
			Field:   "runID",
			Message: fmt.Sprintf("run ID must be positive, got: %d", c.RunID),
		}
	}
	return nil
}

// Execute queries the ledger
func (c *HistoryCommand) Execute(ctx context.Context) (*HistoryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.RunID == 0 {
		runs, err := c.ledger.ListRuns(ctx, c.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		return &HistoryResult{Runs: runs}, nil
	}

	runs, err := c.ledger.ListRuns(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var run *domain.RunRecord
	for i := range runs {
		if runs[i].ID == c.RunID {
			run = &runs[i]
			break
		}
	}
	if run == nil {
		return nil, fmt.Errorf("run %d: %w", c.RunID, application.ErrNotFound)
	}

	mappings, err := c.ledger.RunMappings(ctx, c.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", c.RunID, err)
	}

	return &HistoryResult{Run: run, Mappings: mappings}, nil
}

// LocateResult contains every recorded destination of an original filename
type LocateResult struct {
	Filename string
	Entries  []domain.LedgerEntry
}

// LocateCommand finds where a document with an original filename was moved
type LocateCommand struct {
	ledger   ports.MigrationLedger
	Filename string
}

// NewLocateCommand creates a new LocateCommand
func NewLocateCommand(ledger ports.MigrationLedger, filename string) *LocateCommand {
	return &LocateCommand{
		ledger:   ledger,
		Filename: filename,
	}
}

// Validate checks the filename
func (c *LocateCommand) Validate() error {
	if c.ledger == nil {
		return application.ErrLedgerDisabled
	}
	return application.ValidateMarkupFilename("filename", c.Filename)
}

// Execute queries the ledger
func (c *LocateCommand) Execute(ctx context.Context) (*LocateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entries, err := c.ledger.FindByFilename(ctx, c.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to search ledger: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", c.Filename, application.ErrNotFound)
	}

	return &LocateResult{Filename: c.Filename, Entries: entries}, nil
}
