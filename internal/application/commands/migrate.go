package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// MigrateResult contains the outcome of a migration run
type MigrateResult struct {
	Plan    *domain.Plan
	Summary domain.MigrationSummary
	RunID   int64 // Ledger run ID; zero when nothing was recorded
}

// MigrateCommand runs the full pipeline: create target directories, plan,
// rewrite and write every document, then write the manifest. Under DryRun
// every step is reported but nothing is written.
type MigrateCommand struct {
	store    ports.DocumentStore
	dates    ports.DateResolver
	reporter ports.Reporter
	ledger   ports.MigrationLedger
	layout   domain.Layout
	log      logrus.FieldLogger
	now      func() time.Time

	DryRun bool
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(store ports.DocumentStore, dates ports.DateResolver, reporter ports.Reporter, layout domain.Layout, log logrus.FieldLogger, dryRun bool) *MigrateCommand {
	return &MigrateCommand{
		store:    store,
		dates:    dates,
		reporter: reporter,
		layout:   layout,
		log:      log,
		now:      time.Now,
		DryRun:   dryRun,
	}
}

// WithLedger records executed runs in ledger. Dry runs are never recorded.
func (c *MigrateCommand) WithLedger(ledger ports.MigrationLedger) *MigrateCommand {
	c.ledger = ledger
	return c
}

// WithClock sets the clock used for the manifest timestamp
func (c *MigrateCommand) WithClock(now func() time.Time) *MigrateCommand {
	c.now = now
	return c
}

// Validate checks the migration can run
func (c *MigrateCommand) Validate() error {
	if len(c.layout.Repositories) == 0 {
		return application.ErrNoSources
	}
	if err := application.ValidateRequired("targetRoot", c.layout.TargetDocsDir); err != nil {
		return err
	}
	return nil
}

// Execute runs the migration. Any read or write failure aborts the run;
// documents already written stay written.
func (c *MigrateCommand) Execute(ctx context.Context) (*MigrateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	started := c.now()
	c.reporter.Banner(c.DryRun)

	dirs := c.layout.CategoryDirs()
	c.reporter.Directories(dirs)
	if !c.DryRun {
		for _, dir := range dirs {
			if err := c.store.EnsureDir(dir); err != nil {
				return nil, &application.MigrationError{Op: "mkdir", Path: dir, Err: err}
			}
		}
	}

	c.reporter.BuildingMapping()
	planned, err := NewPlanCommand(c.store, c.dates, c.layout, c.log).Execute(ctx)
	if err != nil {
		return nil, err
	}
	plan := planned.Plan
	c.reporter.Found(len(plan.Mappings))

	rewriter := domain.NewRewriter(c.layout, plan.Table)

	var warnings []string
	for _, m := range plan.Mappings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.reporter.File(m)

		w, err := c.migrateFile(rewriter, m)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}

	summary := domain.MigrationSummary{
		DryRun:       c.DryRun,
		ManifestPath: c.layout.ManifestPath(),
		Warnings:     warnings,
	}

	result := &MigrateResult{Plan: plan}

	if !c.DryRun {
		manifest := domain.FormatManifest(plan.Mappings, started)
		if err := c.store.WriteFile(summary.ManifestPath, manifest); err != nil {
			return nil, &application.MigrationError{Op: "write manifest", Path: summary.ManifestPath, Err: err}
		}

		migrated, err := c.store.ListMarkup(c.layout.TargetRoot())
		if err != nil {
			return nil, fmt.Errorf("failed to count migrated files: %w", err)
		}
		summary.MigratedFiles = len(migrated)

		result.RunID = c.record(ctx, started, plan)
	}

	c.reporter.Summary(summary)
	result.Summary = summary

	return result, nil
}

func (c *MigrateCommand) migrateFile(rewriter *domain.Rewriter, m domain.FileMapping) ([]string, error) {
	content, err := c.store.ReadFile(m.OldPath)
	if err != nil {
		return nil, &application.MigrationError{Op: "read", Path: m.OldPath, Err: err}
	}

	rewritten := rewriter.Rewrite(content, m.Source.Repository)

	if c.DryRun {
		return rewritten.Warnings, nil
	}

	if err := c.store.WriteFile(m.NewPath, rewritten.Content); err != nil {
		return nil, &application.MigrationError{Op: "write", Path: m.NewPath, Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"repository":  m.Source.Repository,
		"path":        m.OldPath,
		"destination": m.NewPath,
	}).Debug("migrated document")

	return rewritten.Warnings, nil
}

// record stores the run in the ledger. The documents are already written, so
// a ledger failure is logged rather than failing the migration.
func (c *MigrateCommand) record(ctx context.Context, started time.Time, plan *domain.Plan) int64 {
	if c.ledger == nil {
		return 0
	}

	run := domain.RunRecord{
		StartedAt: started,
		Workspace: c.layout.WorkspaceRoot,
		Target:    c.layout.TargetRoot(),
		FileCount: len(plan.Mappings),
	}

	id, err := c.ledger.RecordRun(ctx, run, plan.Mappings)
	if err != nil {
		c.log.WithError(err).Warn("failed to record migration in ledger")
		return 0
	}
	return id
}
