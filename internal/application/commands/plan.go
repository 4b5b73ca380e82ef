package commands

import (
	"context"

	"github.com/sirupsen/logrus"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// PlanResult contains the computed mapping of a workspace
type PlanResult struct {
	Plan  *domain.Plan
	Files int // Documents discovered, including skipped ones
}

// PlanCommand discovers every source document and assigns its destination.
// It never modifies the filesystem.
type PlanCommand struct {
	store  ports.DocumentStore
	dates  ports.DateResolver
	layout domain.Layout
	log    logrus.FieldLogger
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(store ports.DocumentStore, dates ports.DateResolver, layout domain.Layout, log logrus.FieldLogger) *PlanCommand {
	return &PlanCommand{
		store:  store,
		dates:  dates,
		layout: layout,
		log:    log,
	}
}

// Validate checks the layout can be planned
func (c *PlanCommand) Validate() error {
	if len(c.layout.Repositories) == 0 {
		return application.ErrNoSources
	}
	if err := application.ValidateRequired("targetRoot", c.layout.TargetDocsDir); err != nil {
		return err
	}
	return nil
}

// Execute discovers repositories in configured order and maps their documents
func (c *PlanCommand) Execute(ctx context.Context) (*PlanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var files []domain.SourceFile
	for _, repo := range c.layout.Repositories {
		found, err := c.store.Discover(ctx, repo)
		if err != nil {
			return nil, &application.MigrationError{Op: "discover", Path: repo.DocsRoot, Err: err}
		}
		c.log.WithFields(logrus.Fields{
			"repository": repo.Name,
			"files":      len(found),
		}).Debug("discovered documents")
		files = append(files, found...)
	}

	mapper := domain.NewPathMapper(c.layout.TargetRoot(), c.dates, c.store.Exists)
	plan := mapper.Map(files)

	for _, loc := range plan.Skipped {
		c.log.WithFields(logrus.Fields{
			"repository": loc.Repository,
			"path":       loc.RelPath,
		}).Debug("skipping document outside a category directory")
	}

	return &PlanResult{Plan: plan, Files: len(files)}, nil
}
