package commands

import (
	"context"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
)

// RewriteResult contains a rewritten document
type RewriteResult struct {
	Content  string
	Warnings []string
	Changed  bool
}

// RewriteCommand rewrites one document's references against a computed plan
type RewriteCommand struct {
	plan       *domain.Plan
	layout     domain.Layout
	Repository string
	Content    string
}

// NewRewriteCommand creates a new RewriteCommand
func NewRewriteCommand(plan *domain.Plan, layout domain.Layout, repository, content string) *RewriteCommand {
	return &RewriteCommand{
		plan:       plan,
		layout:     layout,
		Repository: repository,
		Content:    content,
	}
}

// Validate checks the originating repository is configured
func (c *RewriteCommand) Validate() error {
	return application.ValidateRepository(c.layout, c.Repository)
}

// Execute rewrites the content
func (c *RewriteCommand) Execute(ctx context.Context) (*RewriteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	table := domain.NewFilenameTable()
	if c.plan != nil && c.plan.Table != nil {
		table = c.plan.Table
	}
	table.Freeze()

	out := domain.NewRewriter(c.layout, table).Rewrite(c.Content, c.Repository)
	return &RewriteResult{
		Content:  out.Content,
		Warnings: out.Warnings,
		Changed:  out.Content != c.Content,
	}, nil
}
