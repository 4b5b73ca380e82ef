package commands

import (
	"context"
	"time"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
)

// NormalizeResult contains a filename and its canonical form
type NormalizeResult struct {
	Original   string
	Normalized string
	Date       string // Date prefix applied, empty when the name was already dated
}

// NormalizeCommand computes the canonical name of a single filename
type NormalizeCommand struct {
	Filename string
	Date     string // YYYYMMDD; empty means today
	now      func() time.Time
}

// NewNormalizeCommand creates a new NormalizeCommand
func NewNormalizeCommand(filename, date string) *NormalizeCommand {
	return &NormalizeCommand{
		Filename: filename,
		Date:     date,
		now:      time.Now,
	}
}

// Validate checks the filename and optional date
func (c *NormalizeCommand) Validate() error {
	if err := application.ValidateMarkupFilename("filename", c.Filename); err != nil {
		return err
	}
	if c.Date != "" {
		return application.ValidateDate("date", c.Date)
	}
	return nil
}

// Execute normalizes the filename
func (c *NormalizeCommand) Execute(ctx context.Context) (*NormalizeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &NormalizeResult{Original: c.Filename}

	if !domain.HasDatePrefix(c.Filename) {
		result.Date = c.Date
		if result.Date == "" {
			result.Date = domain.Today(c.now())
		}
	}

	result.Normalized = domain.NormalizeFilename(c.Filename, result.Date)
	return result, nil
}
