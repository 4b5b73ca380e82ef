package ports

import (
	"context"

	"docmigrate/internal/domain"
)

// DocumentStore provides access to source and target documents on disk
type DocumentStore interface {
	// Discover lists every markup document below a repository's doc root,
	// sorted by relative path. A missing root yields no files and no error.
	Discover(ctx context.Context, repo domain.Repository) ([]domain.SourceFile, error)

	// ListMarkup returns the absolute paths of every markup file below root
	ListMarkup(root string) ([]string, error)

	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
	EnsureDir(path string) error
	Exists(path string) bool
}
