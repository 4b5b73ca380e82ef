package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// markupPattern matches every markup document at any depth
const markupPattern = "**/*" + domain.MarkupExt

// Store implements ports.DocumentStore using the local filesystem
type Store struct {
	log logrus.FieldLogger
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates a filesystem document store
func NewStore(log logrus.FieldLogger) *Store {
	return &Store{log: log}
}

// Discover lists the markup documents of a repository in path order
func (s *Store) Discover(ctx context.Context, repo domain.Repository) ([]domain.SourceFile, error) {
	rels, err := s.glob(repo.DocsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents in %s: %w", repo.Name, err)
	}
	if rels == nil {
		s.log.WithFields(logrus.Fields{
			"repository": repo.Name,
			"path":       repo.DocsRoot,
		}).Debug("documentation root not found, skipping")
		return nil, nil
	}

	files := make([]domain.SourceFile, 0, len(rels))
	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files = append(files, domain.SourceFile{
			Location: domain.SourceLocation{Repository: repo.Name, RelPath: rel},
			Path:     filepath.Join(repo.DocsRoot, filepath.FromSlash(rel)),
		})
	}

	return files, nil
}

// ListMarkup returns absolute paths of every markup file below root
func (s *Store) ListMarkup(root string) ([]string, error) {
	rels, err := s.glob(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}
	return paths, nil
}

// glob returns slash-separated paths relative to root, sorted segment by
// segment so "a/b.md" precedes "a-b/c.md". A missing root returns nil.
func (s *Store) glob(root string) ([]string, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), markupPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []string{}
	}

	slices.SortFunc(matches, func(a, b string) int {
		return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
	})
	return matches, nil
}

// ReadFile reads a document as text
func (s *Store) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes a document, creating parent directories as needed
func (s *Store) WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// EnsureDir creates a directory and its parents
func (s *Store) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether anything is present at path
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
