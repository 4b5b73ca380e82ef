package domain

import (
	"path/filepath"
	"time"
)

// Repository is a named source tree contributing documentation
type Repository struct {
	Name     string // e.g., "flovyn-server"
	DocsRoot string // Absolute path to the repository's documentation root
}

// SourceLocation identifies a discovered document inside a repository
type SourceLocation struct {
	Repository string // Repository identifier
	RelPath    string // Slash-separated path relative to the documentation root
}

// SourceFile is a document found during discovery
type SourceFile struct {
	Location SourceLocation
	Path     string // Absolute path on disk
}

// FileMapping associates a source document with its destination
type FileMapping struct {
	Source      SourceLocation
	OldPath     string
	NewPath     string
	OldFilename string
	NewFilename string
}

// Plan is the complete output of the mapping pass
type Plan struct {
	Mappings []FileMapping
	Table    *FilenameTable
	Skipped  []SourceLocation // Documents without a category directory
}

// Destinations returns every destination path in mapping order
func (p *Plan) Destinations() []string {
	paths := make([]string, 0, len(p.Mappings))
	for _, m := range p.Mappings {
		paths = append(paths, m.NewPath)
	}
	return paths
}

// Layout describes the workspace: where sources live and where docs go
type Layout struct {
	WorkspaceRoot  string
	TargetDocsDir  string // Relative to WorkspaceRoot, e.g. "dev/docs"
	SourceDocsDir  string // Relative to each repository, e.g. ".dev/docs"
	ManifestName   string
	Repositories   []Repository
	ExtraPrefixes  []string
	Categories     []string
	CodeExtensions []string
}

// TargetRoot returns the absolute centralized documentation root
func (l Layout) TargetRoot() string {
	return filepath.Join(l.WorkspaceRoot, filepath.FromSlash(l.TargetDocsDir))
}

// ManifestPath returns the absolute path of the mapping manifest
func (l Layout) ManifestPath() string {
	return filepath.Join(l.TargetRoot(), l.ManifestName)
}

// CategoryDirs returns the absolute target directory for every category
func (l Layout) CategoryDirs() []string {
	dirs := make([]string, 0, len(l.Categories))
	for _, c := range l.Categories {
		dirs = append(dirs, filepath.Join(l.TargetRoot(), c))
	}
	return dirs
}

// KnownPrefixes returns the identifiers that mark an already-qualified code reference
func (l Layout) KnownPrefixes() []string {
	prefixes := make([]string, 0, len(l.Repositories)+len(l.ExtraPrefixes))
	for _, r := range l.Repositories {
		prefixes = append(prefixes, r.Name)
	}
	return append(prefixes, l.ExtraPrefixes...)
}

// RunRecord describes one executed migration stored in the ledger
type RunRecord struct {
	ID        int64
	StartedAt time.Time
	Workspace string
	Target    string
	FileCount int
}

// BrokenLink is a document link that does not resolve after migration
type BrokenLink struct {
	File   string // Document containing the link
	Line   int    // 1-based line of the enclosing block
	Target string // Link destination as written
}

// LedgerEntry is a recorded mapping together with the run that produced it
type LedgerEntry struct {
	RunID     int64
	StartedAt time.Time
	Mapping   FileMapping
}

// Link is a link destination found in a document
type Link struct {
	Target string
	Line   int // 1-based
}

// MigrationSummary is what the final report prints
type MigrationSummary struct {
	DryRun        bool
	MigratedFiles int // Markup files present in the target root after the run
	ManifestPath  string
	Warnings      []string
}
