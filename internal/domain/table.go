package domain

import (
	"errors"
	"maps"
)

// ErrTableFrozen is returned when registering into a table after mapping completed
var ErrTableFrozen = errors.New("filename table is read-only")

// FilenameTable maps original filenames to canonical filenames for
// cross-reference rewriting. It keeps two views: a global one where the last
// registration wins, and a per-repository one consulted first on lookup.
type FilenameTable struct {
	global map[string]string
	byRepo map[string]map[string]string
	frozen bool
}

// NewFilenameTable creates an empty, writable table
func NewFilenameTable() *FilenameTable {
	return &FilenameTable{
		global: make(map[string]string),
		byRepo: make(map[string]map[string]string),
	}
}

// Register records original -> normalized for a repository
func (t *FilenameTable) Register(repo, original, normalized string) error {
	if t.frozen {
		return ErrTableFrozen
	}

	t.global[original] = normalized

	entries, ok := t.byRepo[repo]
	if !ok {
		entries = make(map[string]string)
		t.byRepo[repo] = entries
	}
	entries[original] = normalized

	return nil
}

// Freeze makes the table read-only
func (t *FilenameTable) Freeze() {
	t.frozen = true
}

// Frozen reports whether the table is read-only
func (t *FilenameTable) Frozen() bool {
	return t.frozen
}

// Lookup resolves a filename referenced from a repository's document.
// The repository's own documents take precedence over the global view.
func (t *FilenameTable) Lookup(repo, filename string) (string, bool) {
	if entries, ok := t.byRepo[repo]; ok {
		if normalized, ok := entries[filename]; ok {
			return normalized, true
		}
	}
	normalized, ok := t.global[filename]
	return normalized, ok
}

// Len returns the number of distinct original filenames
func (t *FilenameTable) Len() int {
	return len(t.global)
}

// Entries returns a copy of the global view
func (t *FilenameTable) Entries() map[string]string {
	return maps.Clone(t.global)
}
