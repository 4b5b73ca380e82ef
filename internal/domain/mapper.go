package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ExistsFunc reports whether a path is already present on disk
type ExistsFunc func(path string) bool

// PathMapper assigns every discovered document a unique destination
type PathMapper struct {
	targetRoot string
	dates      DateSource
	exists     ExistsFunc
}

// NewPathMapper creates a mapper writing below targetRoot.
// A nil exists func treats the target tree as empty.
func NewPathMapper(targetRoot string, dates DateSource, exists ExistsFunc) *PathMapper {
	if exists == nil {
		exists = func(string) bool { return false }
	}
	return &PathMapper{
		targetRoot: targetRoot,
		dates:      dates,
		exists:     exists,
	}
}

// Map computes the FileMappings and the FilenameTable for files given in
// repository order, then filename order. The returned table is frozen.
func (m *PathMapper) Map(files []SourceFile) *Plan {
	plan := &Plan{Table: NewFilenameTable()}
	assigned := make(map[string]struct{}, len(files))

	for _, f := range files {
		parts := strings.Split(f.Location.RelPath, "/")
		if len(parts) < 2 {
			plan.Skipped = append(plan.Skipped, f.Location)
			continue
		}

		dir := filepath.Join(m.targetRoot, parts[0])
		if len(parts) > 2 {
			dir = filepath.Join(dir, parts[1])
		}

		oldFilename := parts[len(parts)-1]
		normalized := m.normalize(f, oldFilename)
		newFilename := m.resolveCollision(dir, normalized, f.Location.Repository, assigned)
		newPath := filepath.Join(dir, newFilename)
		assigned[newPath] = struct{}{}

		plan.Mappings = append(plan.Mappings, FileMapping{
			Source:      f.Location,
			OldPath:     f.Path,
			NewPath:     newPath,
			OldFilename: oldFilename,
			NewFilename: newFilename,
		})

		// References elsewhere resolve to the base canonical name, not the disambiguated one
		_ = plan.Table.Register(f.Location.Repository, oldFilename, normalized)
	}

	plan.Table.Freeze()
	return plan
}

func (m *PathMapper) normalize(f SourceFile, filename string) string {
	if HasDatePrefix(filename) {
		return NormalizeFilename(filename, "")
	}
	return NormalizeFilename(filename, m.dates.CreationDate(f.Path))
}

// resolveCollision returns a filename whose destination in dir is free.
// A taken name first gets the repository suffix; if that is taken too (two
// documents from one repository normalizing alike) a numeric discriminator follows.
func (m *PathMapper) resolveCollision(dir, filename, repo string, assigned map[string]struct{}) string {
	taken := func(name string) bool {
		path := filepath.Join(dir, name)
		if _, ok := assigned[path]; ok {
			return true
		}
		return m.exists(path)
	}

	if !taken(filename) {
		return filename
	}

	candidate := withSuffix(filename, "_"+repo)
	for n := 2; taken(candidate); n++ {
		candidate = withSuffix(filename, fmt.Sprintf("_%s_%d", repo, n))
	}
	return candidate
}
