package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"docmigrate/internal/adapters/filesystem"
	"docmigrate/internal/domain"
	"docmigrate/internal/logging"
)

type fixedDates string

func (d fixedDates) CreationDate(string) string { return string(d) }

// recordingReporter keeps every progress event as a line
type recordingReporter struct {
	lines   []string
	summary domain.MigrationSummary
}

func (r *recordingReporter) Banner(dryRun bool) {
	r.lines = append(r.lines, fmt.Sprintf("banner dry=%v", dryRun))
}

func (r *recordingReporter) Directories(dirs []string) {
	for _, d := range dirs {
		r.lines = append(r.lines, "dir "+d)
	}
}

func (r *recordingReporter) BuildingMapping() {
	r.lines = append(r.lines, "building")
}

func (r *recordingReporter) Found(count int) {
	r.lines = append(r.lines, fmt.Sprintf("found %d", count))
}

func (r *recordingReporter) File(m domain.FileMapping) {
	r.lines = append(r.lines, m.OldPath+" -> "+m.NewPath)
}

func (r *recordingReporter) Summary(s domain.MigrationSummary) {
	r.summary = s
	r.lines = append(r.lines, "summary")
}

// memLedger is an in-memory ports.MigrationLedger
type memLedger struct {
	runs     []domain.RunRecord
	mappings map[int64][]domain.FileMapping
	err      error
}

func newMemLedger() *memLedger {
	return &memLedger{mappings: make(map[int64][]domain.FileMapping)}
}

func (l *memLedger) RecordRun(_ context.Context, run domain.RunRecord, mappings []domain.FileMapping) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	run.ID = int64(len(l.runs) + 1)
	l.runs = append(l.runs, run)
	l.mappings[run.ID] = mappings
	return run.ID, nil
}

func (l *memLedger) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	var out []domain.RunRecord
	for i := len(l.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, l.runs[i])
	}
	return out, nil
}

func (l *memLedger) RunMappings(_ context.Context, runID int64) ([]domain.FileMapping, error) {
	return l.mappings[runID], nil
}

func (l *memLedger) FindByFilename(_ context.Context, filename string) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	for i := len(l.runs) - 1; i >= 0; i-- {
		run := l.runs[i]
		for _, m := range l.mappings[run.ID] {
			if m.OldFilename == filename {
				out = append(out, domain.LedgerEntry{RunID: run.ID, StartedAt: run.StartedAt, Mapping: m})
			}
		}
	}
	return out, nil
}

func (l *memLedger) Close() error { return nil }

func testLayout(workspace string) domain.Layout {
	names := []string{"flovyn-server", "flovyn-app", "sdk-rust", "sdk-kotlin"}
	repos := make([]domain.Repository, 0, len(names))
	for _, n := range names {
		repos = append(repos, domain.Repository{Name: n, DocsRoot: filepath.Join(workspace, n, ".dev", "docs")})
	}
	return domain.Layout{
		WorkspaceRoot:  workspace,
		TargetDocsDir:  "dev/docs",
		SourceDocsDir:  ".dev/docs",
		ManifestName:   "migration-map.txt",
		Repositories:   repos,
		ExtraPrefixes:  []string{"sdk-python", "dev"},
		Categories:     []string{"design", "plans", "research", "bugs", "guides", "architecture", "archive"},
		CodeExtensions: []string{".rs", ".ts", ".tsx", ".py", ".kt", ".toml", ".sql", ".md", ".sh", ".json", ".yaml", ".yml"},
	}
}

func testStore() *filesystem.Store {
	return filesystem.NewStore(logging.Discard())
}

// writeTree creates files (slash paths relative to root) with their content
func writeTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// directorySnapshot records every directory and file (with content) below root
type directorySnapshot struct {
	Directories []string
	Files       map[string]string
}

func captureDirectorySnapshot(root string) (*directorySnapshot, error) {
	snap := &directorySnapshot{Files: make(map[string]string)}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if info.IsDir() {
			if rel != "." {
				snap.Directories = append(snap.Directories, rel)
			}
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snap.Files[rel] = string(content)
		return nil
	})

	sort.Strings(snap.Directories)
	return snap, err
}

func snapshotsEqual(a, b *directorySnapshot) bool {
	return reflect.DeepEqual(a, b)
}
