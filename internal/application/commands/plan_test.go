package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"docmigrate/internal/application"
	"docmigrate/internal/logging"
)

func TestPlanCommand_Execute(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{
		"sdk-kotlin/.dev/docs/guides/setup.md":     "",
		"flovyn-server/.dev/docs/bugs/001-leak.md": "",
		"flovyn-server/.dev/docs/index.md":         "",
	})

	result, err := NewPlanCommand(testStore(), fixedDates("20240102"), testLayout(ws), logging.Discard()).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Files != 3 {
		t.Errorf("expected 3 discovered files, got %d", result.Files)
	}

	plan := result.Plan
	if len(plan.Mappings) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(plan.Mappings))
	}

	// Repository order follows the layout, not the filesystem
	if got := plan.Mappings[0].Source.Repository; got != "flovyn-server" {
		t.Errorf("first mapping repository = %q, want flovyn-server", got)
	}
	if want := filepath.Join(ws, "dev", "docs", "guides", "20240102_setup.md"); plan.Mappings[1].NewPath != want {
		t.Errorf("NewPath = %q, want %q", plan.Mappings[1].NewPath, want)
	}

	if len(plan.Skipped) != 1 || plan.Skipped[0].RelPath != "index.md" {
		t.Errorf("expected index.md to be skipped, got %+v", plan.Skipped)
	}

	if !plan.Table.Frozen() {
		t.Error("expected frozen table")
	}
}

func TestPlanCommand_Validate(t *testing.T) {
	layout := testLayout(t.TempDir())
	layout.Repositories = nil

	err := NewPlanCommand(testStore(), fixedDates("20240102"), layout, logging.Discard()).Validate()
	if !errors.Is(err, application.ErrNoSources) {
		t.Errorf("expected ErrNoSources, got %v", err)
	}

	layout = testLayout(t.TempDir())
	layout.TargetDocsDir = ""

	err = NewPlanCommand(testStore(), fixedDates("20240102"), layout, logging.Discard()).Validate()
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
