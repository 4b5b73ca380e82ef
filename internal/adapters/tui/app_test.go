package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmigrate/internal/adapters/filesystem"
	"docmigrate/internal/domain"
	"docmigrate/internal/logging"
)

type fixedDates string

func (d fixedDates) CreationDate(string) string { return string(d) }

func TestApp_RenderDocumentUsesPlan(t *testing.T) {
	ws := t.TempDir()
	docs := filepath.Join(ws, "sdk-rust", ".dev", "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "design"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "design", "001-foo.md"), []byte("[self](001-foo.md)\n"), 0644))

	layout := domain.Layout{
		WorkspaceRoot:  ws,
		TargetDocsDir:  "dev/docs",
		SourceDocsDir:  ".dev/docs",
		ManifestName:   "migration-map.txt",
		Repositories:   []domain.Repository{{Name: "sdk-rust", DocsRoot: docs}},
		Categories:     []string{"design"},
		CodeExtensions: []string{".rs"},
	}
	app := NewApp(filesystem.NewStore(logging.Discard()), fixedDates("20240102"), layout, logging.Discard(), nil)

	plan, err := app.loadPlan(context.Background())
	require.NoError(t, err)
	require.Len(t, plan.Mappings, 1)

	content, warnings, err := app.renderDocument(plan.Mappings[0])
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "[self](20240102_foo.md)\n", content)
}

func TestApp_OpenEditorWithoutEditor(t *testing.T) {
	app := NewApp(nil, nil, domain.Layout{}, logging.Discard(), nil)
	assert.Nil(t, app.openEditor("/tmp/a.md"))
}
