package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmigrate/internal/adapters/markdown"
	"docmigrate/internal/domain"
)

func TestCheckLinksCommand_Execute(t *testing.T) {
	ws := t.TempDir()
	writeTree(t, ws, map[string]string{
		"dev/docs/design/20240102_foo.md": "# Foo\n\n[bar](../plans/20240102_bar.md#goals)\n\n[gone](../plans/001-old.md)\n",
		"dev/docs/plans/20240102_bar.md": "[foo](dev/docs/design/20240102_foo.md)\n[web](https://example.com/a.md)\n[top](#top)\n" +
			"[code](flovyn-server/src/lib.rs)\n[missing](dev/docs/bugs/nope.md)\n",
	})

	result, err := NewCheckLinksCommand(testStore(), markdown.NewExtractor(), testLayout(ws)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 4, result.Links)
	assert.Equal(t, []domain.BrokenLink{
		{File: filepath.Join(ws, "dev/docs/design/20240102_foo.md"), Line: 5, Target: "../plans/001-old.md"},
		{File: filepath.Join(ws, "dev/docs/plans/20240102_bar.md"), Line: 1, Target: "dev/docs/bugs/nope.md"},
	}, result.Broken)
}

func TestCheckLinksCommand_EmptyTarget(t *testing.T) {
	result, err := NewCheckLinksCommand(testStore(), markdown.NewExtractor(), testLayout(t.TempDir())).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Documents)
	assert.Empty(t, result.Broken)
}

func TestDocLinkPath(t *testing.T) {
	tests := []struct {
		target string
		want   string
		ok     bool
	}{
		{"../plans/a.md", "../plans/a.md", true},
		{"a.md#section", "a.md", true},
		{"my%20notes.md", "my notes.md", true},
		{"https://example.com/a.md", "", false},
		{"mailto:someone@example.com", "", false},
		{"#anchor", "", false},
		{"src/lib.rs", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := docLinkPath(tt.target)
		if ok != tt.ok || got != tt.want {
			t.Errorf("docLinkPath(%q) = (%q, %v), want (%q, %v)", tt.target, got, ok, tt.want, tt.ok)
		}
	}
}
