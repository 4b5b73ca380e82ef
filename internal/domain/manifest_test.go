package domain

import (
	"strings"
	"testing"
	"time"
)

func TestFormatManifest(t *testing.T) {
	generated := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	mappings := []FileMapping{
		{OldPath: "/ws/sdk-rust/.dev/docs/design/001-foo.md", NewPath: "/ws/dev/docs/design/20240102_foo.md"},
		{OldPath: "/ws/sdk-rust/.dev/docs/bugs/leak.md", NewPath: "/ws/dev/docs/bugs/20240102_leak.md"},
	}

	got := FormatManifest(mappings, generated)

	want := strings.Join([]string{
		"# Doc Migration Mapping",
		"# Generated: Tue Jan  2 15:04:05 UTC 2024",
		"# Format: old_path -> new_path",
		"",
		"/ws/sdk-rust/.dev/docs/design/001-foo.md -> /ws/dev/docs/design/20240102_foo.md",
		"/ws/sdk-rust/.dev/docs/bugs/leak.md -> /ws/dev/docs/bugs/20240102_leak.md",
		"",
	}, "\n")

	if got != want {
		t.Errorf("FormatManifest() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatManifest_Empty(t *testing.T) {
	got := FormatManifest(nil, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))
	if !strings.HasSuffix(got, "# Format: old_path -> new_path\n\n") {
		t.Errorf("unexpected manifest for no mappings: %q", got)
	}
}
