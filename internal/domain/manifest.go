package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatManifest renders the mapping log written next to the migrated docs
func FormatManifest(mappings []FileMapping, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Doc Migration Mapping\n")
	fmt.Fprintf(&sb, "# Generated: %s\n", generated.Format(time.UnixDate))
	sb.WriteString("# Format: old_path -> new_path\n\n")

	for _, m := range mappings {
		fmt.Fprintf(&sb, "%s -> %s\n", m.OldPath, m.NewPath)
	}

	return sb.String()
}
