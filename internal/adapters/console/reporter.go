// Package console prints migration progress for humans.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// Reporter implements ports.Reporter, printing each step as it happens.
// Styling is dropped automatically when out is not a terminal.
type Reporter struct {
	out io.Writer

	heading lipgloss.Style
	warning lipgloss.Style
	arrow   lipgloss.Style
	muted   lipgloss.Style
}

var _ ports.Reporter = (*Reporter)(nil)

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		arrow:   r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func (r *Reporter) Banner(dryRun bool) {
	if dryRun {
		fmt.Fprintf(r.out, "%s\n\n", r.warning.Render("=== DRY RUN MODE ==="))
	}
	fmt.Fprintf(r.out, "%s\n\n", r.heading.Render("=== Doc Migration ==="))
}

func (r *Reporter) Directories(dirs []string) {
	fmt.Fprintln(r.out, "Creating target directories...")
	for _, d := range dirs {
		fmt.Fprintf(r.out, "  %s\n", d)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) BuildingMapping() {
	fmt.Fprintln(r.out, "Building file mapping...")
}

func (r *Reporter) Found(count int) {
	fmt.Fprintf(r.out, "  Found %d files to migrate\n\n", count)
}

func (r *Reporter) File(m domain.FileMapping) {
	fmt.Fprintf(r.out, "  %s\n", r.muted.Render(m.OldPath))
	fmt.Fprintf(r.out, "    %s %s\n", r.arrow.Render("->"), m.NewPath)
}

func (r *Reporter) Summary(s domain.MigrationSummary) {
	fmt.Fprintf(r.out, "\n%s\n", r.heading.Render("=== Summary ==="))
	if s.DryRun {
		fmt.Fprintln(r.out, "Dry run complete. No files were modified.")
		fmt.Fprintln(r.out, "Run without --dry-run to execute migration.")
	} else {
		fmt.Fprintf(r.out, "Migrated files: %d\n", s.MigratedFiles)
		fmt.Fprintf(r.out, "Mapping file: %s\n", s.ManifestPath)
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintf(r.out, "\n%s\n", r.warning.Render(fmt.Sprintf("Warnings (%d):", len(s.Warnings))))
		for _, w := range s.Warnings {
			fmt.Fprintf(r.out, "  - %s\n", w)
		}
	}
}

// Discard is a reporter that prints nothing
type Discard struct{}

var _ ports.Reporter = Discard{}

func (Discard) Banner(bool)                     {}
func (Discard) Directories([]string)            {}
func (Discard) BuildingMapping()                {}
func (Discard) Found(int)                       {}
func (Discard) File(domain.FileMapping)         {}
func (Discard) Summary(domain.MigrationSummary) {}
