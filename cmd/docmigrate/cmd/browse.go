package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docmigrate/internal/adapters/editor"
	"docmigrate/internal/adapters/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Explore the migration plan interactively",
	Long: `Open a terminal browser over the planned mappings. Filter with /,
preview a document as it will be written with enter, copy its new path
with y and edit the source with e. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := tui.NewApp(store, dates, cfg.Layout(), log, editor.NewOpener())

		_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
