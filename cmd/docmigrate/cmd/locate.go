package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmigrate/internal/application/commands"
)

var locateCmd = &cobra.Command{
	Use:   "locate <filename>",
	Short: "Find where a document was migrated to",
	Long: `Search the migration history for documents with the given original
filename and print where each one was moved.

Example:
  docmigrate locate 001-bug-report.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedger()
		if err != nil {
			return err
		}
		if ledger != nil {
			defer ledger.Close()
		}

		result, err := commands.NewLocateCommand(ledger, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, e := range result.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "run %d  %s -> %s\n", e.RunID, e.Mapping.OldPath, e.Mapping.NewPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
