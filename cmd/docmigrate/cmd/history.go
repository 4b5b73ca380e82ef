package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"docmigrate/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded migrations, or the mappings of one run",
	Long: `Without arguments, list executed migration runs, newest first.
With a run ID, print every old -> new mapping that run applied.

Examples:
  docmigrate history
  docmigrate history 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var runID int64
		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run ID %q", args[0])
			}
			runID = id
		}

		ledger, err := openLedger()
		if err != nil {
			return err
		}
		if ledger != nil {
			defer ledger.Close()
		}

		result, err := commands.NewHistoryCommand(ledger, runID, historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Run != nil {
			fmt.Fprintf(out, "Run %d  %s  %s\n\n", result.Run.ID, result.Run.StartedAt.Format("2006-01-02 15:04:05"), result.Run.Target)
			for _, m := range result.Mappings {
				fmt.Fprintf(out, "%s -> %s\n", m.OldPath, m.NewPath)
			}
			return nil
		}

		if len(result.Runs) == 0 {
			fmt.Fprintln(out, "No migrations recorded.")
			return nil
		}
		for _, r := range result.Runs {
			fmt.Fprintf(out, "%d  %s  %d files  %s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.FileCount, r.Target)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
