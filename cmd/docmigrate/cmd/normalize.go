package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmigrate/internal/application/commands"
)

var normalizeDate string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <filename>",
	Short: "Print the canonical name of a filename",
	Long: `Print the YYYYMMDD_snake_case.md form a document would be renamed to.
Names that already carry a date prefix keep it.

Examples:
  docmigrate normalize 001-bug-report.md --date 20240315
  docmigrate normalize event-sourcing.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewNormalizeCommand(args[0], normalizeDate).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Normalized)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeDate, "date", "", "date prefix in YYYYMMDD form (default: today)")
	rootCmd.AddCommand(normalizeCmd)
}
