package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmigrate/internal/adapters/markdown"
	"docmigrate/internal/application/commands"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report broken document links in the migrated tree",
	Long: `Parse every markdown document below the target root and report relative
.md links that do not resolve. Links starting with the target directory
(dev/docs/...) are resolved from the workspace root.

Exits with an error when any link is broken.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewCheckLinksCommand(store, markdown.NewExtractor(), cfg.Layout()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, b := range result.Broken {
			fmt.Fprintf(out, "%s:%d: %s\n", b.File, b.Line, b.Target)
		}
		fmt.Fprintf(out, "Checked %d links in %d documents\n", result.Links, result.Documents)

		if len(result.Broken) > 0 {
			return fmt.Errorf("%d broken links", len(result.Broken))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
