package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docmigrate/internal/adapters/console"
	"docmigrate/internal/adapters/filesystem"
	"docmigrate/internal/adapters/git"
	"docmigrate/internal/adapters/sqlite"
	"docmigrate/internal/application/commands"
	"docmigrate/internal/config"
	"docmigrate/internal/logging"
	"docmigrate/internal/ports"
)

var (
	configPath    string
	workspaceFlag string
	logLevel      string
	dryRun        bool

	cfg   *config.Config
	log   *logrus.Logger
	store *filesystem.Store
	dates *git.DateResolver
)

var rootCmd = &cobra.Command{
	Use:   "docmigrate",
	Short: "Centralize per-repository docs into one dated tree",
	Long: `docmigrate moves the markdown documentation of several repositories
(<repo>/.dev/docs/<category>/...) into one centralized tree
(dev/docs/<category>/...), renaming every file to YYYYMMDD_snake_case.md and
rewriting links, code references and metadata lines so they keep resolving.

Run with --dry-run first: every step is reported but nothing is written.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initialize(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate := commands.NewMigrateCommand(store, dates, console.NewReporter(cmd.OutOrStdout()), cfg.Layout(), log, dryRun)

		if !dryRun {
			ledger, err := openLedger()
			if err != nil {
				// History is optional; the migration itself still runs
				log.WithError(err).Warn("migration ledger unavailable")
			} else if ledger != nil {
				defer ledger.Close()
				migrate.WithLedger(ledger)
			}
		}

		result, err := migrate.Execute(cmd.Context())
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"mappings": len(result.Plan.Mappings),
			"skipped":  len(result.Plan.Skipped),
			"run":      result.RunID,
			"dry_run":  dryRun,
		}).Debug("migration finished")
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: discovered .docmigrate.toml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "workspace directory containing the source repositories")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be done without modifying files")
}

// initialize loads configuration and builds the shared adapters.
// Flags override the config file and environment.
func initialize(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("workspace") {
		abs, err := filepath.Abs(workspaceFlag)
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		loaded.Workspace = abs
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = logLevel
	}

	logger, err := logging.New(loaded.Log, os.Stderr)
	if err != nil {
		return err
	}

	cfg = loaded
	log = logger
	store = filesystem.NewStore(log)
	dates = git.NewDateResolver(
		git.WithTimeout(cfg.GitTimeoutDuration()),
		git.WithLogger(log),
	)

	log.WithFields(logrus.Fields{
		"config":    cfg.ConfigFile,
		"workspace": cfg.Workspace,
		"target":    cfg.Target,
	}).Debug("configuration loaded")
	return nil
}

// openLedger opens the migration history, or returns nil when it is disabled
func openLedger() (ports.MigrationLedger, error) {
	if !cfg.Ledger.Enabled {
		return nil, nil
	}
	ledger, err := sqlite.Open(cfg.Ledger.Path, cfg.Workspace)
	if err != nil {
		return nil, err
	}
	log.WithField("path", ledger.Path()).Debug("opened migration ledger")
	return ledger, nil
}
