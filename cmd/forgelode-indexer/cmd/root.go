// Package cmd provides the CLI commands for the Forgelode indexer.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/forgelode/indexer/internal/config"
	"github.com/forgelode/indexer/internal/logging"
	"github.com/forgelode/indexer/pkg/version"
)

var (
	configPath     string
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the forgelode-indexer CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgelode-indexer",
		Short: "Rebuild the Forgelode search index from the primary store",
		Long: `forgelode-indexer converts the platform's project and version records
into denormalized search documents and submits them to the search index.

Each run is a full snapshot: it selects the currently visible
(version, project) pairs, loads their records, and rebuilds every
document from scratch.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("forgelode-indexer version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogging configures the process-wide logger before any command runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.FilePath
	if debugMode {
		logCfg.Level = "debug"
	}

	_, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	return nil
}
