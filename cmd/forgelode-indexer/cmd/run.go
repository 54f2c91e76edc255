package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forgelode/indexer/internal/assemble"
	"github.com/forgelode/indexer/internal/cache"
	"github.com/forgelode/indexer/internal/config"
	"github.com/forgelode/indexer/internal/license"
	"github.com/forgelode/indexer/internal/loader"
	"github.com/forgelode/indexer/internal/model"
	"github.com/forgelode/indexer/internal/pipeline"
	"github.com/forgelode/indexer/internal/store"
	"github.com/forgelode/indexer/internal/submit"
)

const timeRounding = time.Millisecond

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one full indexing run",
		Long: `Execute one full indexing run against the primary store.

Selects every visible (version, project) pair, batch-loads the records
through the cache, assembles one search document per resolved pair, and
submits the whole set to the search index. Interrupting the run discards
all partially built documents; nothing is submitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ctrl+C must cancel cleanly between pipeline stages.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			st, err := store.New(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			registry, err := license.NewRegistry()
			if err != nil {
				return err
			}

			submitter, err := submit.NewBleveSubmitter(cfg.Index.Path)
			if err != nil {
				return err
			}
			defer submitter.Close()

			ld := loader.New(st,
				cache.NewRecords[int64, model.ProjectRecord](cfg.Cache.ProjectEntries),
				cache.NewRecords[int64, model.VersionRecord](cfg.Cache.VersionEntries))

			runner, err := pipeline.NewRunner(pipeline.Dependencies{
				Store:     st,
				Loader:    ld,
				Assembler: assemble.New(registry),
				Submitter: submitter,
			})
			if err != nil {
				return err
			}

			result, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Indexed %d documents (%d visible, %d skipped) in %s\n",
				result.Documents, result.Visible, result.Skipped,
				result.Duration.Round(timeRounding))
			return nil
		},
	}
	return cmd
}
