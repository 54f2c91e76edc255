package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgelode/indexer/configs"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "example",
		Short: "Print an annotated example configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), configs.ExampleConfig)
		},
	})

	return cmd
}
