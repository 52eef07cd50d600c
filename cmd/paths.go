package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/glyph-popup/internal/fragment"
)

func newPathsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the configuration search path in probe order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := rt.config(); err != nil {
				return err
			}
			search, err := fragment.FromEnv(rt.environ)
			if err != nil {
				return err
			}
			for _, base := range search.Bases() {
				fmt.Fprintln(cmd.OutOrStdout(), base)
			}
			return nil
		},
	}
}
