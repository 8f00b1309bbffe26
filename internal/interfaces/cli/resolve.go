package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <collection> [path]",
		Short: "Show the effective settings of a folder or file",
		Long: `Resolve folds the settings of every level from the collection down to
the given folder or file. Overwrite kinds keep the deepest value and merge
kinds accumulate by key. With --environment the named environment is applied
last. Without a path the collection level is resolved.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.deps.Collections.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)

			effective, err := a.deps.Collections.Resolve(loaded.Collection, nodeArg(args), a.environment())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderEffective(effective))
			return nil
		},
	}
}

// nodeArg returns the optional node path following the collection path.
func nodeArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
