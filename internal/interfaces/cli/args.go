package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArgsCommand(a *app) *cobra.Command {
	var line bool

	cmd := &cobra.Command{
		Use:   "args <collection> [path]",
		Short: "Print the hurl arguments of a folder or file",
		Long: `Args prints the hurl command line arguments synthesized from the
effective settings, one token per line. With --line the complete hurl
command of every request file at or beneath the path is printed instead,
one line per file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.deps.Collections.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)

			node := nodeArg(args)
			out := cmd.OutOrStdout()
			if line {
				commands, err := a.deps.Collections.Commands(loaded, node, a.environment())
				if err != nil {
					return err
				}
				for _, c := range commands {
					fmt.Fprintln(out, c.String())
				}
				return nil
			}

			tokens, err := a.deps.Collections.Arguments(loaded.Collection, node, a.environment())
			if err != nil {
				return err
			}
			for _, t := range tokens {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&line, "line", false, "Print the full hurl command line")
	return cmd
}
