package cli

import (
	"github.com/spf13/cobra"

	procp "github.com/hurlstudio/hurlc/internal/core/ports/process"
)

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <collection> [path]",
		Short: "Run hurl on the request files of a folder or file",
		Long: `Run invokes hurl once for every request file at or beneath the given
path, each with its own effective arguments. Hurl runs in the directory of
the collection file. The exit code is the first non-zero hurl exit code.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.deps.Collections.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)

			code, err := a.deps.Collections.Run(cmd.Context(), loaded, nodeArg(args), a.environment(), procp.Streams{
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}
