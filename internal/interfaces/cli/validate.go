package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurlstudio/hurlc/internal/core/diag"
	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
)

const validateParallelism = 4

func newValidateCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <collection>...",
		Short: "Check collection files for problems",
		Long: `Validate parses each collection file and reports malformed lines,
unknown setting names, misplaced sections and values that cannot be
written back. Errors fail the command; with --strict warnings do too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.deps.Collections.LoadAll(cmd.Context(), args, validateParallelism)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, loaded := range all {
				diags := loaded.Diagnostics
				if _, err := collection.Text(loaded.Collection); err != nil {
					diags = append(diags, diag.Serializationf("", "%v", err))
				}
				writeDiagnostics(out, loaded.Path, diags)

				if diags.HasErrors() || (strict && len(diags) > 0) {
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", loaded.Path, okStyle.Render("ok"))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d collection(s) failed validation", failed, len(all))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	return cmd
}
