package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

func newKindsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the setting kinds a collection can hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBEHAVIOR\tDESCRIPTION\tDEFAULT")
			for _, k := range setting.Kinds() {
				def, err := setting.Default(k.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", k.Name, k.Behavior, k.Description, setting.Display(def))
			}
			return w.Flush()
		},
	}
}
