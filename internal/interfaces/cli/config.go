package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Inspect the hurlc configuration and where each value comes from.`,
	}
	cmd.AddCommand(newConfigShowCommand(a))
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show every configuration value with its source. Flags win over
HURLC_* environment variables, which win over the config file, which wins
over built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Configuration"))
			fmt.Fprintf(out, "%s %s\n", keyStyle.Render("config file:"), a.deps.ConfigPath)
			for _, field := range configdomain.Fields {
				e := a.deps.Config[field]
				value := a.deps.Config.String(field)
				if value == "" {
					value = dimStyle.Render("(empty)")
				}
				source := e.Source
				if e.SourcePath != "" {
					source += " " + e.SourcePath
				}
				fmt.Fprintf(out, "  %-12s %s %s\n", field, value, dimStyle.Render("("+source+")"))
			}
			return nil
		},
	}
}
