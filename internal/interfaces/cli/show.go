package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

type yamlSetting struct {
	Name    string `yaml:"name"`
	Value   string `yaml:"value"`
	Unknown bool   `yaml:"unknown,omitempty"`
}

type yamlNode struct {
	ID       string        `yaml:"id"`
	Kind     string        `yaml:"kind"`
	Name     string        `yaml:"name"`
	Path     string        `yaml:"path,omitempty"`
	Settings []yamlSetting `yaml:"settings,omitempty"`
}

type yamlCollection struct {
	Source       string     `yaml:"source"`
	Name         string     `yaml:"name,omitempty"`
	Locations    []string   `yaml:"locations,omitempty"`
	Nodes        []yamlNode `yaml:"nodes"`
	Environments []yamlNode `yaml:"environments,omitempty"`
}

func newShowCommand(a *app) *cobra.Command {
	var asYAML, reveal bool

	cmd := &cobra.Command{
		Use:   "show <collection>",
		Short: "Show the collection tree and its local settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.deps.Collections.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)

			if asYAML {
				out, err := yaml.Marshal(toYAML(loaded.Collection, reveal))
				if err != nil {
					return fmt.Errorf("failed to encode collection: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCollection(loaded.Collection))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the tree as YAML")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print passwords and other secrets in YAML output")
	return cmd
}

// toYAML converts c for encoding. Secret parts of setting values are masked
// unless reveal is set.
func toYAML(c *collection.Collection, reveal bool) yamlCollection {
	out := yamlCollection{
		Source:    c.Source(),
		Name:      c.Name(),
		Locations: c.Locations(),
	}
	c.Walk(func(_ collection.Handle, n *collection.Node) bool {
		out.Nodes = append(out.Nodes, yamlNodeOf(n, reveal))
		return true
	})
	for _, h := range c.Environments() {
		n, _ := c.Node(h)
		out.Environments = append(out.Environments, yamlNodeOf(n, reveal))
	}
	return out
}

func yamlNodeOf(n *collection.Node, reveal bool) yamlNode {
	yn := yamlNode{
		ID:   n.ID().String(),
		Kind: n.Kind().String(),
		Name: n.Name(),
		Path: n.Path(),
	}
	for _, s := range n.Settings() {
		value := setting.Display(s)
		if reveal {
			value = s.Value()
		}
		yn.Settings = append(yn.Settings, yamlSetting{
			Name:    s.Name(),
			Value:   value,
			Unknown: setting.IsUnknown(s),
		})
	}
	return yn
}
