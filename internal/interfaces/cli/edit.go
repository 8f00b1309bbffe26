package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hurlstudio/hurlc/internal/application/services"
	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	"github.com/hurlstudio/hurlc/internal/core/resolve"
)

// editTarget selects the node a set or unset command changes.
type editTarget struct {
	node string
	env  string
}

func (t *editTarget) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.node, "node", "", "Folder or file path (default is the collection)")
	cmd.Flags().StringVar(&t.env, "in-env", "", "Edit the named environment instead of a node")
}

// handle finds the target node, creating the environment when asked to.
func (t *editTarget) handle(c *collection.Collection, create bool) (collection.Handle, error) {
	if t.env != "" {
		if h, ok := c.Environment(t.env); ok {
			return h, nil
		}
		if !create {
			return collection.NoHandle, fmt.Errorf("%w: %s", resolve.ErrEnvironmentNotFound, t.env)
		}
		return c.AddEnvironment(t.env)
	}
	h, ok := c.Find(t.node)
	if !ok {
		return collection.NoHandle, fmt.Errorf("%w: %s", resolve.ErrNodeNotFound, t.node)
	}
	return h, nil
}

// edit loads path, applies fn and saves the result. Every change is logged.
func (a *app) edit(cmd *cobra.Command, path string, fn func(c *collection.Collection) error) error {
	svc := a.deps.Collections
	loaded, err := svc.Load(cmd.Context(), path)
	if err != nil {
		return err
	}
	if loaded.Diagnostics.HasErrors() {
		writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)
		return fmt.Errorf("refusing to rewrite %s: it has errors that would be lost", path)
	}

	changes := 0
	unsubscribe := loaded.Collection.Subscribe(func(ch collection.Change) {
		changes++
		a.deps.Logger.Debug("collection changed", "change", ch.Type.String(), "node", ch.Node)
	})
	defer unsubscribe()

	if err := fn(loaded.Collection); err != nil {
		return err
	}
	if changes == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("nothing to change"))
		return nil
	}
	return saveCollection(cmd, svc, path, loaded.Collection)
}

func saveCollection(cmd *cobra.Command, svc *services.CollectionService, path string, c *collection.Collection) error {
	if err := svc.Save(cmd.Context(), path, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("wrote"), path)
	return nil
}

func newSetCommand(a *app) *cobra.Command {
	var target editTarget
	var replace bool

	cmd := &cobra.Command{
		Use:   "set <collection> <name> <value>",
		Short: "Add a setting to a collection level or environment",
		Long: `Set parses value as a setting of kind name and adds it to the
collection, to a folder or file (--node) or to an environment (--in-env,
created when missing). With --replace an existing setting of the same kind
and key is replaced instead.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setting.Create(args[1], args[2])
			if errors.Is(err, setting.ErrNoMatch) {
				return fmt.Errorf("value %q for %s has no effect", args[2], args[1])
			}
			if err != nil {
				return err
			}

			return a.edit(cmd, args[0], func(c *collection.Collection) error {
				h, err := target.handle(c, true)
				if err != nil {
					return err
				}
				if replace {
					n, _ := c.Node(h)
					for i, existing := range n.Settings() {
						if existing.Name() == s.Name() && existing.Key() == s.Key() {
							return c.ReplaceSetting(h, i, s)
						}
					}
				}
				return c.AddSetting(h, s)
			})
		},
	}

	target.addFlags(cmd)
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace a setting of the same kind and key")
	return cmd
}

func newUnsetCommand(a *app) *cobra.Command {
	var target editTarget
	var key string

	cmd := &cobra.Command{
		Use:   "unset <collection> <name>",
		Short: "Remove settings from a collection level or environment",
		Long: `Unset removes every setting named name from the target level. With
--key only the entry with that key is removed (for example one variable).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return a.edit(cmd, args[0], func(c *collection.Collection) error {
				h, err := target.handle(c, false)
				if err != nil {
					return err
				}
				n, _ := c.Node(h)
				settings := n.Settings()
				for i := len(settings) - 1; i >= 0; i-- {
					s := settings[i]
					if s.Name() != name || (key != "" && s.Key() != key) {
						continue
					}
					if err := c.RemoveSetting(h, i); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	target.addFlags(cmd)
	cmd.Flags().StringVar(&key, "key", "", "Only remove the entry with this key")
	return cmd
}

func newFmtCommand(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <collection>",
		Short: "Print a collection file in canonical form",
		Long: `Fmt parses a collection file and prints it back in canonical form:
collection properties first, then collection settings, folder and file
sections in tree order and environments last. With -w the file is
rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.deps.Collections.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeDiagnostics(cmd.ErrOrStderr(), loaded.Path, loaded.Diagnostics)

			if write {
				if loaded.Diagnostics.HasErrors() {
					return fmt.Errorf("refusing to rewrite %s: it has errors that would be lost", args[0])
				}
				return saveCollection(cmd, a.deps.Collections, args[0], loaded.Collection)
			}
			text, err := collection.Text(loaded.Collection)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}
