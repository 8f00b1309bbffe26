package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/hurlstudio/hurlc/internal/application/services"
	configdomain "github.com/hurlstudio/hurlc/internal/core/domain/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath  string
	HurlPath    string
	Encoding    string
	LogLevel    string
	Environment string
	Debug       bool
	Stderr      io.Writer
}

// Dependencies holds what commands need once configuration is loaded.
type Dependencies struct {
	Config      configdomain.Snapshot
	ConfigPath  string
	Logger      hclog.Logger
	Collections *services.CollectionService
}

// Factory builds the dependencies from the global options.
type Factory func(ctx context.Context, opts GlobalOptions) (*Dependencies, error)

// ExitError carries the exit code of a hurl run through cobra.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("hurl exited with code %d", e.Code)
}

// app is the state shared between the root command and its subcommands.
type app struct {
	factory Factory
	opts    GlobalOptions
	deps    *Dependencies
}

func (a *app) environment() string {
	return configdomain.FromSnapshot(a.deps.Config).Environment
}

// NewRootCommand RootCommand represents the base command when called without any subcommands
func NewRootCommand(factory Factory) *cobra.Command {
	a := &app{factory: factory}

	rootCmd := &cobra.Command{
		Use:   "hurlc",
		Short: "hurlc - Hurl collection settings tool",
		Long: `hurlc reads Hurl collection files, resolves the settings that apply to
each request file through the collection, folder and file levels, and
renders them as hurl command line arguments.

A collection file lists member folders and attaches settings to the
collection, to folders and files by relative path, and to named
environments.`,
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.opts.Stderr = cmd.ErrOrStderr()
			deps, err := a.factory(cmd.Context(), a.opts)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			a.deps = deps
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&a.opts.Debug, "debug", false, "Enable debug logging")
	flags.StringVar(&a.opts.ConfigPath, "config", "", "Config file path (default is $HOME/.config/hurlc/config.yaml)")
	flags.StringVar(&a.opts.HurlPath, "hurl", "", "Path of the hurl binary")
	flags.StringVar(&a.opts.Encoding, "encoding", "", "Text encoding of collection files")
	flags.StringVar(&a.opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
	flags.StringVarP(&a.opts.Environment, "environment", "e", "", "Environment applied on top of the resolved settings")

	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newArgsCommand(a))
	rootCmd.AddCommand(newRunCommand(a))
	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newFmtCommand(a))
	rootCmd.AddCommand(newSetCommand(a))
	rootCmd.AddCommand(newUnsetCommand(a))
	rootCmd.AddCommand(newKindsCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and exits with its status.
func Execute(ctx context.Context, factory Factory) {
	os.Exit(Run(ctx, factory, os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, factory Factory, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(factory)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
