// Package arguments renders effective settings to hurl command line tokens.
package arguments

import (
	"github.com/hurlstudio/hurlc/internal/core/domain/process"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	"github.com/hurlstudio/hurlc/internal/core/resolve"
)

// Build concatenates the tokens of each setting in order. Settings without
// a command line effect contribute nothing.
func Build(settings []setting.Setting) []string {
	var args []string
	for _, s := range settings {
		if s == nil {
			continue
		}
		args = append(args, s.Arguments()...)
	}
	return args
}

// BuildWithEnvironment overlays env on effective before rendering.
func BuildWithEnvironment(effective, env []setting.Setting) []string {
	return Build(resolve.Overlay(effective, env))
}

// Command builds the hurl invocation for files with the given arguments.
func Command(hurlPath string, args []string, files ...string) (process.Command, error) {
	return process.NewCommand(hurlPath, args, files...)
}
