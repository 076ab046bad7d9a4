// seehuhn.de/go/glitch - generative cover art distortion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cli implements the glitch command-line interface.
//
// The commands are:
//   - render: draw a cover and write it as PNG
//   - derive: show the settings derived from quiz answers
//   - answers: save, show or clear stored quiz answers
//   - gallery: render all built-in test scenarios
//   - serve: run the HTTP service
//
// All commands support --verbose (-v) for debug-level logging and
// --config for an alternative configuration file.  Loggers are passed
// through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	verbose    bool
	configPath string
}

// config loads the configuration file selected by the --config flag.
func (o *rootOptions) config() (Config, error) {
	if o.configPath != "" {
		return loadConfig(o.configPath, true)
	}
	return loadConfig(defaultConfigPath(), false)
}

// Execute runs the glitch CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "glitch",
		Short:         "glitch renders distorted cover art",
		Long:          `glitch draws cover art with slice displacement, chromatic aberration and film grain, controlled either directly or by a three-question quiz.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("glitch %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default: glitch/config.toml in the user config directory)")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newDeriveCmd(opts))
	root.AddCommand(newAnswersCmd(opts))
	root.AddCommand(newGalleryCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root
}
