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

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/testcases"
)

func newGalleryCmd(root *rootOptions) *cobra.Command {
	var (
		outDir   string
		category string
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render all built-in scenarios",
		Long: `Render all built-in scenarios to PNG files.

Each scenario is written to <out>/<category>_<name>.png.  The grain of
every scenario is seeded, so that the output is reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			categories := make([]string, 0, len(testcases.Scenarios))
			for c := range testcases.Scenarios {
				if category == "" || c == category {
					categories = append(categories, c)
				}
			}
			if len(categories) == 0 {
				return fmt.Errorf("unknown scenario category %q", category)
			}
			slices.Sort(categories)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)
			g.SetLimit(max(jobs, 1))
			count := 0
			for _, c := range categories {
				for _, sc := range testcases.Scenarios[c] {
					fname := filepath.Join(outDir, c+"_"+sc.Name+".png")
					count++
					g.Go(func() error {
						if err := ctx.Err(); err != nil {
							return err
						}
						sess := glitch.NewSession(sc.Target(), sc.Assets(), sc.Params)
						sess.SetLogger(logger.With("scenario", c+"/"+sc.Name))
						sess.SetRandomSource(glitch.NewSeededSource(sc.Seed))
						return writePNG(fname, sess.Render())
					})
				}
			}
			if err := g.Wait(); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("rendered %d scenarios", count), "dir", outDir)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&outDir, "output", "o", "gallery", "output directory")
	fs.StringVar(&category, "category", "", "render only this category")
	fs.IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of scenarios rendered in parallel")

	return cmd
}
