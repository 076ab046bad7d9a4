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
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/answerstore"
)

type renderOptions struct {
	output     string
	source     string
	overlay    string
	cssWidth   float64
	cssHeight  float64
	seed       uint64
	useAnswers bool
	answersKey string
	params     *paramFlags
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a cover to a PNG file",
		Long: `Render a cover to a PNG file.

Parameters are taken from the defaults, then from the [params] section of
the configuration file, then from stored quiz answers (with --answers),
and finally from the command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			return runRender(cmd, cfg, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "cover.png", "output file")
	fs.StringVar(&opts.source, "source", "", "source image (overrides the configuration)")
	fs.StringVar(&opts.overlay, "overlay", "", "overlay image (overrides the configuration)")
	fs.Float64Var(&opts.cssWidth, "css-width", 0, "displayed width in CSS pixels (overrides the configuration)")
	fs.Float64Var(&opts.cssHeight, "css-height", 0, "displayed height in CSS pixels (overrides the configuration)")
	fs.Uint64Var(&opts.seed, "seed", 0, "seed for the grain (default: random)")
	fs.BoolVar(&opts.useAnswers, "answers", false, "apply stored quiz answers")
	fs.StringVar(&opts.answersKey, "answers-key", "", "key of the stored answers (implies --answers)")
	opts.params = addParamFlags(fs)

	return cmd
}

func runRender(cmd *cobra.Command, cfg Config, opts *renderOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if opts.source != "" {
		cfg.Assets.Source = opts.source
	}
	if opts.overlay != "" {
		cfg.Assets.Overlay = opts.overlay
	}
	if opts.cssWidth > 0 {
		cfg.Display.CSSWidth = opts.cssWidth
	}
	if opts.cssHeight > 0 {
		cfg.Display.CSSHeight = opts.cssHeight
	}
	if err := cfg.Display.Target().Check(); err != nil {
		return err
	}
	flagParams, err := opts.params.overrides()
	if err != nil {
		return err
	}

	assets := loadAssets(ctx, cfg.Assets)
	sess := glitch.NewSession(cfg.Display.Target(), assets, cfg.Params.Apply(glitch.DefaultParameters()))
	sess.SetLogger(logger)
	if cmd.Flags().Changed("seed") {
		sess.SetRandomSource(glitch.NewSeededSource(opts.seed))
	}

	if opts.useAnswers || opts.answersKey != "" {
		key := opts.answersKey
		if key == "" {
			key = cfg.Answers.key()
		}
		a, err := loadAnswers(ctx, cfg.Answers, key)
		if err != nil {
			return err
		}
		if a == nil {
			logger.Info("no usable answers stored, using defaults", "key", key)
		} else if sess.ApplyAnswers(a) {
			logger.Debug("applied quiz answers", "key", key)
		}
	}

	s := sess.Update(flagParams.Apply(sess.Params()))
	if err := writePNG(opts.output, s); err != nil {
		return err
	}
	prog.done("wrote "+opts.output, "width", s.Width(), "height", s.Height())
	return nil
}

// loadAssets loads the configured images.  Failures are logged and give
// a background-only cover.
func loadAssets(ctx context.Context, c AssetsConfig) glitch.Assets {
	logger := loggerFromContext(ctx)
	if c.Source == "" {
		logger.Warn("no source image configured, rendering background only")
		return glitch.Assets{}
	}
	a, err := glitch.LoadAssets(ctx, c.Source, c.Overlay)
	if err != nil {
		logger.Error("cannot load images, rendering background only", "err", err)
		return glitch.Assets{}
	}
	logger.Debug("loaded images", "source", c.Source, "overlay", c.Overlay)
	return a
}

// loadAnswers reads the answers stored under key.
func loadAnswers(ctx context.Context, c AnswersConfig, key string) (*glitch.AnswerRecord, error) {
	st, closeStore, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return answerstore.Load(ctx, st, key, time.Now())
}

// writePNG writes the surface to the named file.
func writePNG(path string, s *glitch.Surface) (err error) {
	if s.Empty() {
		return fmt.Errorf("%s: %w", path, errNoArea)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := encodeCover(w, s); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}
