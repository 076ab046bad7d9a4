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
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/glitch"
)

type deriveOptions struct {
	answers   answerFlags
	fromStore bool
	key       string
	full      bool
}

func newDeriveCmd(root *rootOptions) *cobra.Command {
	opts := &deriveOptions{}

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Show the settings derived from quiz answers",
		Long: `Show the settings derived from quiz answers, as YAML.

The answers are either given with --q1, --q2 and --q3, or read from the
answer store with --from-store.  By default only the derived settings are
printed; --full prints the complete parameter set after the derived
settings have been applied to the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			return runDerive(cmd, cfg, opts)
		},
	}

	fs := cmd.Flags()
	opts.answers.register(fs)
	fs.BoolVar(&opts.fromStore, "from-store", false, "read the answers from the answer store")
	fs.StringVar(&opts.key, "key", "", "key of the stored answers (default from the configuration)")
	fs.BoolVar(&opts.full, "full", false, "print the complete parameter set")
	cmd.MarkFlagsMutuallyExclusive("from-store", "q1")
	cmd.MarkFlagsMutuallyExclusive("from-store", "q2")
	cmd.MarkFlagsMutuallyExclusive("from-store", "q3")

	return cmd
}

func runDerive(cmd *cobra.Command, cfg Config, opts *deriveOptions) error {
	ctx := cmd.Context()

	var a *glitch.AnswerRecord
	if opts.fromStore {
		key := opts.key
		if key == "" {
			key = cfg.Answers.key()
		}
		var err error
		a, err = loadAnswers(ctx, cfg.Answers, key)
		if err != nil {
			return err
		}
		if a == nil {
			loggerFromContext(ctx).Warn("no usable answers stored", "key", key)
		}
	} else {
		var err error
		a, err = opts.answers.record(cmd.Flags())
		if err != nil {
			return err
		}
	}

	o := glitch.DeriveParameters(a)
	if opts.full {
		return writeYAML(cmd.OutOrStdout(), o.Apply(glitch.DefaultParameters()))
	}
	return writeYAML(cmd.OutOrStdout(), o)
}

// answerFlags binds the three quiz answers to command-line flags.
type answerFlags struct {
	q1, q3 float64
	q2     string
}

func (af *answerFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&af.q1, "q1", 0, fmt.Sprintf("answer to the first question, %d to %d", glitch.MinSlider, glitch.MaxSlider))
	fs.StringVar(&af.q2, "q2", "", fmt.Sprintf("answer to the second question, %q or %q", glitch.ChoiceOr, glitch.ChoiceArgent))
	fs.Float64Var(&af.q3, "q3", 0, fmt.Sprintf("answer to the third question, %d to %d", glitch.MinSlider, glitch.MaxSlider))
}

// record returns the answers given on the command line.  All three
// answers must be present.
func (af *answerFlags) record(fs *pflag.FlagSet) (*glitch.AnswerRecord, error) {
	for _, name := range []string{"q1", "q2", "q3"} {
		if !fs.Changed(name) {
			return nil, errors.New("--q1, --q2 and --q3 are required")
		}
	}
	a := &glitch.AnswerRecord{
		Question1: af.q1,
		Question2: glitch.Choice(af.q2),
		Question3: af.q3,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
