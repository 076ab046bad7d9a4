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
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/glitch/answerstore"
)

func newAnswersCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Manage stored quiz answers",
		Long: `Manage the quiz answers kept in the answer store.

The store is selected by the [answers] section of the configuration file:
"file" (the default) keeps one JSON file per key, "redis" uses a Redis
server and "memory" forgets everything when the command exits.`,
	}

	cmd.AddCommand(newAnswersSaveCmd(root))
	cmd.AddCommand(newAnswersShowCmd(root))
	cmd.AddCommand(newAnswersClearCmd(root))

	return cmd
}

func newAnswersSaveCmd(root *rootOptions) *cobra.Command {
	var (
		answers answerFlags
		key     string
		newKey  bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store a set of quiz answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			a, err := answers.record(cmd.Flags())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, closeStore, err := cfg.Answers.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			switch {
			case newKey:
				key = answerstore.NewKey()
			case key == "":
				key = cfg.Answers.key()
			}
			if err := answerstore.Save(ctx, st, key, a, time.Now()); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("saved answers", "key", key)
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	fs := cmd.Flags()
	answers.register(fs)
	fs.StringVar(&key, "key", "", "key to store the answers under (default from the configuration)")
	fs.BoolVar(&newKey, "new-key", false, "store the answers under a fresh random key")
	cmd.MarkFlagsMutuallyExclusive("key", "new-key")

	return cmd
}

func newAnswersShowCmd(root *rootOptions) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored quiz answers",
		Long: `Print the stored quiz answers as YAML.  Stale answers are removed
from the store and not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Answers.key()
			}
			a, err := loadAnswers(cmd.Context(), cfg.Answers, key)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("no usable answers stored under %q", key)
			}

			out := struct {
				Question1 float64   `yaml:"question1"`
				Question2 string    `yaml:"question2"`
				Question3 float64   `yaml:"question3"`
				Saved     time.Time `yaml:"saved,omitempty"`
			}{
				Question1: a.Question1,
				Question2: string(a.Question2),
				Question3: a.Question3,
			}
			if t, ok := a.Time(); ok {
				out.Saved = t.UTC()
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "key of the stored answers (default from the configuration)")

	return cmd
}

func newAnswersClearCmd(root *rootOptions) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored quiz answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Answers.key()
			}

			ctx := cmd.Context()
			st, closeStore, err := cfg.Answers.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := st.Delete(ctx, key); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("cleared answers", "key", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "key of the stored answers (default from the configuration)")

	return cmd
}
