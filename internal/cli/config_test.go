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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/answerstore"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[assets]
source = "cover.jpg"

[display]
css_width = 320.5

[params]
vertical_slice_count = 8
background_color = "#ff0000"

[answers]
backend = "memory"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Assets.Source != "cover.jpg" || cfg.Assets.Overlay != "" {
		t.Errorf("assets: %+v", cfg.Assets)
	}
	// unset values keep their defaults
	if cfg.Display.CSSWidth != 320.5 || cfg.Display.CSSHeight != 400 {
		t.Errorf("display: %+v", cfg.Display)
	}
	if cfg.Server.Addr != ":8080" || cfg.Answers.key() != answerstore.DefaultKey {
		t.Error("defaults lost")
	}

	p := cfg.Params.Apply(glitch.DefaultParameters())
	if p.VerticalSliceCount != 8 || p.BackgroundColor != (glitch.RGB{R: 255}) || p.ImageOpacity != 1 {
		t.Errorf("params: %+v", p)
	}

	st, closeStore, err := cfg.Answers.openStore(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	defer closeStore()
	if _, ok := st.(*answerstore.MemoryStore); !ok {
		t.Errorf("got store %T", st)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")
	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Error("missing file does not give the defaults")
	}
	if _, err := loadConfig(path, true); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[display]\ncss_widht = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := loadConfig(path, true)
	if err == nil || !strings.Contains(err.Error(), "css_widht") {
		t.Errorf("got %v", err)
	}
}

func TestOpenStoreUnknown(t *testing.T) {
	c := AnswersConfig{Backend: "floppy"}
	if _, _, err := c.openStore(t.Context()); err == nil {
		t.Error("unknown backend accepted")
	}
}
