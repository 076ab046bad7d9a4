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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/answerstore"
	"seehuhn.de/go/glitch/testcases"
)

// runCmd executes the root command with args and returns its standard
// output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

// testConfig writes a configuration file which keeps answers in a
// temporary directory, and returns its path.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf("[answers]\nbackend = \"file\"\ndir = %q\n\n%s", filepath.Join(dir, "answers"), extra)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeYAML(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := yaml.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid YAML output %q: %v", s, err)
	}
	return m
}

func TestDeriveCmd(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := runCmd(t, "derive", "--config", cfg, "--q1", "4", "--q2", "or", "--q3", "5")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	m := decodeYAML(t, out)

	want := map[string]any{
		"vertical_slice_count": 20,
		"image_opacity":        0.9,
		"vertical_offset":      50,
		"chromatic_aberration": 12,
		"chromatic_angle":      45,
		"noise_intensity":      0.5,
	}
	for k, v := range want {
		if fmt.Sprint(m[k]) != fmt.Sprint(v) {
			t.Errorf("%s = %v, want %v", k, m[k], v)
		}
	}
	if _, ok := m["background_color"]; ok {
		t.Error("background_color should not be derived")
	}
}

func TestDeriveCmdFull(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := runCmd(t, "derive", "--config", cfg, "--q1", "0", "--q2", "argent", "--q3", "0", "--full")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	m := decodeYAML(t, out)
	if m["background_color"] != "#000000" {
		t.Errorf("background_color = %v, want #000000", m["background_color"])
	}
	if fmt.Sprint(m["vertical_frequency"]) != "1" {
		t.Errorf("vertical_frequency = %v, want 1", m["vertical_frequency"])
	}
	if fmt.Sprint(m["chromatic_angle"]) != "135" {
		t.Errorf("chromatic_angle = %v, want 135", m["chromatic_angle"])
	}
}

func TestDeriveCmdInvalid(t *testing.T) {
	cfg := testConfig(t, "")
	tests := [][]string{
		{"--q1", "4"},
		{"--q1", "11", "--q2", "or", "--q3", "5"},
		{"--q1", "4", "--q2", "gold", "--q3", "5"},
	}
	for _, args := range tests {
		args = append([]string{"derive", "--config", cfg}, args...)
		if _, err := runCmd(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestAnswersCmd(t *testing.T) {
	cfg := testConfig(t, "")

	out, err := runCmd(t, "answers", "save", "--config", cfg, "--q1", "2", "--q2", "argent", "--q3", "3")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.TrimSpace(out) != answerstore.DefaultKey {
		t.Errorf("save printed %q, want %q", out, answerstore.DefaultKey)
	}

	out, err = runCmd(t, "answers", "show", "--config", cfg)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	m := decodeYAML(t, out)
	if m["question2"] != "argent" {
		t.Errorf("question2 = %v, want argent", m["question2"])
	}
	if _, ok := m["saved"]; !ok {
		t.Error("missing save time")
	}

	out, err = runCmd(t, "derive", "--config", cfg, "--from-store")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	m = decodeYAML(t, out)
	if fmt.Sprint(m["vertical_slice_count"]) != "10" {
		t.Errorf("vertical_slice_count = %v, want 10", m["vertical_slice_count"])
	}

	if _, err := runCmd(t, "answers", "clear", "--config", cfg); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := runCmd(t, "answers", "show", "--config", cfg); err == nil {
		t.Error("show after clear: expected error")
	}
	if _, err := runCmd(t, "answers", "clear", "--config", cfg); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestAnswersCmdNewKey(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := runCmd(t, "answers", "save", "--config", cfg, "--new-key", "--q1", "1", "--q2", "or", "--q3", "1")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	key := strings.TrimSpace(out)
	if !strings.HasPrefix(key, answerstore.DefaultKey+":") {
		t.Fatalf("key = %q, want prefix %q", key, answerstore.DefaultKey+":")
	}

	if _, err := runCmd(t, "answers", "show", "--config", cfg, "--key", key); err != nil {
		t.Errorf("show %s: %v", key, err)
	}
	if _, err := runCmd(t, "answers", "show", "--config", cfg); err == nil {
		t.Error("default key should be empty")
	}
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.png")
	writeTestPNG(t, src, testcases.Gradient(60, 30))

	cfg := testConfig(t, fmt.Sprintf("[assets]\nsource = %q\n", src))
	out := filepath.Join(dir, "cover.png")
	_, err := runCmd(t, "render", "--config", cfg, "-o", out,
		"--css-width", "20", "--css-height", "10", "--seed", "1",
		"--vslices", "4", "--noise", "0.1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readTestPNG(t, out)
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("size = %dx%d, want 40x20", b.Dx(), b.Dy())
	}
}

func TestRenderCmdMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, fmt.Sprintf("[assets]\nsource = %q\n", filepath.Join(dir, "missing.png")))
	out := filepath.Join(dir, "cover.png")

	_, err := runCmd(t, "render", "--config", cfg, "-o", out,
		"--css-width", "5", "--css-height", "5", "--background", "#ff0000")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readTestPNG(t, out)
	r, g, b, a := img.At(3, 3).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("pixel = %v, want opaque red", img.At(3, 3))
	}
}

func TestRenderCmdAnswers(t *testing.T) {
	cfg := testConfig(t, "[params]\nbackground_color = \"#00ff00\"\n")
	if _, err := runCmd(t, "answers", "save", "--config", cfg, "--q1", "3", "--q2", "or", "--q3", "2"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := filepath.Join(t.TempDir(), "cover.png")
	_, err := runCmd(t, "render", "--config", cfg, "-o", out, "--css-width", "4", "--css-height", "4", "--answers")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img := readTestPNG(t, out)
	c := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel = %v, want the configured background", c)
	}
}

func TestRenderCmdBadFlag(t *testing.T) {
	cfg := testConfig(t, "")
	out := filepath.Join(t.TempDir(), "cover.png")
	if _, err := runCmd(t, "render", "--config", cfg, "-o", out, "--background", "blue"); err == nil {
		t.Error("expected error for invalid background")
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output written despite error")
	}
}

func TestRenderCmdTargetTooLarge(t *testing.T) {
	cfg := testConfig(t, "")
	out := filepath.Join(t.TempDir(), "cover.png")
	_, err := runCmd(t, "render", "--config", cfg, "-o", out, "--css-width", "1e6", "--css-height", "1e6")
	if !errors.Is(err, glitch.ErrTargetTooLarge) {
		t.Errorf("got %v, want ErrTargetTooLarge", err)
	}
}

func TestGalleryCmd(t *testing.T) {
	cfg := testConfig(t, "")
	dir := filepath.Join(t.TempDir(), "gallery")
	if _, err := runCmd(t, "gallery", "--config", cfg, "-o", dir, "--category", "grain", "-j", "2"); err != nil {
		t.Fatalf("gallery: %v", err)
	}

	for _, sc := range testcases.Scenarios["grain"] {
		img := readTestPNG(t, filepath.Join(dir, "grain_"+sc.Name+".png"))
		w, h := sc.Target().Size()
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			t.Errorf("%s: size = %dx%d, want %dx%d", sc.Name, b.Dx(), b.Dy(), w, h)
		}
	}

	if _, err := runCmd(t, "gallery", "--config", cfg, "-o", dir, "--category", "nonsense"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func writeTestPNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readTestPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
