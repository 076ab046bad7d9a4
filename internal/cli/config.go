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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/glitch"
	"seehuhn.de/go/glitch/answerstore"
)

// Config is the contents of the configuration file.  All sections are
// optional.
//
//	[assets]
//	source = "cover.jpg"
//	overlay = "frame.png"
//
//	[display]
//	css_width = 400
//	css_height = 400
//
//	[params]
//	background_color = "#101010"
//	noise_intensity = 0.2
//
//	[answers]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Assets  AssetsConfig     `toml:"assets"`
	Display DisplayConfig    `toml:"display"`
	Params  glitch.Overrides `toml:"params"`
	Answers AnswersConfig    `toml:"answers"`
	Server  ServerConfig     `toml:"server"`
}

// AssetsConfig names the image files.
type AssetsConfig struct {
	Source  string `toml:"source"`
	Overlay string `toml:"overlay"`
}

// DisplayConfig gives the displayed size of the cover, in CSS pixels.
type DisplayConfig struct {
	CSSWidth  float64 `toml:"css_width"`
	CSSHeight float64 `toml:"css_height"`
}

// Target returns the render target for the display size.
func (d DisplayConfig) Target() glitch.Target {
	return glitch.Target{CSSWidth: d.CSSWidth, CSSHeight: d.CSSHeight}
}

// AnswersConfig selects the storage backend for quiz answers.
type AnswersConfig struct {
	Backend       string `toml:"backend"` // "memory", "file" or "redis"
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Key           string `toml:"key"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Display: DisplayConfig{CSSWidth: 400, CSSHeight: 400},
		Answers: AnswersConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			Key:       answerstore.DefaultKey,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// defaultConfigPath returns the location of the configuration file used
// when no --config flag is given.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glitch", "config.toml")
}

// loadConfig reads the configuration file at path on top of the defaults.
// A missing file is not an error unless the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	} else if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// openStore opens the answer store selected in the configuration.  The
// returned close function must be called when the store is no longer
// needed.
func (c AnswersConfig) openStore(ctx context.Context) (answerstore.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case "memory":
		return answerstore.NewMemoryStore(), noop, nil
	case "", "file":
		st, err := answerstore.NewFileStore(c.Dir)
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case "redis":
		st, err := answerstore.NewRedisStore(ctx, answerstore.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown answer store backend %q", c.Backend)
	}
}

// key returns the configured record key.
func (c AnswersConfig) key() string {
	if c.Key == "" {
		return answerstore.DefaultKey
	}
	return c.Key
}
