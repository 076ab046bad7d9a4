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
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerContext(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("logger not found in context")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("no default logger")
	}

	newProgress(l).done("rendered", "file", "x.png")
	out := buf.String()
	if !strings.Contains(out, "rendered") || !strings.Contains(out, "elapsed=") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestLoggerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(buf, log.InfoLevel)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}
}
