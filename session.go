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

package glitch

import (
	"time"

	"github.com/charmbracelet/log"
)

// Session keeps the state of one displayed cover: the target element, the
// decoded images, the current parameters and the rendered surface.  Every
// change re-renders the whole surface; there are no partial updates.
//
// A Session is not safe for concurrent use.  Callers which receive
// updates from several goroutines must serialise the calls.
type Session struct {
	target  Target
	assets  Assets
	params  ParameterSet
	rnd     RandomSource
	logger  *log.Logger
	surface *Surface

	renders         int
	answersConsumed bool
}

// NewSession creates a session.  Nothing is rendered until Render,
// Update or Resize is called.
func NewSession(t Target, a Assets, p ParameterSet) *Session {
	return &Session{
		target: t,
		assets: a,
		params: p,
		logger: log.Default(),
	}
}

// SetLogger sets the logger for render diagnostics.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// SetRandomSource fixes the generator used for the grain stage.  A nil
// source restores unseeded grain.
func (s *Session) SetRandomSource(r RandomSource) {
	s.rnd = r
}

// Params returns the current parameters.
func (s *Session) Params() ParameterSet { return s.params }

// Target returns the current target element size.
func (s *Session) Target() Target { return s.target }

// Surface returns the most recently rendered surface, or nil before the
// first render.
func (s *Session) Surface() *Surface { return s.surface }

// Renders returns the number of completed renders.
func (s *Session) Renders() int { return s.renders }

// ApplyAnswers merges the settings derived from the quiz answers into the
// current parameters.  Answers are consumed at most once and only before
// the first render; the return value reports whether they were applied.
func (s *Session) ApplyAnswers(a *AnswerRecord) bool {
	if s.answersConsumed || s.renders > 0 {
		return false
	}
	s.answersConsumed = true
	o := DeriveParameters(a)
	if o.IsEmpty() {
		return false
	}
	s.params = o.Apply(s.params)
	return true
}

// Render draws the cover with the current parameters.
func (s *Session) Render() *Surface {
	w, h := s.target.Size()
	if s.surface == nil {
		s.surface = NewSurface(w, h)
	} else if s.surface.Width() != w || s.surface.Height() != h {
		s.surface.resize(w, h)
	}
	if err := s.target.Check(); err != nil {
		s.logger.Warn("skipping render", "err", err)
		return s.surface
	}
	if s.surface.Empty() {
		s.logger.Debug("skipping render, target has no area", "width", w, "height", h)
		return s.surface
	}

	start := time.Now()
	Render(s.surface, s.assets.Source, s.assets.Overlay, s.params, s.rnd)
	s.renders++
	s.logger.Debug("rendered cover",
		"width", w, "height", h,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return s.surface
}

// Update replaces the parameters and renders once.
func (s *Session) Update(p ParameterSet) *Surface {
	s.params = p
	return s.Render()
}

// Resize records a new displayed size for the target element, which
// changes the raster size, and renders once.  Targets failing
// Target.Check are recorded but leave the surface empty.
func (s *Session) Resize(cssWidth, cssHeight float64) *Surface {
	s.target = Target{CSSWidth: cssWidth, CSSHeight: cssHeight}
	return s.Render()
}
