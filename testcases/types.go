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

// Package testcases contains the inputs used to test the cover renderer.
//
// Shapes are plain paths for exercising the rasteriser.  Scenarios
// describe complete covers: a target size, synthetic source and overlay
// images, and a parameter set.  The gallery command renders all scenarios
// for visual inspection.
package testcases

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glitch"
)

// Shape is a path together with the canvas it is filled on.
type Shape struct {
	Name   string        // lowercase a-z and _ only
	Path   *path.Data    // the geometry to fill, using the non-zero rule
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	CTM    matrix.Matrix // zero-value means no transform

	// Area is the exact area of the filled region in device space, or 0
	// if not known in closed form.
	Area float64
}

// Scenario describes one complete cover rendering.
type Scenario struct {
	Name string // lowercase a-z and _ only

	// CSSWidth and CSSHeight give the displayed size of the target.
	CSSWidth, CSSHeight float64

	// Source and Overlay generate the input images.  A nil function means
	// that the image is missing.
	Source  func() image.Image
	Overlay func() image.Image

	Params glitch.ParameterSet
	Seed   uint64 // seed for the grain stage
}

// Target returns the render target of the scenario.
func (s Scenario) Target() glitch.Target {
	return glitch.Target{CSSWidth: s.CSSWidth, CSSHeight: s.CSSHeight}
}

// Assets generates the input images of the scenario.
func (s Scenario) Assets() glitch.Assets {
	var a glitch.Assets
	if s.Source != nil {
		a.Source = s.Source()
	}
	if s.Overlay != nil {
		a.Overlay = s.Overlay()
	}
	return a
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
