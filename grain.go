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
	"image"
	"image/color"
	"math/rand/v2"
)

// RandomSource supplies uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 implements this interface.
type RandomSource interface {
	Float64() float64
}

// unseeded draws from the process-wide generator of math/rand/v2.
type unseeded struct{}

func (unseeded) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a deterministic RandomSource.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Grain geometry.
const (
	grainSpacing = 3    // grid cell size in pixels
	grainSize    = 1.5  // maximal speck radius in pixels
	grainAlpha   = 0.10 // opacity of a single speck
)

// ApplyGrain sprinkles faint white specks over region.  The region is
// divided into 3×3 pixel cells; each cell receives a speck with
// probability p.NoiseIntensity, at a random position inside the cell and
// with a random radius of up to 1.5 pixels.  The specks are collected on
// a separate layer, which is then screened onto s.  Afterwards the blend
// mode of s is source-over.
//
// If rnd is nil, the unseeded global generator is used and the result
// differs between calls.  Nothing happens if p.NoiseIntensity is not
// positive.
func ApplyGrain(s *Surface, region image.Rectangle, p ParameterSet, rnd RandomSource) {
	if !(p.NoiseIntensity > 0) || s.Empty() {
		return
	}
	region = region.Intersect(s.Bounds())
	if region.Empty() {
		return
	}
	if rnd == nil {
		rnd = unseeded{}
	}

	layer := NewSurface(region.Dx(), region.Dy())
	speck := color.NRGBA{R: 255, G: 255, B: 255, A: alpha8(grainAlpha)}
	for x := 0; x < region.Dx(); x += grainSpacing {
		for y := 0; y < region.Dy(); y += grainSpacing {
			if rnd.Float64() >= p.NoiseIntensity {
				continue
			}
			cx := float64(x) + rnd.Float64()*grainSpacing
			cy := float64(y) + rnd.Float64()*grainSpacing
			r := grainSize * rnd.Float64()
			layer.FillCircle(cx, cy, r, speck)
		}
	}

	s.Mode = BlendScreen
	s.DrawSurface(layer, float64(region.Min.X), float64(region.Min.Y))
	s.Mode = BlendSourceOver
}
