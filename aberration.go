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
	"math"
)

// ApplyAberration splits the pixels inside region into red, green and
// blue layers and screens them back with the red layer moved by -d and the
// blue layer by +d, where d has length p.ChromaticAberration and direction
// p.ChromaticAngle.  The layers are drawn with the current GlobalAlpha of
// s.  Afterwards the blend mode of s is source-over.
//
// Nothing happens if p.ChromaticAberration is not positive.
func ApplyAberration(s *Surface, region image.Rectangle, p ParameterSet) {
	mag := p.ChromaticAberration
	if !(mag > 0) || math.IsInf(mag, 1) || s.Empty() {
		return
	}
	region = region.Intersect(s.Bounds())
	if region.Empty() {
		return
	}

	snap := s.Snapshot(region)
	theta := p.ChromaticAngle * math.Pi / 180
	dx := math.Cos(theta) * mag
	dy := math.Sin(theta) * mag

	red := channelMask(snap, 0)
	green := channelMask(snap, 1)
	blue := channelMask(snap, 2)

	x := float64(region.Min.X)
	y := float64(region.Min.Y)

	s.ClearRect(region)
	s.Mode = BlendScreen
	s.DrawSurface(red, x-dx, y-dy)
	s.DrawSurface(green, x, y)
	s.DrawSurface(blue, x+dx, y+dy)
	s.Mode = BlendSourceOver
}

// channelMask returns a copy of src in which all colour channels except
// channel keep (0 = red, 1 = green, 2 = blue) are zero.  Alpha is kept.
func channelMask(src *Surface, keep int) *Surface {
	dst := src.Clone()
	pix := dst.img.Pix
	for i := 0; i < len(pix); i += 4 {
		for c := range 3 {
			if c != keep {
				pix[i+c] = 0
			}
		}
	}
	return dst
}
