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

// ApplySlices cuts src into strips and redraws every strip displaced
// along a sine wave.
//
// If p.VerticalSliceCount > 1, the columns are split into that many strips
// and strip i is moved down by sin(0.1·i·p.VerticalFrequency) ·
// p.VerticalOffset pixels.  Then, if p.HorizontalSliceCount > 1, the rows
// of the result are split the same way and moved to the right by the same
// formula.  Uncovered pixels are transparent.
//
// The result is a new surface.  If neither pass applies, src itself is
// returned.  src is never modified.
func ApplySlices(src *Surface, p ParameterSet) *Surface {
	if src.Empty() {
		return src
	}
	cur := src
	if p.VerticalSliceCount > 1 {
		cur = sliceColumns(cur, p.VerticalSliceCount, p)
	}
	if p.HorizontalSliceCount > 1 {
		cur = sliceRows(cur, p.HorizontalSliceCount, p)
	}
	return cur
}

func sliceColumns(src *Surface, n int, p ParameterSet) *Surface {
	w, h := src.Width(), src.Height()
	dst := NewSurface(w, h)
	for i := range n {
		x0, x1 := stripBounds(i, n, w)
		if x1 <= x0 {
			continue
		}
		dst.DrawImage(src.img, image.Rect(x0, 0, x1, h),
			float64(x0), stripOffset(i, p), float64(x1-x0), float64(h))
	}
	return dst
}

func sliceRows(src *Surface, n int, p ParameterSet) *Surface {
	w, h := src.Width(), src.Height()
	dst := NewSurface(w, h)
	for i := range n {
		y0, y1 := stripBounds(i, n, h)
		if y1 <= y0 {
			continue
		}
		dst.DrawImage(src.img, image.Rect(0, y0, w, y1),
			stripOffset(i, p), float64(y0), float64(w), float64(y1-y0))
	}
	return dst
}

// stripBounds returns the pixel range [lo, hi) of strip i when size pixels
// are divided into n strips.  Adjacent strips share their boundary, so the
// strips tile the full range without gaps or overlap.
func stripBounds(i, n, size int) (lo, hi int) {
	step := float64(size) / float64(n)
	lo = int(math.Round(float64(i) * step))
	hi = int(math.Round(float64(i+1) * step))
	if i == n-1 {
		hi = size
	}
	return lo, hi
}

// stripOffset returns the displacement of strip i, in pixels.
func stripOffset(i int, p ParameterSet) float64 {
	return math.Sin(float64(i)*p.VerticalFrequency*0.1) * p.VerticalOffset
}
