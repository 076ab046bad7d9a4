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
	"errors"
	"fmt"
	"math"
)

// PixelRatio is the number of raster pixels per CSS pixel.
const PixelRatio = 2

// MaxPixels is the largest raster, in pixels, a target may have.
const MaxPixels = 1 << 24

// ErrTargetTooLarge is returned by Target.Check for targets whose raster
// would exceed MaxPixels.
var ErrTargetTooLarge = errors.New("target too large")

// Target describes the element the cover is shown in.
type Target struct {
	// CSSWidth and CSSHeight give the displayed size of the element.
	CSSWidth, CSSHeight float64
}

// Size returns the raster size for the target, PixelRatio times the CSS
// size, truncated.  Invalid sizes give zero, and so do targets which fail
// Check.
func (t Target) Size() (width, height int) {
	w, h := rasterSize(t.CSSWidth), rasterSize(t.CSSHeight)
	if int64(w)*int64(h) > MaxPixels {
		return 0, 0
	}
	return w, h
}

// Check returns an error wrapping ErrTargetTooLarge if the raster of t
// would have more than MaxPixels pixels.
func (t Target) Check() error {
	w, h := rasterSize(t.CSSWidth), rasterSize(t.CSSHeight)
	if int64(w)*int64(h) > MaxPixels {
		return fmt.Errorf("%w: %gx%g css px", ErrTargetTooLarge, t.CSSWidth, t.CSSHeight)
	}
	return nil
}

func rasterSize(css float64) int {
	v := css * PixelRatio
	if !(v > 0) || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// NewSurface allocates a surface of the raster size of t.
func (t Target) NewSurface() *Surface {
	w, h := t.Size()
	return NewSurface(w, h)
}
