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

import "math"

// BlendMode selects how drawing operations combine new pixels with the
// pixels already on a Surface.
type BlendMode int

const (
	// BlendSourceOver paints the source over the destination.
	BlendSourceOver BlendMode = iota

	// BlendScreen brightens: for every channel (alpha included) the
	// result is S + D - S·D.  Overlapping light adds up but never
	// exceeds full intensity.
	BlendScreen
)

func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "source-over"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// All pixel values below are premultiplied by alpha, as in image.RGBA.

// mulDiv255 returns a·b/255, rounded to nearest.
func mulDiv255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + t>>8) >> 8)
}

// blendSourceOver returns S + D·(1-Sa).
func blendSourceOver(s, d uint8, sa uint8) uint8 {
	return s + mulDiv255(d, 255-sa)
}

// blendScreen returns S + D - S·D.
func blendScreen(s, d uint8) uint8 {
	return s + d - mulDiv255(s, d)
}

// compositePixel blends the premultiplied source pixel s into dst, which
// must hold at least four bytes in RGBA order.
func compositePixel(dst []uint8, s [4]uint8, mode BlendMode) {
	if s[3] == 0 && s[0]|s[1]|s[2] == 0 {
		return
	}
	switch mode {
	case BlendScreen:
		dst[0] = blendScreen(s[0], dst[0])
		dst[1] = blendScreen(s[1], dst[1])
		dst[2] = blendScreen(s[2], dst[2])
		dst[3] = blendScreen(s[3], dst[3])
	default:
		if s[3] == 255 {
			dst[0], dst[1], dst[2], dst[3] = s[0], s[1], s[2], 255
			return
		}
		dst[0] = blendSourceOver(s[0], dst[0], s[3])
		dst[1] = blendSourceOver(s[1], dst[1], s[3])
		dst[2] = blendSourceOver(s[2], dst[2], s[3])
		dst[3] = blendSourceOver(s[3], dst[3], s[3])
	}
}

// scalePixel multiplies all four premultiplied channels of p by the
// factor k/255.
func scalePixel(p [4]uint8, k uint8) [4]uint8 {
	if k == 255 {
		return p
	}
	return [4]uint8{mulDiv255(p[0], k), mulDiv255(p[1], k), mulDiv255(p[2], k), mulDiv255(p[3], k)}
}

// alpha8 converts an opacity in [0, 1] to 0..255.  Values outside the
// range are clamped and NaN counts as fully transparent.
func alpha8(a float64) uint8 {
	if !(a > 0) {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}
