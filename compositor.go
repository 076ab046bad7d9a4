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

	xdraw "golang.org/x/image/draw"
)

// Placement is the position and size of an image fitted into a target
// area, in pixels.
type Placement struct {
	X, Y          float64
	Width, Height float64
}

// AspectFit scales an imgW × imgH image to the largest size which fits
// into a dstW × dstH area without distortion, and centres it.  Degenerate
// sizes give the zero Placement.
func AspectFit(imgW, imgH, dstW, dstH float64) Placement {
	if !(imgW > 0 && imgH > 0 && dstW > 0 && dstH > 0) {
		return Placement{}
	}
	imgAspect := imgW / imgH
	dstAspect := dstW / dstH

	p := Placement{Width: dstW, Height: dstH}
	if imgAspect > dstAspect {
		p.Height = dstW / imgAspect
		p.Y = (dstH - p.Height) / 2
	} else {
		p.Width = dstH * imgAspect
		p.X = (dstW - p.Width) / 2
	}
	return p
}

// Rect snaps the placement to whole pixels: the origin is rounded and the
// size is truncated.
func (p Placement) Rect() image.Rectangle {
	x := int(math.Round(p.X))
	y := int(math.Round(p.Y))
	return image.Rect(x, y, x+int(p.Width), y+int(p.Height))
}

// Render draws the cover onto s.  The stages always run in this order,
// each one working on the result of the previous ones:
//
//  1. fill s with p.BackgroundColor
//  2. stop here if there is no source image
//  3. fit the source into s (see AspectFit)
//  4. scale the source to the fitted size
//  5. cut and displace strips (see ApplySlices)
//  6. draw the result with opacity p.ImageOpacity
//  7. split colour channels within the image area (see ApplyAberration)
//  8. reset the opacity to 1
//  9. draw the overlay, if any, over the image area
//  10. add grain to the whole surface (see ApplyGrain)
//
// rnd drives the grain stage; if it is nil the grain differs between
// calls.  A nil or empty surface is left alone.
func Render(s *Surface, source, overlay image.Image, p ParameterSet, rnd RandomSource) {
	if s.Empty() {
		return
	}

	s.GlobalAlpha = 1
	s.Mode = BlendSourceOver
	s.Fill(p.BackgroundColor)

	if source == nil || source.Bounds().Empty() {
		return
	}

	sb := source.Bounds()
	area := AspectFit(float64(sb.Dx()), float64(sb.Dy()), float64(s.Width()), float64(s.Height())).Rect()
	if !area.Empty() {
		fitted := NewSurface(area.Dx(), area.Dy())
		fitted.Interpolator = xdraw.CatmullRom
		fitted.DrawImage(source, sb, 0, 0, float64(area.Dx()), float64(area.Dy()))

		sliced := ApplySlices(fitted, p)

		s.GlobalAlpha = p.ImageOpacity
		s.DrawSurface(sliced, float64(area.Min.X), float64(area.Min.Y))
		ApplyAberration(s, area, p)
		s.GlobalAlpha = 1

		if overlay != nil && !overlay.Bounds().Empty() {
			saved := s.Interpolator
			s.Interpolator = xdraw.CatmullRom
			s.DrawImage(overlay, overlay.Bounds(),
				float64(area.Min.X), float64(area.Min.Y), float64(area.Dx()), float64(area.Dy()))
			s.Interpolator = saved
		}
	}

	ApplyGrain(s, s.Bounds(), p, rnd)
}
