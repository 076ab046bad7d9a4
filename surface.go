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
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Surface is a raster drawing target.  Pixels are stored premultiplied in
// an image.RGBA whose bounds start at the origin.
//
// Like a canvas context, a Surface carries drawing state: every fill and
// every DrawImage call is attenuated by GlobalAlpha and combined with the
// existing pixels using Mode.  ClearRect ignores both.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	// GlobalAlpha is the opacity applied to all drawing, in [0, 1].
	GlobalAlpha float64

	// Mode is the blend mode used for drawing.
	Mode BlendMode

	// Interpolator resamples images in DrawImage.  If nil,
	// xdraw.BiLinear is used.
	Interpolator xdraw.Interpolator

	img  *image.RGBA
	rast *Rasteriser
	buf  path.Data
}

// NewSurface allocates a transparent surface of the given size.
// Negative sizes are treated as zero.
func NewSurface(width, height int) *Surface {
	width = max(width, 0)
	height = max(height, 0)
	return &Surface{
		GlobalAlpha: 1,
		Mode:        BlendSourceOver,
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		rast: NewRasteriser(rect.Rect{
			URx: float64(width),
			URy: float64(height),
		}),
	}
}

// resize replaces the pixels of s by a transparent raster of the given
// size.  The drawing state and the rasteriser buffers are kept.
func (s *Surface) resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.rast.Reset(rect.Rect{URx: float64(width), URy: float64(height)})
}

// NewSurfaceFromImage returns a surface holding a copy of img, translated
// so that its bounds start at the origin.
func NewSurfaceFromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	xdraw.Copy(s.img, image.Point{}, img, b, xdraw.Src, nil)
	return s
}

// Bounds returns the pixel rectangle of the surface.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Empty reports whether nothing can be drawn on s.
// This is the case for a nil surface and for surfaces of zero area.
func (s *Surface) Empty() bool {
	return s == nil || s.img == nil || s.img.Rect.Empty()
}

// Image returns the pixel buffer of the surface.  The buffer is shared,
// not copied.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// RGBAAt returns the premultiplied colour of pixel (x, y).
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// SetRGBA overwrites pixel (x, y), ignoring GlobalAlpha and Mode.
func (s *Surface) SetRGBA(x, y int, c color.RGBA) {
	s.img.SetRGBA(x, y, c)
}

// Clone returns a deep copy of s, including the drawing state.
func (s *Surface) Clone() *Surface {
	c := NewSurface(s.Width(), s.Height())
	copy(c.img.Pix, s.img.Pix)
	c.GlobalAlpha = s.GlobalAlpha
	c.Mode = s.Mode
	c.Interpolator = s.Interpolator
	return c
}

// Snapshot copies the pixels inside r into a new surface of size r.Dx() ×
// r.Dy().  Parts of r outside the surface are transparent in the copy.
func (s *Surface) Snapshot(r image.Rectangle) *Surface {
	c := NewSurface(r.Dx(), r.Dy())
	src := r.Intersect(s.Bounds())
	if !src.Empty() {
		xdraw.Copy(c.img, src.Min.Sub(r.Min), s.img, src, xdraw.Src, nil)
	}
	return c
}

// ClearRect makes all pixels inside r transparent black.
func (s *Surface) ClearRect(r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(s.img.Pix[s.img.PixOffset(r.Min.X, y):s.img.PixOffset(r.Max.X, y)])
	}
}

// Fill paints the whole surface with c.
func (s *Surface) Fill(c color.Color) {
	s.FillRect(0, 0, float64(s.Width()), float64(s.Height()), c)
}

// FillRect paints the rectangle with top-left corner (x, y) and the given
// size.  Fractional edges are anti-aliased.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	if s.Empty() || !(w > 0) || !(h > 0) {
		return
	}
	p := s.resetPath()
	p.Cmds = append(p.Cmds, path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose)
	p.Coords = append(p.Coords,
		vec.Vec2{X: x, Y: y},
		vec.Vec2{X: x + w, Y: y},
		vec.Vec2{X: x + w, Y: y + h},
		vec.Vec2{X: x, Y: y + h},
	)
	s.fillPath(p, c)
}

// kappa is the control point distance for approximating a quarter circle
// by a cubic Bézier curve.
const kappa = 0.5522847498307936

// FillCircle paints a disc of the given radius centred at (cx, cy).
func (s *Surface) FillCircle(cx, cy, radius float64, c color.Color) {
	if s.Empty() || !(radius > 0) {
		return
	}
	k := radius * kappa
	p := s.resetPath()
	p.Cmds = append(p.Cmds, path.CmdMoveTo,
		path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo, path.CmdCubeTo,
		path.CmdClose)
	p.Coords = append(p.Coords,
		vec.Vec2{X: cx + radius, Y: cy},
		vec.Vec2{X: cx + radius, Y: cy + k}, vec.Vec2{X: cx + k, Y: cy + radius}, vec.Vec2{X: cx, Y: cy + radius},
		vec.Vec2{X: cx - k, Y: cy + radius}, vec.Vec2{X: cx - radius, Y: cy + k}, vec.Vec2{X: cx - radius, Y: cy},
		vec.Vec2{X: cx - radius, Y: cy - k}, vec.Vec2{X: cx - k, Y: cy - radius}, vec.Vec2{X: cx, Y: cy - radius},
		vec.Vec2{X: cx + k, Y: cy - radius}, vec.Vec2{X: cx + radius, Y: cy - k}, vec.Vec2{X: cx + radius, Y: cy},
	)
	s.fillPath(p, c)
}

func (s *Surface) resetPath() *path.Data {
	s.buf.Cmds = s.buf.Cmds[:0]
	s.buf.Coords = s.buf.Coords[:0]
	return &s.buf
}

// fillPath composites c into all pixels covered by p.
func (s *Surface) fillPath(p *path.Data, c color.Color) {
	r, g, b, a := c.RGBA()
	src := scalePixel([4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}, alpha8(s.GlobalAlpha))
	if src == ([4]uint8{}) {
		return
	}

	pix, stride := s.img.Pix, s.img.Stride
	s.rast.FillNonZero(p, func(y, xMin int, coverage []float32) {
		row := pix[y*stride+4*xMin:]
		for i, cov := range coverage {
			k := uint8(math.Round(float64(cov) * 255))
			compositePixel(row[4*i:4*i+4], scalePixel(src, k), s.Mode)
		}
	})
}

// DrawImage draws the part sr of src into the destination rectangle with
// top-left corner (dx, dy) and size dw × dh, resampling as needed.
// Destination pixels whose centre maps outside sr are left alone.
func (s *Surface) DrawImage(src image.Image, sr image.Rectangle, dx, dy, dw, dh float64) {
	if s.Empty() || src == nil {
		return
	}
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() || !(dw > 0) || !(dh > 0) {
		return
	}
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) || math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}

	bbox := image.Rect(
		int(math.Floor(max(dx, -1))), int(math.Floor(max(dy, -1))),
		int(math.Ceil(min(dx+dw, float64(s.Width()+1)))), int(math.Ceil(min(dy+dh, float64(s.Height()+1)))),
	).Intersect(s.Bounds())
	if bbox.Empty() {
		return
	}
	layer := image.NewRGBA(bbox)

	sx := dw / float64(sr.Dx())
	sy := dh / float64(sr.Dy())
	if sx == 1 && sy == 1 && dx == math.Trunc(dx) && dy == math.Trunc(dy) {
		xdraw.Copy(layer, image.Pt(int(dx), int(dy)), src, sr, xdraw.Src, nil)
	} else {
		interp := s.Interpolator
		if interp == nil {
			interp = xdraw.BiLinear
		}
		s2d := f64.Aff3{
			sx, 0, dx - float64(sr.Min.X)*sx,
			0, sy, dy - float64(sr.Min.Y)*sy,
		}
		interp.Transform(layer, s2d, src, sr, xdraw.Src, nil)
	}
	s.composite(layer)
}

// DrawSurface draws all of src with its top-left corner at (dx, dy),
// without scaling.
func (s *Surface) DrawSurface(src *Surface, dx, dy float64) {
	if src.Empty() {
		return
	}
	s.DrawImage(src.img, src.Bounds(), dx, dy, float64(src.Width()), float64(src.Height()))
}

// composite blends layer into s at the position given by the layer's
// bounds, using the current drawing state.
func (s *Surface) composite(layer *image.RGBA) {
	k := alpha8(s.GlobalAlpha)
	if k == 0 {
		return
	}
	b := layer.Rect.Intersect(s.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		li := layer.PixOffset(b.Min.X, y)
		si := s.img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			p := [4]uint8(layer.Pix[li : li+4])
			compositePixel(s.img.Pix[si:si+4], scalePixel(p, k), s.Mode)
			li += 4
			si += 4
		}
	}
}
