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
	"slices"
	"testing"
)

func TestFillRectAligned(t *testing.T) {
	s := NewSurface(10, 10)
	s.FillRect(2, 3, 4, 5, color.RGBA{R: 255, A: 255})

	for y := range 10 {
		for x := range 10 {
			got := s.RGBAAt(x, y)
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			want := color.RGBA{}
			if inside {
				want = color.RGBA{R: 255, A: 255}
			}
			if got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillGlobalAlpha(t *testing.T) {
	s := NewSurface(4, 4)
	s.GlobalAlpha = 0.5
	s.Fill(RGB{R: 255, G: 255, B: 255})
	want := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	if got := s.RGBAAt(1, 1); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	s.GlobalAlpha = 0
	s.Fill(RGB{R: 255})
	if got := s.RGBAAt(1, 1); got != want {
		t.Errorf("fill with zero alpha changed pixel to %v", got)
	}
}

func TestFillCircleArea(t *testing.T) {
	s := NewSurface(40, 40)
	s.FillCircle(20, 20, 10, color.Alpha{A: 255})

	var total float64
	for i := 3; i < len(s.img.Pix); i += 4 {
		total += float64(s.img.Pix[i]) / 255
	}
	want := math.Pi * 100
	if math.Abs(total-want) > 0.05*want {
		t.Errorf("disc area %g, want %g", total, want)
	}
	if s.RGBAAt(20, 20).A != 255 {
		t.Error("centre not covered")
	}
	if s.RGBAAt(5, 5).A != 0 {
		t.Error("corner covered")
	}
}

func TestDrawSurfaceCopy(t *testing.T) {
	src := NewSurface(8, 6)
	for i := range src.img.Pix {
		src.img.Pix[i] = uint8(i)
	}
	// make the pixels valid premultiplied colours
	for i := 0; i < len(src.img.Pix); i += 4 {
		src.img.Pix[i+3] = 255
	}

	dst := NewSurface(8, 6)
	dst.DrawSurface(src, 0, 0)
	if !slices.Equal(dst.img.Pix, src.img.Pix) {
		t.Error("unscaled draw is not an exact copy")
	}
}

func TestDrawImageOffset(t *testing.T) {
	src := NewSurface(2, 2)
	src.Fill(RGB{G: 255})

	dst := NewSurface(6, 6)
	dst.DrawSurface(src, 3, 1)
	for y := range 6 {
		for x := range 6 {
			inside := x >= 3 && x < 5 && y >= 1 && y < 3
			if got := dst.RGBAAt(x, y).A == 255; got != inside {
				t.Errorf("pixel (%d, %d): covered = %t", x, y, got)
			}
		}
	}

	// partially outside the surface
	dst = NewSurface(6, 6)
	dst.DrawSurface(src, -1, 5)
	if dst.RGBAAt(0, 5).G != 255 {
		t.Error("visible part not drawn")
	}
}

func TestDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 14))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	dst := NewSurface(20, 20)
	dst.DrawImage(src, src.Bounds(), 2, 2, 16, 8)
	if got := dst.RGBAAt(10, 6); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("inside: got %v", got)
	}
	if got := dst.RGBAAt(10, 15); got.A != 0 {
		t.Errorf("outside: got %v", got)
	}
}

func TestSnapshotAndClear(t *testing.T) {
	s := NewSurface(5, 5)
	s.Fill(RGB{B: 255})

	snap := s.Snapshot(image.Rect(3, 3, 7, 7))
	if snap.Width() != 4 || snap.Height() != 4 {
		t.Fatalf("snapshot size %dx%d", snap.Width(), snap.Height())
	}
	if snap.RGBAAt(0, 0).B != 255 || snap.RGBAAt(3, 3).A != 0 {
		t.Error("wrong snapshot content")
	}

	s.ClearRect(image.Rect(-2, -2, 2, 2))
	if s.RGBAAt(1, 1) != (color.RGBA{}) || s.RGBAAt(2, 2).B != 255 {
		t.Error("ClearRect touched the wrong pixels")
	}
	if snap.RGBAAt(0, 0).B != 255 {
		t.Error("snapshot shares pixels with the surface")
	}
}

func TestEmptySurface(t *testing.T) {
	var nilSurface *Surface
	if !nilSurface.Empty() {
		t.Error("nil surface not empty")
	}
	s := NewSurface(-3, 7)
	if !s.Empty() || s.Width() != 0 {
		t.Error("negative size not treated as zero")
	}
	// drawing on an empty surface must not panic
	s.Fill(RGB{R: 1})
	s.FillCircle(1, 1, 1, RGB{})
	s.DrawImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), image.Rect(0, 0, 2, 2), 0, 0, 2, 2)
}

func TestClone(t *testing.T) {
	s := NewSurface(3, 3)
	s.Fill(RGB{R: 9})
	s.GlobalAlpha = 0.25
	s.Mode = BlendScreen

	c := s.Clone()
	if c.GlobalAlpha != 0.25 || c.Mode != BlendScreen {
		t.Error("drawing state not copied")
	}
	c.SetRGBA(0, 0, color.RGBA{})
	if s.RGBAAt(0, 0).R != 9 {
		t.Error("clone shares pixels")
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface(10, 10)
	s.FillRect(0, 0, 10, 10, color.White)

	s.resize(40, 20)
	if s.Width() != 40 || s.Height() != 20 {
		t.Fatalf("got %dx%d surface", s.Width(), s.Height())
	}
	if got := s.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("old contents survived: %v", got)
	}

	// the fill clip must follow the new size
	s.FillRect(30, 12, 5, 5, color.White)
	if got := s.RGBAAt(32, 14); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("got %v, want white", got)
	}
}
