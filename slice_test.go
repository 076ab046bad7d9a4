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
	"image/color"
	"math"
	"slices"
	"testing"
)

// testSurface returns a w×h surface with an opaque, position dependent
// pattern.
func testSurface(w, h int) *Surface {
	s := NewSurface(w, h)
	for y := range h {
		for x := range w {
			s.SetRGBA(x, y, color.RGBA{R: uint8(x * 13), G: uint8(y * 29), B: uint8(x ^ y), A: 255})
		}
	}
	return s
}

func TestSlicesIdentity(t *testing.T) {
	src := testSurface(40, 30)
	orig := slices.Clone(src.img.Pix)

	for _, n := range [][2]int{{0, 0}, {1, 1}, {-5, 1}, {1, -3}} {
		p := DefaultParameters()
		p.VerticalSliceCount = n[0]
		p.HorizontalSliceCount = n[1]
		p.VerticalOffset = 50
		got := ApplySlices(src, p)
		if !slices.Equal(got.img.Pix, orig) {
			t.Errorf("counts %v: output differs from input", n)
		}
	}
}

func TestSlicesZeroOffset(t *testing.T) {
	src := testSurface(37, 23)
	p := DefaultParameters()
	p.VerticalSliceCount = 6
	p.HorizontalSliceCount = 5
	p.VerticalOffset = 0

	got := ApplySlices(src, p)
	if got == src {
		t.Fatal("expected a new surface")
	}
	if !slices.Equal(got.img.Pix, src.img.Pix) {
		t.Error("strips with zero offset do not reproduce the input")
	}
}

func TestSlicesDoNotModifyInput(t *testing.T) {
	src := testSurface(30, 30)
	orig := slices.Clone(src.img.Pix)
	p := DefaultParameters()
	p.VerticalSliceCount = 7
	p.HorizontalSliceCount = 3
	p.VerticalOffset = 12.5
	p.VerticalFrequency = 4
	ApplySlices(src, p)
	if !slices.Equal(src.img.Pix, orig) {
		t.Error("input was modified")
	}
}

func TestSlicesShiftColumns(t *testing.T) {
	const w, h = 20, 40
	src := NewSurface(w, h)
	src.Fill(RGB{R: 255, G: 255, B: 255})

	// Choose the frequency so that strip 1 moves down by exactly 10
	// pixels: sin(0.1·f)·20 = 10.
	p := DefaultParameters()
	p.VerticalSliceCount = 2
	p.VerticalOffset = 20
	p.VerticalFrequency = 10 * math.Asin(0.5)

	off := stripOffset(1, p)
	if math.Abs(off-10) > 1e-9 {
		t.Fatalf("offset %g", off)
	}

	got := ApplySlices(src, p)
	// strip 0 has offset 0 and stays in place
	if got.RGBAAt(5, 0).A != 255 || got.RGBAAt(5, h-1).A != 255 {
		t.Error("strip 0 moved")
	}
	// strip 1 leaves a transparent gap at the top
	if got.RGBAAt(15, 5).A != 0 {
		t.Errorf("gap above strip 1 is not transparent: %v", got.RGBAAt(15, 5))
	}
	if got.RGBAAt(15, 20).A != 255 {
		t.Error("strip 1 missing")
	}
}

func TestSlicesShiftRows(t *testing.T) {
	const w, h = 40, 20
	src := NewSurface(w, h)
	src.Fill(RGB{R: 255, G: 255, B: 255})

	// strip 1 moves right by 10 pixels, see TestSlicesShiftColumns
	p := DefaultParameters()
	p.HorizontalSliceCount = 2
	p.VerticalOffset = 20
	p.VerticalFrequency = 10 * math.Asin(0.5)

	got := ApplySlices(src, p)
	// strip 0 has offset 0 and stays in place
	if got.RGBAAt(0, 5).A != 255 || got.RGBAAt(w-1, 5).A != 255 {
		t.Error("strip 0 moved")
	}
	// strip 1 leaves a transparent gap on the left
	if got.RGBAAt(5, 15).A != 0 {
		t.Errorf("gap left of strip 1 is not transparent: %v", got.RGBAAt(5, 15))
	}
	if got.RGBAAt(20, 15).A != 255 || got.RGBAAt(w-1, 15).A != 255 {
		t.Error("strip 1 missing")
	}
	// rows are not moved vertically
	if got.RGBAAt(20, 0).A != 255 || got.RGBAAt(20, h-1).A != 255 {
		t.Error("rows moved vertically")
	}
}

// TestSlicesOrder checks that the horizontal pass works on the output of
// the vertical pass.
func TestSlicesOrder(t *testing.T) {
	const w, h = 20, 40
	src := testSurface(w, h)

	// both passes use two strips; strip 1 moves by 10 pixels
	p := DefaultParameters()
	p.VerticalSliceCount = 2
	p.HorizontalSliceCount = 2
	p.VerticalOffset = 20
	p.VerticalFrequency = 10 * math.Asin(0.5)

	got := ApplySlices(src, p)

	// Pixel (15, 25) lies in row strip 1, which came from (5, 25) of the
	// vertically sliced image, which is (5, 25) of the input.  With the
	// passes swapped it would come from (15, 15) instead.
	want := src.RGBAAt(5, 25)
	swapped := src.RGBAAt(15, 15)
	if want == swapped {
		t.Fatal("test pattern cannot tell the orders apart")
	}
	if c := got.RGBAAt(15, 25); !closeRGBA(c, want, 1) {
		t.Errorf("got %v, want %v (swapped order gives %v)", c, want, swapped)
	}

	// the top of column strip 1 is uncovered after the vertical pass
	if c := got.RGBAAt(15, 5); c.A != 0 {
		t.Errorf("got %v, want transparent", c)
	}
}

func closeRGBA(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool { return abs(int(x)-int(y)) <= tol }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestStripBoundsTile(t *testing.T) {
	for _, size := range []int{1, 7, 100, 799, 800} {
		for n := 1; n <= 50; n++ {
			next := 0
			for i := range n {
				lo, hi := stripBounds(i, n, size)
				if lo != next {
					t.Fatalf("size %d, n %d, strip %d: starts at %d, want %d", size, n, i, lo, next)
				}
				if hi < lo {
					t.Fatalf("size %d, n %d, strip %d: negative width", size, n, i)
				}
				next = hi
			}
			if next != size {
				t.Fatalf("size %d, n %d: strips end at %d", size, n, next)
			}
		}
	}
}

func TestApplySlicesEmpty(t *testing.T) {
	p := DefaultParameters()
	p.VerticalSliceCount = 4
	s := NewSurface(0, 0)
	if got := ApplySlices(s, p); got != s {
		t.Error("empty surface not passed through")
	}
}
