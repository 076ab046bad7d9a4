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
	"slices"
	"testing"
)

func TestAberrationNoop(t *testing.T) {
	for _, mag := range []float64{0, -3} {
		s := testSurface(30, 20)
		orig := slices.Clone(s.img.Pix)
		p := DefaultParameters()
		p.ChromaticAberration = mag
		p.ChromaticAngle = 77
		ApplyAberration(s, s.Bounds(), p)
		if !slices.Equal(s.img.Pix, orig) {
			t.Errorf("magnitude %g: region changed", mag)
		}
	}
}

func TestAberrationDirection(t *testing.T) {
	s := NewSurface(20, 20)
	s.Fill(RGB{})
	s.SetRGBA(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	p := DefaultParameters()
	p.ChromaticAberration = 2
	p.ChromaticAngle = 0
	ApplyAberration(s, s.Bounds(), p)

	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{8, 10, color.RGBA{R: 255, A: 255}},
		{10, 10, color.RGBA{G: 255, A: 255}},
		{12, 10, color.RGBA{B: 255, A: 255}},
		{5, 5, color.RGBA{A: 255}},
	}
	for _, tc := range cases {
		if got := s.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if s.Mode != BlendSourceOver {
		t.Error("blend mode not restored")
	}
}

func TestAberrationRegion(t *testing.T) {
	s := testSurface(30, 30)
	orig := s.Clone()

	region := image.Rect(10, 10, 20, 20)
	p := DefaultParameters()
	p.ChromaticAberration = 3
	p.ChromaticAngle = 30
	ApplyAberration(s, region, p)

	// the shifted layers may reach up to the displacement beyond the
	// region, but not further
	reach := region.Inset(-4)
	for y := range 30 {
		for x := range 30 {
			if image.Pt(x, y).In(reach) {
				continue
			}
			if s.RGBAAt(x, y) != orig.RGBAAt(x, y) {
				t.Fatalf("pixel (%d, %d) far outside the region changed", x, y)
			}
		}
	}
}

func TestChannelMask(t *testing.T) {
	s := NewSurface(1, 1)
	s.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 40})
	for keep, want := range []color.RGBA{
		{R: 10, A: 40},
		{G: 20, A: 40},
		{B: 30, A: 40},
	} {
		if got := channelMask(s, keep).RGBAAt(0, 0); got != want {
			t.Errorf("channel %d: got %v, want %v", keep, got, want)
		}
	}
}
