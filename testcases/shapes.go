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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var fillShapes = []Shape{
	{
		Name:   "triangle",
		Path:   polygon(pt(10, 50), pt(32, 10), pt(54, 50)),
		Width:  64,
		Height: 64,
		Area:   880,
	},
	{
		Name:   "rectangle_aligned",
		Path:   polygon(pt(10, 10), pt(54, 10), pt(54, 54), pt(10, 54)),
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
	{
		Name:   "rectangle_fractional",
		Path:   polygon(pt(10.25, 10.5), pt(53.75, 10.5), pt(53.75, 40.1), pt(10.25, 40.1)),
		Width:  64,
		Height: 64,
		Area:   43.5 * 29.6,
	},
	{
		Name:   "rectangle_clockwise",
		Path:   polygon(pt(10, 10), pt(10, 54), pt(54, 54), pt(54, 10)),
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
	{
		Name:   "star",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "clipped",
		Path:   polygon(pt(-20, -20), pt(40, -20), pt(40, 40), pt(-20, 40)),
		Width:  64,
		Height: 64,
		Area:   40 * 40,
	},
	{
		Name:   "wide_strip",
		Path:   polygon(pt(0, 100.5), pt(1000, 100.5), pt(1000, 102), pt(0, 102)),
		Width:  1000,
		Height: 200,
		Area:   1500,
	},
	{
		Name:   "two_squares",
		Path:   twoSquares(),
		Width:  64,
		Height: 64,
		Area:   2 * 20 * 20,
	},
}

var curveShapes = []Shape{
	// The region between a parabola and its chord has 2/3 of the area of
	// the control triangle.
	{
		Name:   "quadratic",
		Path:   (&path.Data{}).MoveTo(pt(10, 50)).QuadTo(pt(32, 10), pt(54, 50)).Close(),
		Width:  64,
		Height: 64,
		Area:   880 * 2 / 3.0,
	},
	{
		Name:   "cubic",
		Path:   (&path.Data{}).MoveTo(pt(10, 50)).CubeTo(pt(20, 10), pt(44, 10), pt(54, 50)).Close(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 25),
		Width:  64,
		Height: 64,
		Area:   math.Pi * 25 * 25,
	},
	{
		Name:   "speck",
		Path:   circle(5.3, 5.7, 1.2),
		Width:  12,
		Height: 12,
	},
}

var ctmShapes = []Shape{
	{
		Name:   "scaled_square",
		Path:   polygon(pt(5, 5), pt(15, 5), pt(15, 15), pt(5, 15)),
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{2, 0, 0, 2, 0, 0},
		Area:   400,
	},
	{
		Name:   "translated_triangle",
		Path:   polygon(pt(0, 40), pt(22, 0), pt(44, 40)),
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{1, 0, 0, 1, 10, 10},
		Area:   880,
	},
	{
		Name:   "rotated_square",
		Path:   polygon(pt(-10, -10), pt(10, -10), pt(10, 10), pt(-10, 10)),
		Width:  64,
		Height: 64,
		CTM: matrix.Matrix{
			math.Cos(math.Pi / 6), math.Sin(math.Pi / 6),
			-math.Sin(math.Pi / 6), math.Cos(math.Pi / 6),
			32, 32,
		},
		Area: 400,
	},
}

// polygon builds a closed path through the given points.
func polygon(first vec.Vec2, rest ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(first)
	for _, v := range rest {
		p = p.LineTo(v)
	}
	return p.Close()
}

// fivePointStar builds a self-intersecting five-point star.  Under the
// non-zero rule the central pentagon is filled.
func fivePointStar(cx, cy, r float64) *path.Data {
	var pts []vec.Vec2
	for i := range 5 {
		angle := float64(2*i)*2*math.Pi/5 - math.Pi/2
		pts = append(pts, pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return polygon(pts[0], pts[1:]...)
}

// twoSquares builds two separate subpaths.
func twoSquares() *path.Data {
	p := polygon(pt(5, 5), pt(25, 5), pt(25, 25), pt(5, 25))
	q := polygon(pt(35, 35), pt(55, 35), pt(55, 55), pt(35, 55))
	p.Cmds = append(p.Cmds, q.Cmds...)
	p.Coords = append(p.Coords, q.Coords...)
	return p
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) *path.Data {
	k := r * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}
