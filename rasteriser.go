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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// Rasteriser turns filled paths into per-pixel coverage values in [0, 1].
// A Surface owns one Rasteriser and reuses it for every fill, so the
// internal buffers grow to the largest shape seen and then stay put.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in device pixels.  Coordinates must be
	// integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// smallPathThreshold is the largest bounding box area (in pixels)
	// which is rasterised with whole-shape 2D buffers.  Larger shapes
	// are processed one scanline at a time using an active edge list.
	smallPathThreshold int

	cover     []float32 // cover change per pixel, reused as output
	area      []float32 // area contribution within the pixel
	edges     []edge
	activeIdx []int
	rowXMax   []int // per row of a small path: -1 if no edge touched it

	bboxEmpty      bool
	bboxX0, bboxX1 float64
	bboxY0, bboxY1 float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with
// the identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:                matrix.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset prepares the Rasteriser for a new clip rectangle and restores the
// default transformation and flatness.  Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMax = r.rowXMax[:0]
}

// FillNonZero fills p using the nonzero winding rule.  Coverage is passed
// to emit one row at a time; the slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// linear applies the 2×2 part of the CTM to v.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic splits the quadratic Bézier p0, p1, p2 into line
// segments which deviate from the curve by at most r.Flatness in device
// space.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic splits a cubic Bézier into line segments, choosing the
// segment count with Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// collectPathEdges converts p into device space edges and returns the
// integer bounding box of the edges, clamped to the clip rectangle.
func (r *Rasteriser) collectPathEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bboxX0)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxX1))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxY0)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxY1))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms the user space segment p0→p1 to device space and
// appends it to the edge list.  Horizontal edges do not contribute to
// coverage and are dropped.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.bboxX0, r.bboxX1 = min(x0, x1), max(x0, x1)
		r.bboxY0, r.bboxY1 = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.bboxX0 = min(r.bboxX0, x0, x1)
	r.bboxX1 = max(r.bboxX1, x0, x1)
	r.bboxY0 = min(r.bboxY0, y0, y1)
	r.bboxY1 = max(r.bboxY1, y0, y1)
}

// Coverage accumulation
//
// Every edge crossing pixel (x, y) adds its signed vertical extent to
// cover[x] and the part of that extent which lies left of the crossing to
// area[x].  Scanning a row from left to right, the coverage of pixel x is
// the running sum of cover[0..x-1] plus area[x].  The sign is +1 for edges
// going down and -1 for edges going up, so that clamping |sum| to [0, 1]
// implements the nonzero winding rule.

// accumulateEdge adds the contribution of e within scanline y to the
// cover and area buffers, which are indexed by x - bboxXMin.  Edges
// passing left of the buffer are folded into the first pixel.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	eyMin, eyMax := e.yRange()
	yTop := max(float64(y), eyMin)
	yBot := min(float64(y+1), eyMax)
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xa, xb)))
	pixRight := int(math.Floor(max(xa, xb)))

	switch {
	case pixRight < bboxXMin:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case pixLeft >= bboxXMax:
		return
	case pixLeft == pixRight:
		r.accumulateSegment(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), yTop)
		segBot := min(max(ya, yb), yBot)
		if segBot <= segTop {
			continue
		}
		r.accumulateSegment(e, segTop, segBot, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSegment handles the part of e between yTop and yBot, which
// lies within the single pixel column pix.
func (r *Rasteriser) accumulateSegment(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= bboxXMax {
		return
	}

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	frac := xMid - float64(pix)
	i := pix - bboxXMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrateNonZero turns the accumulated cover and area values of one row
// into coverage, in place in cover.
func integrateNonZero(cover, area []float32) {
	var sum float32
	for i := range cover {
		v := sum + area[i]
		sum += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// midColumn returns the buffer index of the pixel where e crosses the
// middle of scanline y, or -1 if e does not touch the scanline.
func midColumn(e *edge, y, xMin, xMax int) int {
	eyMin, eyMax := e.yRange()
	yTop := max(float64(y), eyMin)
	yBot := min(float64(y+1), eyMax)
	if yBot <= yTop {
		return -1
	}
	x := int(math.Floor(e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)))
	return min(max(x, xMin), xMax-1) - xMin
}

// fillSmallPath accumulates all edges into a 2D buffer covering the
// bounding box, then integrates and emits the rows.
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMax {
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		eyMin, eyMax := e.yRange()
		y0 := max(int(math.Floor(eyMin)), yMin)
		y1 := min(int(math.Floor(eyMax))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowXMax[row] = max(r.rowXMax[row], midColumn(e, y, xMin, xMax))
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateNonZero(coverage, r.area[off:off+width])
		if trimmed, k := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+k, trimmed)
		}
	}
}

// fillLargePath processes one scanline at a time, keeping a list of the
// edges which intersect the current scanline.
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < float64(y+1) {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if _, eyMax := e.yRange(); eyMax <= float64(y) {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if midColumn(e, y, xMin, xMax) >= 0 {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, k := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+k, trimmed)
		}
	}
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which still contributes coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the largest bounding box area (in pixels) for
	// whole-shape 2D buffers.
	smallPathThreshold = 65536
)
