// seehuhn.de/go/glyphfield - outline geometry for glyph textures
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

package glyphfield

import (
	"cmp"
	"image"
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
)

// Coverage computes, for every texel, the fraction of the texel area
// inside the outline, using the given fill rule.
func (d *OutlineData) Coverage(rule FillRule) *Grid[float32] {
	return d.coverage(rule, smallPathThreshold)
}

func (d *OutlineData) coverage(rule FillRule, threshold int) *Grid[float32] {
	w, h := d.cfg.Width, d.cfg.Height
	res := NewGrid[float32](w, h)

	span := float64(d.conv.TexelSpan())
	origin := d.conv.TexelBottomLeft(image.Point{})
	r := newRasterizer(w, h)
	r.smallPathThreshold = threshold
	r.m = matrix.Matrix{
		1 / span, 0,
		0, 1 / span,
		-float64(origin.X) / span, -float64(origin.Y) / span,
	}

	r.collectEdges(d.o.NumCurves(), d.o.CurveAt)
	rows := r.fill(d.evenOdd(rule), func(y, xMin int, coverage []float32) {
		copy(res.Row(y)[xMin:], coverage)
	})
	d.log.Debug("coverage",
		slog.Int("edges", len(r.edges)),
		slog.Int("rows", rows))
	return res
}

// edge is a line segment in texel coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// rasterizer computes anti-aliased coverage values of closed curve
// rings.  Internal buffers grow as needed but never shrink.
type rasterizer struct {
	// m maps outline space to texel space.
	m matrix.Matrix

	width, height int

	// flatness is the curve approximation tolerance in texels.
	flatness float64

	// smallPathThreshold is the maximum bounding box area (in texels) for
	// using 2D buffers (Approach A).  Larger outlines use the active edge
	// list (Approach B).
	smallPathThreshold int

	cover       []float32 // cover change per texel; reused as output
	area        []float32 // area within texel
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool

	bboxFirst              bool
	xMin, xMax, yMin, yMax float64
}

func newRasterizer(width, height int) *rasterizer {
	return &rasterizer{
		m:                  matrix.Identity,
		width:              width,
		height:             height,
		flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// collectEdges transforms the curves to texel space and flattens them
// into the edge list.  Consecutive curves of a contour share their end
// points, so the rings are closed without extra edges.
func (r *rasterizer) collectEdges(n int, curve func(int) *bezier.Curve) {
	r.edges = r.edges[:0]
	r.bboxFirst = true

	var q [4]vec.Vec2
	for i := range n {
		c := curve(i)
		pts := c.Points()
		for k, p := range pts {
			q[k] = r.transform(p)
		}
		switch len(pts) {
		case 2:
			r.addEdge(q[0], q[1])
		case 3:
			r.flattenQuadratic(q[0], q[1], q[2], r.addEdge)
		case 4:
			r.flattenCubic(q[0], q[1], q[2], q[3], r.addEdge)
		}
	}
}

// transform maps an outline space point to texel space.
func (r *rasterizer) transform(p image.Point) vec.Vec2 {
	x, y := float64(p.X), float64(p.Y)
	return vec.Vec2{
		X: r.m[0]*x + r.m[2]*y + r.m[4],
		Y: r.m[1]*x + r.m[3]*y + r.m[5],
	}
}

// flattenQuadratic flattens a quadratic Bézier curve given in texel
// space.
func (r *rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the distance to the chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if l := e.Length(); l > r.flatness {
		n = int(math.Ceil(math.Sqrt(l / r.flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic flattens a cubic Bézier curve given in texel space, using
// Wang's formula for the number of segments.
func (r *rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if r.bboxFirst {
		r.xMin, r.xMax = min(p0.X, p1.X), max(p0.X, p1.X)
		r.yMin, r.yMax = min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		r.bboxFirst = false
	} else {
		r.xMin = min(r.xMin, p0.X, p1.X)
		r.xMax = max(r.xMax, p0.X, p1.X)
		r.yMin = min(r.yMin, p0.Y, p1.Y)
		r.yMax = max(r.yMax, p0.Y, p1.Y)
	}
}

// fill integrates the collected edges and calls emit for every row with
// non-zero coverage.  The coverage slice is only valid during the call.
// The return value is the number of rows emitted.
func (r *rasterizer) fill(evenOdd bool, emit func(y, xMin int, coverage []float32)) int {
	if len(r.edges) == 0 {
		return 0
	}
	xMin := max(int(math.Floor(r.xMin)), 0)
	xMax := min(int(math.Floor(r.xMax))+1, r.width)
	yMin := max(int(math.Floor(r.yMin)), 0)
	yMax := min(int(math.Floor(r.yMax))+1, r.height)
	if xMin >= xMax || yMin >= yMax {
		return 0
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		return r.fillSmall(xMin, xMax, yMin, yMax, evenOdd, emit)
	}
	return r.fillLarge(xMin, xMax, yMin, yMax, evenOdd, emit)
}

// Coverage accumulation model:
//
// For each texel, we track two values:
//   cover: signed vertical extent of edges crossing this texel column
//   area:  the same, weighted by the fraction of the texel to the right
//          of the crossing
//
// Final coverage is computed by integrate:
//   texel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]

// accumulateEdge adds the contribution of e within row y to the cover and
// area buffers, which are indexed by x - bboxXMin.
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yLo := max(float64(y), min(e.y0, e.y1))
	yHi := min(float64(y+1), max(e.y0, e.y1))
	if yHi <= yLo {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yLo-e.y0)
	xRight := e.x0 + e.dxdy*(yHi-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		v := sign * float32(yHi-yLo)
		cover[0] += v
		area[0] += v
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		accumulateSegment(e, yLo, yHi, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), yLo)
		hi := min(max(ya, yb), yHi)
		if hi <= lo {
			continue
		}
		accumulateSegment(e, lo, hi, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSegment handles the part of an edge between yLo and yHi,
// which lies within texel column pix.
func accumulateSegment(e *edge, yLo, yHi float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	v := sign * float32(yHi-yLo)
	if pix < bboxXMin {
		cover[0] += v
		area[0] += v
		return
	}
	if pix >= bboxXMax {
		return
	}

	xMid := e.x0 + e.dxdy*((yLo+yHi)/2-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += v
	area[idx] += v * float32(1-xFrac)
}

// integrate converts accumulated cover and area values to coverage.  The
// cover slice is overwritten with the result.
func integrate(cover, area []float32, evenOdd bool) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if evenOdd {
			m := raw - 2*float32(int(raw/2))
			raw = 1 - abs32(1-m)
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmall rasterizes using 2D buffers (Approach A).
func (r *rasterizer) fillSmall(xMin, xMax, yMin, yMax int, evenOdd bool, emit func(y, xMin int, coverage []float32)) int {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	rows := 0
	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrate(coverage, r.area[off:off+width], evenOdd)
		if trimmed, k := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+k, trimmed)
			rows++
		}
	}
	return rows
}

// fillLarge rasterizes using 1D buffers and an active edge list
// (Approach B).
func (r *rasterizer) fillLarge(xMin, xMax, yMin, yMax int, evenOdd bool, emit func(y, xMin int, coverage []float32)) int {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	rows := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
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
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, evenOdd)
		if trimmed, k := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+k, trimmed)
			rows++
		}
	}
	return rows
}

const (
	// defaultFlatness is the curve flattening tolerance in texels.
	defaultFlatness = 0.05

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in texels) for
	// using 2D buffers.
	smallPathThreshold = 65536
)
