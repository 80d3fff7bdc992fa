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

// Package bezier implements Bezier curves of degree one to three with
// integer control points.
//
// The polynomial coefficients of a [Curve] are exact integers, so that
// intersections with axis-parallel lines can be classified exactly at the
// curve end points.
package bezier

import (
	"errors"
	"image"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/poly"
)

// Coordinate selects one of the two axes.
type Coordinate int

const (
	X Coordinate = iota
	Y
)

// Other returns the perpendicular coordinate.
func (c Coordinate) Other() Coordinate {
	return 1 - c
}

// Of returns the selected coordinate of p.
func (c Coordinate) Of(p image.Point) int {
	if c == X {
		return p.X
	}
	return p.Y
}

// OfVec returns the selected coordinate of v.
func (c Coordinate) OfVec(v vec.Vec2) float64 {
	if c == X {
		return v.X
	}
	return v.Y
}

func (c Coordinate) String() string {
	if c == X {
		return "x"
	}
	return "y"
}

// ErrDegree is returned by [New] if the number of control points is not
// 2, 3 or 4.
var ErrDegree = errors.New("bezier: need 2, 3 or 4 control points")

// CriticalPoint is a point on a curve where some derivative vanishes.
type CriticalPoint struct {
	T float64
	P vec.Vec2
}

// Curve is a Bezier curve with integer control points.
//
// A Curve is immutable except for [Curve.Reverse] and the identifiers.
type Curve struct {
	// ContourID and CurveID identify the curve within its outline.
	ContourID, CurveID int

	pts [4]image.Point
	n   int // number of control points

	// coef[c][k] is the coefficient of t^k of coordinate c
	coef [2][4]int64

	bbox     rect.Rect
	extremal [2][]CriticalPoint
	maxMin   []CriticalPoint
	d0, d1   vec.Vec2
}

// New creates a curve from 2, 3 or 4 control points.  A quadratic curve
// whose control points are collinear is simplified to a line.
func New(pts ...image.Point) (*Curve, error) {
	if len(pts) < 2 || len(pts) > 4 {
		return nil, ErrDegree
	}
	if len(pts) == 3 && cross(pts[1].Sub(pts[0]), pts[2].Sub(pts[0])) == 0 {
		pts = []image.Point{pts[0], pts[2]}
	}

	c := &Curve{n: len(pts)}
	copy(c.pts[:], pts)
	c.computeCoefficients()
	c.computeCritical()
	return c, nil
}

func cross(a, b image.Point) int64 {
	return int64(a.X)*int64(b.Y) - int64(a.Y)*int64(b.X)
}

func (c *Curve) computeCoefficients() {
	for axis := range 2 {
		var p [4]int64
		for i := range c.n {
			p[i] = int64(Coordinate(axis).Of(c.pts[i]))
		}
		k := &c.coef[axis]
		*k = [4]int64{}
		switch c.n {
		case 2:
			k[0] = p[0]
			k[1] = p[1] - p[0]
		case 3:
			k[0] = p[0]
			k[1] = 2 * (p[1] - p[0])
			k[2] = p[0] - 2*p[1] + p[2]
		case 4:
			k[0] = p[0]
			k[1] = 3 * (p[1] - p[0])
			k[2] = 3 * (p[0] - 2*p[1] + p[2])
			k[3] = p[3] - 3*p[2] + 3*p[1] - p[0]
		}
	}
	c.d0 = c.Derivative(0)
	c.d1 = c.Derivative(1)
}

func (c *Curve) computeCritical() {
	var buf [3]poly.Root
	var d [3]int64
	n := c.n - 1

	for axis := range 2 {
		k := c.coef[axis]
		for i := range n {
			d[i] = int64(i+1) * k[i+1]
		}
		c.extremal[axis] = c.criticalPoints(d[:n], buf[:0], c.extremal[axis][:0])
	}

	c.maxMin = c.maxMin[:0]
	for _, sign := range []int64{1, -1} {
		for i := range n {
			d[i] = int64(i+1) * (c.coef[X][i+1] + sign*c.coef[Y][i+1])
		}
		c.maxMin = c.criticalPoints(d[:n], buf[:0], c.maxMin)
	}
	slices.SortFunc(c.maxMin, func(a, b CriticalPoint) int {
		return cmpFloat(a.T, b.T)
	})

	first := true
	extend := func(p vec.Vec2) {
		if first {
			c.bbox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			first = false
			return
		}
		c.bbox.LLx = min(c.bbox.LLx, p.X)
		c.bbox.LLy = min(c.bbox.LLy, p.Y)
		c.bbox.URx = max(c.bbox.URx, p.X)
		c.bbox.URy = max(c.bbox.URy, p.Y)
	}
	extend(toVec(c.Start()))
	extend(toVec(c.End()))
	for axis := range 2 {
		for _, e := range c.extremal[axis] {
			extend(e.P)
		}
	}
}

func (c *Curve) criticalPoints(d []int64, buf []poly.Root, dst []CriticalPoint) []CriticalPoint {
	for _, r := range poly.Solve(d, poly.Interior, buf) {
		dst = append(dst, CriticalPoint{T: r.T, P: c.Evaluate(r.T)})
	}
	return dst
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toVec(p image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// Degree returns the polynomial degree of the curve.
func (c *Curve) Degree() int {
	return c.n - 1
}

// Points returns the control points of the curve.
func (c *Curve) Points() []image.Point {
	return c.pts[:c.n]
}

// Start returns the first control point.
func (c *Curve) Start() image.Point {
	return c.pts[0]
}

// End returns the last control point.
func (c *Curve) End() image.Point {
	return c.pts[c.n-1]
}

// Coefficients returns the polynomial coefficients of the given coordinate.
// Entry k is the coefficient of t^k.
func (c *Curve) Coefficients(coord Coordinate) [4]int64 {
	return c.coef[coord]
}

// Flat reports whether the given coordinate is constant along the curve.
func (c *Curve) Flat(coord Coordinate) bool {
	k := c.coef[coord]
	return k[1] == 0 && k[2] == 0 && k[3] == 0
}

// Evaluate returns the point at parameter t, using de Casteljau's
// algorithm.
func (c *Curve) Evaluate(t float64) vec.Vec2 {
	var p [4]vec.Vec2
	for i := range c.n {
		p[i] = toVec(c.pts[i])
	}
	return casteljau(p[:c.n], t)
}

func casteljau(p []vec.Vec2, t float64) vec.Vec2 {
	for n := len(p) - 1; n > 0; n-- {
		for i := range n {
			p[i] = p[i].Mul(1 - t).Add(p[i+1].Mul(t))
		}
	}
	return p[0]
}

// Derivative returns the derivative with respect to t.
func (c *Curve) Derivative(t float64) vec.Vec2 {
	var res [2]float64
	for axis := range 2 {
		k := c.coef[axis]
		res[axis] = float64(k[1]) + t*(2*float64(k[2])+t*3*float64(k[3]))
	}
	return vec.Vec2{X: res[0], Y: res[1]}
}

// StartDerivative returns the derivative at t=0.
func (c *Curve) StartDerivative() vec.Vec2 {
	return c.d0
}

// EndDerivative returns the derivative at t=1.
func (c *Curve) EndDerivative() vec.Vec2 {
	return c.d1
}

// BoundingBox returns the smallest axis-aligned rectangle containing the
// curve.
func (c *Curve) BoundingBox() rect.Rect {
	return c.bbox
}

// ExtremalPoints returns the points in the interior of the curve where the
// derivative of the given coordinate vanishes, ordered by parameter.
func (c *Curve) ExtremalPoints(coord Coordinate) []CriticalPoint {
	return c.extremal[coord]
}

// MaximalMinimalPoints returns the points in the interior of the curve
// where the derivative of x+y or of x-y vanishes, ordered by parameter.
// These are the candidates for local extrema of the L1 distance to a
// point.
func (c *Curve) MaximalMinimalPoints() []CriticalPoint {
	return c.maxMin
}

// Intersection is a point where a curve meets an axis-parallel line.
type Intersection struct {
	T float64

	// Pos is the coordinate of the intersection along the line.
	Pos float64

	Multiplicity int
	Derivative   vec.Vec2
}

// IntersectLine finds the points where the curve meets the line on which
// coordinate coord equals value.  Roots at t=0 and t=1 are reported only if
// includeEndpoints is set; their multiplicity is exact.  A curve which lies
// entirely on the line has no intersections.
func (c *Curve) IntersectLine(coord Coordinate, value int, includeEndpoints bool, dst []Intersection) []Intersection {
	k := c.coef[coord]
	k[0] -= int64(value)
	if k == [4]int64{} {
		return dst
	}
	n := c.n

	if includeEndpoints && k[0] == 0 {
		m := 1
		for m < n && k[m] == 0 {
			m++
		}
		dst = append(dst, c.intersection(coord, 0, m))
	}

	var buf [3]poly.Root
	for _, r := range poly.Solve(k[:n], poly.Interior, buf[:0]) {
		dst = append(dst, c.intersection(coord, r.T, r.Multiplicity))
	}

	if includeEndpoints {
		if m := multiplicityAtOne(k[:n]); m > 0 {
			dst = append(dst, c.intersection(coord, 1, m))
		}
	}
	return dst
}

func (c *Curve) intersection(coord Coordinate, t float64, mult int) Intersection {
	other := coord.Other()
	var pos float64
	switch t {
	case 0:
		pos = float64(other.Of(c.Start()))
	case 1:
		pos = float64(other.Of(c.End()))
	default:
		pos = other.OfVec(c.Evaluate(t))
	}
	return Intersection{
		T:            t,
		Pos:          pos,
		Multiplicity: mult,
		Derivative:   c.Derivative(t),
	}
}

// multiplicityAtOne returns the multiplicity of the root t=1 of a non-zero
// polynomial.
func multiplicityAtOne(k []int64) int {
	var a [4]int64
	copy(a[:], k)
	deg := len(k) - 1
	for deg > 0 && a[deg] == 0 {
		deg--
	}
	m := 0
	for deg > 0 {
		var s int64
		for _, x := range a[:deg+1] {
			s += x
		}
		if s != 0 {
			break
		}
		var b [4]int64
		b[deg-1] = a[deg]
		for i := deg - 1; i >= 1; i-- {
			b[i-1] = a[i] + b[i]
		}
		a = b
		deg--
		m++
	}
	return m
}

// Reverse changes the direction of the curve in place.  Cached parameter
// values are mapped from t to 1-t.
func (c *Curve) Reverse() {
	slices.Reverse(c.pts[:c.n])
	c.computeCoefficients()

	for axis := range 2 {
		reverseCritical(c.extremal[axis])
	}
	reverseCritical(c.maxMin)
}

func reverseCritical(cp []CriticalPoint) {
	slices.Reverse(cp)
	for i := range cp {
		cp[i].T = 1 - cp[i].T
	}
}

// Segment returns the control points of the curve as a float segment.
func (c *Curve) Segment() Segment {
	seg := make(Segment, c.n)
	for i := range c.n {
		seg[i] = toVec(c.pts[i])
	}
	return seg
}

// Split divides the curve at t=0.5.
func (c *Curve) Split() (Segment, Segment) {
	return c.Segment().SplitAt(0.5)
}

// SplitAt divides the curve at parameter t into two curves of the same
// degree.
func (c *Curve) SplitAt(t float64) (Segment, Segment) {
	return c.Segment().SplitAt(t)
}

// ApproximateCubicAsQuadratics replaces a cubic curve by n quadratic
// curves, where n is 1, 2 or 4.  The cubic is subdivided uniformly and each
// piece is replaced by the quadratic with the same end points whose
// control point is (3(p1+p2) - (p0+p3))/4.  The second return value is
// false if the curve is not a cubic or n is not supported.
func (c *Curve) ApproximateCubicAsQuadratics(n int) ([]Segment, bool) {
	if c.n != 4 || (n != 1 && n != 2 && n != 4) {
		return nil, false
	}

	res := make([]Segment, 0, n)
	whole := c.Segment()
	for i := range n {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		p := whole.SubSegment(t0, t1)
		q := p[1].Add(p[2]).Mul(3).Sub(p[0].Add(p[3])).Mul(0.25)
		res = append(res, Segment{p[0], q, p[3]})
	}
	return res, true
}

// SignedArea returns the contribution of the curve to the signed area of a
// closed contour, computed as (1/2) ∫ x dy - y dx.  The sum over a closed
// contour is positive for counter-clockwise contours.
func (c *Curve) SignedArea() float64 {
	return float64(c.AreaNumerator()) / 120
}

// AreaNumerator returns 120 times [Curve.SignedArea] as an exact integer.
func (c *Curve) AreaNumerator() int64 {
	a := c.coef[X]
	b := c.coef[Y]
	var s int64
	for i := range c.n {
		for j := range c.n {
			if i+j == 0 || i == j {
				continue
			}
			s += a[i] * b[j] * int64(j-i) * (60 / int64(i+j))
		}
	}
	return s
}
