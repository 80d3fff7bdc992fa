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

// Package outline represents glyph outlines as closed rings of Bezier
// curves in an integer coordinate space.
//
// Outlines are created using a [Builder].  The crossings of an outline with
// axis-parallel lines are computed exactly at curve end points: a vertex
// on the line counts as a crossing if the outline passes from one side of
// the line to the other there, and as a double touch point otherwise.
package outline

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
)

// Hints carry information about the outline which the font rasterizer
// reported along with the contours.
type Hints struct {
	// EvenOdd indicates that the outline is meant to be filled using the
	// even-odd rule.
	EvenOdd bool

	// ReverseFill indicates that the contours are oriented clockwise
	// rather than counter-clockwise.
	ReverseFill bool

	// UnreliableOrientation indicates that the reported orientation may
	// be wrong.
	UnreliableOrientation bool
}

// Contour is a range of curves within an [Outline].
type Contour struct {
	First, Len int
}

// CurveRef identifies a curve by contour index and index within the
// contour.
type CurveRef struct {
	Contour, Curve int
}

// Outline is a set of closed contours.  All curves are stored in a single
// slice; contour c consists of the curves
// First, ..., First+Len-1 of this slice.
type Outline struct {
	curves   []bezier.Curve
	contours []Contour
	hints    Hints

	// sides[i][c] describes the start vertex of curve i with respect to
	// coordinate c
	sides [][2]vertexSide
}

type vertexSide struct {
	before, after int8
}

// Hints returns the hints set when the outline was built.
func (o *Outline) Hints() Hints {
	return o.hints
}

// NumContours returns the number of contours.
func (o *Outline) NumContours() int {
	return len(o.contours)
}

// Contour returns the curve range of contour c.
func (o *Outline) Contour(c int) Contour {
	return o.contours[c]
}

// NumCurves returns the total number of curves.
func (o *Outline) NumCurves() int {
	return len(o.curves)
}

// CurveAt returns the curve with global index i.
func (o *Outline) CurveAt(i int) *bezier.Curve {
	return &o.curves[i]
}

// Curves returns the curves of contour c.
func (o *Outline) Curves(c int) []bezier.Curve {
	cc := o.contours[c]
	return o.curves[cc.First : cc.First+cc.Len]
}

// Curve returns the referenced curve.
func (o *Outline) Curve(ref CurveRef) *bezier.Curve {
	return &o.curves[o.Index(ref)]
}

// Index converts a curve reference into a global curve index.
func (o *Outline) Index(ref CurveRef) int {
	return o.contours[ref.Contour].First + ref.Curve
}

// Ref converts a global curve index into a curve reference.
func (o *Outline) Ref(i int) CurveRef {
	c := o.curves[i].ContourID
	return CurveRef{Contour: c, Curve: i - o.contours[c].First}
}

// Next returns the curve following ref in its contour.
func (o *Outline) Next(ref CurveRef) CurveRef {
	ref.Curve = (ref.Curve + 1) % o.contours[ref.Contour].Len
	return ref
}

// Prev returns the curve preceding ref in its contour.
func (o *Outline) Prev(ref CurveRef) CurveRef {
	n := o.contours[ref.Contour].Len
	ref.Curve = (ref.Curve + n - 1) % n
	return ref
}

// Orientation returns +1 if contour c is oriented counter-clockwise, -1 if
// it is clockwise, and 0 if it encloses no area.
func (o *Outline) Orientation(c int) int {
	var a int64
	for i := range o.Curves(c) {
		a += o.Curves(c)[i].AreaNumerator()
	}
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return 0
}

// SignedArea returns the signed area enclosed by contour c.
func (o *Outline) SignedArea(c int) float64 {
	var a float64
	for i := range o.Curves(c) {
		a += o.Curves(c)[i].SignedArea()
	}
	return a
}

// ReverseContour reverses the direction of contour c.  The order of the
// curves is reversed and every curve is reversed in place.
func (o *Outline) ReverseContour(c int) {
	curves := o.Curves(c)
	slices.Reverse(curves)
	for i := range curves {
		curves[i].Reverse()
		curves[i].CurveID = i
	}
	o.computeSides(c)
}

func (o *Outline) computeSides(c int) {
	cc := o.contours[c]
	for k := range cc.Len {
		i := cc.First + k
		for axis := range 2 {
			o.sides[i][axis] = o.vertexSides(CurveRef{Contour: c, Curve: k}, bezier.Coordinate(axis))
		}
	}
}

// vertexSides determines on which side of the line coord = const through
// the start vertex of ref the outline lies just before and just after
// the vertex.  Flat curves are skipped in both directions.
func (o *Outline) vertexSides(ref CurveRef, coord bezier.Coordinate) vertexSide {
	n := o.contours[ref.Contour].Len

	var s vertexSide
	r := ref
	for range n {
		k := o.Curve(r).Coefficients(coord)
		if v := sideAfterStart(k); v != 0 {
			s.after = v
			break
		}
		r = o.Next(r)
	}

	r = o.Prev(ref)
	for range n {
		k := o.Curve(r).Coefficients(coord)
		if v := sideBeforeEnd(k); v != 0 {
			s.before = v
			break
		}
		r = o.Prev(r)
	}
	return s
}

// sideAfterStart returns the sign of f(eps) - f(0).
func sideAfterStart(k [4]int64) int8 {
	for _, x := range k[1:] {
		if x != 0 {
			return sign(x)
		}
	}
	return 0
}

// sideBeforeEnd returns the sign of f(1-eps) - f(1).
func sideBeforeEnd(k [4]int64) int8 {
	d1 := k[1] + 2*k[2] + 3*k[3]
	d2 := 2*k[2] + 6*k[3]
	d3 := 6 * k[3]
	switch {
	case d1 != 0:
		return -sign(d1)
	case d2 != 0:
		return sign(d2)
	case d3 != 0:
		return -sign(d3)
	}
	return 0
}

func sign(x int64) int8 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Crossing is an intersection of the outline with an axis-parallel line.
type Crossing struct {
	Curve CurveRef
	T     float64

	// Pos is the position of the crossing along the line.
	Pos float64

	// Multiplicity is odd if the outline crosses the line and even if it
	// only touches the line.
	Multiplicity int

	// Winding is +1 if the outline crosses the line in the direction of
	// increasing coordinate, -1 if it crosses in the opposite direction,
	// and 0 if it only touches the line.
	Winding int

	Derivative vec.Vec2
}

// Crossings appends the intersections of the outline with the line on
// which coordinate coord equals value to dst, ordered by position along
// the line.  Vertices on the line are reported once, at the start of the
// curve leaving the vertex.
func (o *Outline) Crossings(coord bezier.Coordinate, value int, dst []Crossing) []Crossing {
	start := len(dst)
	for i := range o.curves {
		dst = o.curveCrossings(i, coord, value, dst)
	}
	slices.SortFunc(dst[start:], func(a, b Crossing) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		}
		return 0
	})
	return dst
}

// CurveCrossings appends the crossings of a single curve with the given
// line to dst.  The same vertex rules as for [Outline.Crossings] apply.
func (o *Outline) CurveCrossings(ref CurveRef, coord bezier.Coordinate, value int, dst []Crossing) []Crossing {
	return o.curveCrossings(o.Index(ref), coord, value, dst)
}

func (o *Outline) curveCrossings(i int, coord bezier.Coordinate, value int, dst []Crossing) []Crossing {
	c := &o.curves[i]
	bbox := c.BoundingBox()
	lo, hi := bbox.LLx, bbox.URx
	if coord == bezier.Y {
		lo, hi = bbox.LLy, bbox.URy
	}
	v := float64(value)
	if v < lo || v > hi {
		return dst
	}

	ref := o.Ref(i)
	if coord.Of(c.Start()) == value && !c.Flat(coord) {
		s := o.sides[i][coord]
		x := Crossing{
			Curve:        ref,
			T:            0,
			Pos:          float64(coord.Other().Of(c.Start())),
			Multiplicity: 2,
			Derivative:   c.StartDerivative(),
		}
		if s.before != s.after && s.before != 0 && s.after != 0 {
			x.Multiplicity = 1
			x.Winding = int(s.after)
		}
		dst = append(dst, x)
	}

	var buf [3]bezier.Intersection
	for _, is := range c.IntersectLine(coord, value, false, buf[:0]) {
		x := Crossing{
			Curve:        ref,
			T:            is.T,
			Pos:          is.Pos,
			Multiplicity: is.Multiplicity,
			Derivative:   is.Derivative,
		}
		if is.Multiplicity%2 == 1 {
			x.Winding = crossingDirection(c, coord, value, is)
		}
		dst = append(dst, x)
	}
	return dst
}

// crossingDirection returns the direction in which the curve passes
// through the line at an intersection of odd multiplicity.
func crossingDirection(c *bezier.Curve, coord bezier.Coordinate, value int, is bezier.Intersection) int {
	d := coord.OfVec(is.Derivative)
	if d > 0 {
		return 1
	} else if d < 0 {
		return -1
	}

	if is.Multiplicity == 3 {
		return int(sign(c.Coefficients(coord)[3]))
	}
	const h = 1e-6
	a := coord.OfVec(c.Evaluate(max(0, is.T-h)))
	b := coord.OfVec(c.Evaluate(min(1, is.T+h)))
	if b > a {
		return 1
	}
	return -1
}

// WindingNumber returns the winding number of the outline around p.  The
// result is unspecified if p lies on the outline.
func (o *Outline) WindingNumber(p image.Point) int {
	var buf [16]Crossing
	w := 0
	for _, x := range o.Crossings(bezier.Y, p.Y, buf[:0]) {
		if x.Pos > float64(p.X) {
			w += x.Winding
		}
	}
	return w
}

// Parity returns the number of crossings of the outline with the four
// axis-parallel rays from p, in the order left, right, below, above.
// Each crossing is counted with its multiplicity.
func (o *Outline) Parity(p image.Point) [4]int {
	var res [4]int
	var buf [16]Crossing
	for _, x := range o.Crossings(bezier.Y, p.Y, buf[:0]) {
		if x.Pos < float64(p.X) {
			res[0] += x.Multiplicity
		} else if x.Pos > float64(p.X) {
			res[1] += x.Multiplicity
		}
	}
	for _, x := range o.Crossings(bezier.X, p.X, buf[:0]) {
		if x.Pos < float64(p.Y) {
			res[2] += x.Multiplicity
		} else if x.Pos > float64(p.Y) {
			res[3] += x.Multiplicity
		}
	}
	return res
}

// InsideParity applies the majority rule to a set of directional crossing
// counts: the point is inside if at least two of the counts are odd.
func InsideParity(counts [4]int) bool {
	odd := 0
	for _, n := range counts {
		if n%2 != 0 {
			odd++
		}
	}
	return odd >= 2
}

// BoundingBox returns the smallest rectangle containing all curves, as
// integer outline coordinates rounded outwards.
func (o *Outline) BoundingBox() image.Rectangle {
	if len(o.curves) == 0 {
		return image.Rectangle{}
	}
	b := o.curves[0].BoundingBox()
	for i := range o.curves[1:] {
		cb := o.curves[i+1].BoundingBox()
		b.LLx = min(b.LLx, cb.LLx)
		b.LLy = min(b.LLy, cb.LLy)
		b.URx = max(b.URx, cb.URx)
		b.URy = max(b.URy, cb.URy)
	}
	return image.Rect(
		int(math.Floor(b.LLx)), int(math.Floor(b.LLy)),
		int(math.Ceil(b.URx)), int(math.Ceil(b.URy)),
	)
}
