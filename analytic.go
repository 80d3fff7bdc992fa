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
	"image"
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
	"seehuhn.de/go/glyphfield/outline"
)

// Side identifies one of the four sides of a texel.
type Side int

const (
	Bottom Side = iota
	RightSide
	Top
	LeftSide
)

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case RightSide:
		return "right"
	case Top:
		return "top"
	case LeftSide:
		return "left"
	}
	return "invalid"
}

// AnalyticIntersection is a crossing of the outline with one side of a
// texel.
type AnalyticIntersection struct {
	Side Side

	// Position is the location of the crossing along the side, from 0 at
	// the left or bottom end to 1 at the right or top end.
	Position float64

	Curve outline.CurveRef
	T     float64

	Derivative vec.Vec2

	// Enters is true if the curve moves into the texel at the crossing.
	Enters bool

	// FillNormal is the unit normal of the curve pointing to the filled
	// side.
	FillNormal vec.Vec2
}

// AnalyticValue is the analytic encoding of one texel.
type AnalyticValue struct {
	Intersections []AnalyticIntersection

	// Parity counts the crossings of the rays from the texel center, in
	// the same order as [DistanceValue.Parity].
	Parity [4]int

	Inside bool
}

// AnalyticResult holds the analytic encoding of a raster.
type AnalyticResult struct {
	Values *Grid[AnalyticValue]

	// Reversed[c] is true if contour c appears to be oriented against the
	// fill convention.
	Reversed []bool
}

// AnalyticValues records, for every texel, the points where the outline
// crosses the texel boundary.  Points where the outline only touches a
// boundary line are omitted.
func (d *OutlineData) AnalyticValues() *AnalyticResult {
	w, h := d.cfg.Width, d.cfg.Height
	res := &AnalyticResult{
		Values:   NewGrid[AnalyticValue](w, h),
		Reversed: d.ReversedContours(),
	}
	span := float64(d.conv.TexelSpan())

	// horizontal texel boundaries: line j is the bottom of row j and the
	// top of row j-1
	for j := 0; j <= h; j++ {
		y := d.conv.PointFromTexel(j, bezier.Y, outline.Begin)
		for _, x := range d.crossings(bezier.Y, y) {
			if x.Winding == 0 {
				continue
			}
			i := d.conv.TexelFromPoint(x.Pos, bezier.X, outline.Begin)
			if i < 0 || i >= w {
				continue
			}
			left := float64(d.conv.PointFromTexel(i, bezier.X, outline.Begin))
			is := d.analyticIntersection(x, (x.Pos-left)/span, res.Reversed)
			if j < h {
				is.Side = Bottom
				is.Enters = x.Derivative.Y > 0
				v := res.Values.At(i, j)
				v.Intersections = append(v.Intersections, is)
			}
			if j > 0 {
				is.Side = Top
				is.Enters = x.Derivative.Y < 0
				v := res.Values.At(i, j-1)
				v.Intersections = append(v.Intersections, is)
			}
		}
	}

	// vertical texel boundaries
	for i := 0; i <= w; i++ {
		x0 := d.conv.PointFromTexel(i, bezier.X, outline.Begin)
		for _, x := range d.crossings(bezier.X, x0) {
			if x.Winding == 0 {
				continue
			}
			j := d.conv.TexelFromPoint(x.Pos, bezier.Y, outline.Begin)
			if j < 0 || j >= h {
				continue
			}
			bottom := float64(d.conv.PointFromTexel(j, bezier.Y, outline.Begin))
			is := d.analyticIntersection(x, (x.Pos-bottom)/span, res.Reversed)
			if i < w {
				is.Side = LeftSide
				is.Enters = x.Derivative.X > 0
				v := res.Values.At(i, j)
				v.Intersections = append(v.Intersections, is)
			}
			if i > 0 {
				is.Side = RightSide
				is.Enters = x.Derivative.X < 0
				v := res.Values.At(i-1, j)
				v.Intersections = append(v.Intersections, is)
			}
		}
	}

	// parity at the texel centers
	cx := d.centers(bezier.X)
	cy := d.centers(bezier.Y)
	n := max(w, h)
	before, after, winding := make([]int, n), make([]int, n), make([]int, n)
	windingGrid := NewGrid[int](w, h)
	for j, y := range cy {
		sweep(d.crossings(bezier.Y, y), cx, before, after, winding)
		copy(windingGrid.Row(j), winding[:w])
		for i := range w {
			v := res.Values.At(i, j)
			v.Parity[Left] = before[i]
			v.Parity[Right] = after[i]
		}
	}
	for i, x := range cx {
		sweep(d.crossings(bezier.X, x), cy, before, after, winding)
		for j := range h {
			v := res.Values.At(i, j)
			v.Parity[Below] = before[j]
			v.Parity[Above] = after[j]
			v.Inside = d.inside(*windingGrid.At(i, j), v.Parity)
		}
	}
	return res
}

func (d *OutlineData) analyticIntersection(x outline.Crossing, pos float64, reversed []bool) AnalyticIntersection {
	n := vec.Vec2{X: -x.Derivative.Y, Y: x.Derivative.X}
	if l := n.Length(); l > 0 {
		n = n.Mul(1 / l)
	}
	if d.o.Hints().ReverseFill != reversed[x.Curve.Contour] {
		n = n.Mul(-1)
	}
	return AnalyticIntersection{
		Position:   pos,
		Curve:      x.Curve,
		T:          x.T,
		Derivative: x.Derivative,
		FillNormal: n,
	}
}

// ReversedContours determines for every contour whether its orientation
// disagrees with the fill convention.  Every curve votes by testing, with
// the parity rule, whether the point just beside its midpoint on the
// expected fill side is inside the outline.  A contour is reported as
// reversed if more curves disagree than agree.
func (d *OutlineData) ReversedContours() []bool {
	res := make([]bool, d.o.NumContours())
	fillLeft := !d.o.Hints().ReverseFill
	half := d.conv.Scale() / 2
	offset := float64(2 * d.conv.Scale())
	for c := range res {
		agree, disagree := 0, 0
		for k := range d.o.Curves(c) {
			curve := &d.o.Curves(c)[k]
			p := curve.Evaluate(0.5)
			dv := curve.Derivative(0.5)
			l := dv.Length()
			if l == 0 {
				continue
			}
			n := vec.Vec2{X: -dv.Y, Y: dv.X}.Mul(offset / l)
			if !fillLeft {
				n = n.Mul(-1)
			}
			q := p.Add(n)
			probe := image.Point{X: roundTo(q.X, half), Y: roundTo(q.Y, half)}
			if outline.InsideParity(d.o.Parity(probe)) {
				agree++
			} else {
				disagree++
			}
		}
		res[c] = disagree > agree
		if res[c] {
			d.log.Debug("contour orientation disagrees with fill side",
				slog.Int("contour", c),
				slog.Int("agree", agree),
				slog.Int("disagree", disagree))
		}
	}
	return res
}

// roundTo rounds x to the nearest multiple of step.  Outline vertices
// never have coordinates which are multiples of scale/2.
func roundTo(x float64, step int) int {
	return step * int(math.Round(x/float64(step)))
}

// CorrectOrientation reverses all contours reported by
// [OutlineData.ReversedContours] and returns their indices.
func (d *OutlineData) CorrectOrientation() []int {
	var fixed []int
	for c, rev := range d.ReversedContours() {
		if rev {
			d.o.ReverseContour(c)
			fixed = append(fixed, c)
		}
	}
	if len(fixed) > 0 {
		d.log.Debug("contours reversed", slog.Any("contours", fixed))
	}
	return fixed
}
