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

package outline

import (
	"image"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
)

func polygon(pts ...image.Point) *Outline {
	b := &Builder{}
	for i := range pts {
		b.PushCurve(pts[i], pts[(i+1)%len(pts)])
	}
	return b.Outline()
}

func square(x0, y0, x1, y1 int) []image.Point {
	return []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestSquareWinding(t *testing.T) {
	o := polygon(square(1, 1, 41, 41)...)
	if o.NumContours() != 1 || o.NumCurves() != 4 {
		t.Fatalf("got %d contours, %d curves", o.NumContours(), o.NumCurves())
	}
	if o.Orientation(0) != 1 {
		t.Errorf("orientation %d", o.Orientation(0))
	}

	inside := image.Pt(20, 20)
	outside := []image.Point{{0, 0}, {50, 20}, {20, 50}, {-5, 20}, {20, -5}}
	if w := o.WindingNumber(inside); w != 1 {
		t.Errorf("inside winding %d", w)
	}
	if !InsideParity(o.Parity(inside)) {
		t.Errorf("inside parity %v", o.Parity(inside))
	}
	for _, p := range outside {
		if w := o.WindingNumber(p); w != 0 {
			t.Errorf("%v: winding %d", p, w)
		}
		if InsideParity(o.Parity(p)) {
			t.Errorf("%v: parity %v", p, o.Parity(p))
		}
	}

	o.ReverseContour(0)
	if o.Orientation(0) != -1 {
		t.Errorf("reversed orientation %d", o.Orientation(0))
	}
	if w := o.WindingNumber(inside); w != -1 {
		t.Errorf("reversed winding %d", w)
	}
	for i, c := range o.Curves(0) {
		if c.CurveID != i {
			t.Errorf("curve %d has id %d", i, c.CurveID)
		}
		next := o.Curve(o.Next(CurveRef{Curve: i}))
		if c.End() != next.Start() {
			t.Errorf("contour broken after curve %d", i)
		}
	}
}

func TestVertexCrossings(t *testing.T) {
	// The horizontal line through the left and right vertices of a diamond
	// crosses the outline there.  The line through the top vertex only
	// touches it.
	o := polygon(image.Pt(1, 21), image.Pt(21, 1), image.Pt(41, 21), image.Pt(21, 41))

	top := o.Crossings(bezier.Y, 41, nil)
	if len(top) != 1 || top[0].Multiplicity != 2 || top[0].Winding != 0 {
		t.Errorf("top vertex: %+v", top)
	}

	mid := o.Crossings(bezier.Y, 21, nil)
	if len(mid) != 2 {
		t.Fatalf("middle: %+v", mid)
	}
	if mid[0].Multiplicity != 1 || mid[0].Winding != -1 || mid[0].Pos != 1 {
		t.Errorf("left vertex: %+v", mid[0])
	}
	if mid[1].Multiplicity != 1 || mid[1].Winding != 1 || mid[1].Pos != 41 {
		t.Errorf("right vertex: %+v", mid[1])
	}

	// A horizontal edge on the query line: the outline comes from below
	// and leaves upwards, so this is a single crossing.
	step := polygon(image.Pt(1, 1), image.Pt(21, 1), image.Pt(21, 11), image.Pt(31, 11), image.Pt(31, 21), image.Pt(1, 21))
	xs := step.Crossings(bezier.Y, 11, nil)
	n := 0
	for _, x := range xs {
		n += x.Multiplicity
	}
	if n != 2 {
		t.Errorf("step: %+v", xs)
	}
	if w := step.WindingNumber(image.Pt(10, 11)); w != 1 {
		t.Errorf("winding left of the step: %d", w)
	}
	if w := step.WindingNumber(image.Pt(35, 11)); w != 0 {
		t.Errorf("winding right of the step: %d", w)
	}
}

// sunday computes the winding number of a polygon around p.
func sunday(poly []image.Point, p image.Point) (int, bool) {
	w := 0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := int64(b.X-a.X)*int64(p.Y-a.Y) - int64(p.X-a.X)*int64(b.Y-a.Y)
		if cross == 0 && min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
			min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y) {
			return 0, false
		}
		if a.Y <= p.Y {
			if b.Y > p.Y && cross > 0 {
				w++
			}
		} else if b.Y <= p.Y && cross < 0 {
			w--
		}
	}
	return w, true
}

func TestWindingRandomPolygons(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 200 {
		n := 3 + rng.IntN(8)
		poly := make([]image.Point, n)
		for i := range poly {
			// odd coordinates, so that vertices never coincide with the
			// query points below
			poly[i] = image.Pt(4*rng.IntN(8)+1, 4*rng.IntN(8)+1)
		}
		o := polygon(poly...)

		for y := -1; y <= 33; y++ {
			for x := -2; x <= 34; x += 2 {
				p := image.Pt(x, y)
				want, ok := sunday(poly, p)
				if !ok {
					continue
				}
				if got := o.WindingNumber(p); got != want {
					t.Fatalf("%v at %v: got %d, want %d", poly, p, got, want)
				}
				par := o.Parity(p)
				for _, n := range par {
					if n&1 != want&1 {
						t.Fatalf("%v at %v: parity %v, winding %d", poly, p, par, want)
					}
				}
			}
		}
	}
}

func TestBuilderClosesContours(t *testing.T) {
	b := &Builder{}
	b.PushCurve(image.Pt(1, 1), image.Pt(9, 1))
	b.PushCurve(image.Pt(9, 1), image.Pt(9, 1)) // zero length
	b.PushCurve(image.Pt(9, 1), image.Pt(9, 9))
	b.EndContour()
	b.EndContour() // empty contours are dropped
	o := b.Outline()

	if o.NumContours() != 1 || o.NumCurves() != 3 {
		t.Fatalf("got %d contours with %d curves", o.NumContours(), o.NumCurves())
	}
	last := o.CurveAt(2)
	if last.Start() != image.Pt(9, 9) || last.End() != image.Pt(1, 1) {
		t.Errorf("closing line %v", last.Points())
	}
	for i := range o.NumCurves() {
		ref := o.Ref(i)
		if o.Index(ref) != i || o.Prev(o.Next(ref)) != ref {
			t.Errorf("curve %d: inconsistent reference %v", i, ref)
		}
	}
}

func TestAddTagged(t *testing.T) {
	conv, err := NewCoordinateConverter(4, 1, 1, image.Pt(10, 10), image.Point{})
	if err != nil {
		t.Fatal(err)
	}
	b := &Builder{Converter: conv}

	// four conic control points: an approximate circle made of four
	// quadratic curves through the implied midpoints
	b.AddTagged([]TaggedPoint{
		{image.Pt(0, 0), Conic},
		{image.Pt(10, 0), Conic},
		{image.Pt(10, 10), Conic},
		{image.Pt(0, 10), Conic},
	})
	// on-curve start with a cubic
	b.AddTagged([]TaggedPoint{
		{image.Pt(20, 0), OnCurve},
		{image.Pt(25, 10), Cubic},
		{image.Pt(35, 10), Cubic},
		{image.Pt(40, 0), OnCurve},
	})
	o := b.Outline()

	if o.NumContours() != 2 {
		t.Fatalf("%d contours", o.NumContours())
	}
	circle := o.Curves(0)
	if len(circle) != 4 {
		t.Fatalf("%d curves in the circle", len(circle))
	}
	for _, c := range circle {
		if c.Degree() != 2 {
			t.Errorf("degree %d", c.Degree())
		}
	}
	// the contour starts at the midpoint of the first and last point
	if got, want := circle[0].Start(), conv.OutlinePoint(image.Pt(0, 5)); got != want {
		t.Errorf("start %v, want %v", got, want)
	}
	if o.WindingNumber(conv.OutlinePoint(image.Pt(5, 5)).Add(image.Pt(1, 1))) == 0 {
		t.Error("center of circle not inside")
	}

	second := o.Curves(1)
	if len(second) != 2 || second[0].Degree() != 3 || second[1].Degree() != 1 {
		t.Errorf("cubic contour has %d curves", len(second))
	}
}

func TestCubicSplit(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		b := &Builder{CubicSplit: n}
		b.PushCurve(image.Pt(1, 1), image.Pt(1, 81), image.Pt(81, 81), image.Pt(81, 1))
		o := b.Outline()
		curves := o.Curves(0)
		if len(curves) != n+1 {
			t.Fatalf("n=%d: %d curves", n, len(curves))
		}
		for i := range n {
			if curves[i].Degree() != 2 {
				t.Errorf("n=%d: curve %d has degree %d", n, i, curves[i].Degree())
			}
			if curves[i].End() != curves[i+1].Start() {
				t.Errorf("n=%d: gap after curve %d", n, i)
			}
		}
	}
}

func TestAddPath(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 0}).
		QuadTo(vec.Vec2{X: 1.5, Y: 0.5}, vec.Vec2{X: 1, Y: 1}).
		CubeTo(vec.Vec2{X: 0.7, Y: 1.2}, vec.Vec2{X: 0.3, Y: 1.2}, vec.Vec2{X: 0, Y: 1}).
		Close().
		MoveTo(vec.Vec2{X: 3, Y: 3}).
		LineTo(vec.Vec2{X: 4, Y: 3}).
		LineTo(vec.Vec2{X: 4, Y: 4})

	b := &Builder{}
	AddPath(b, p, matrix.Scale(64, 64))
	o := b.Outline()
	if o.NumContours() != 2 {
		t.Fatalf("%d contours", o.NumContours())
	}
	degrees := []int{1, 2, 3, 1}
	for i, c := range o.Curves(0) {
		if c.Degree() != degrees[i] {
			t.Errorf("curve %d: degree %d", i, c.Degree())
		}
	}
	if got := o.CurveAt(1).End(); got != image.Pt(64, 64) {
		t.Errorf("quadratic ends at %v", got)
	}
	if len(o.Curves(1)) != 3 {
		t.Errorf("open subpath has %d curves after closing", len(o.Curves(1)))
	}
}

func TestConverter(t *testing.T) {
	bad := []struct {
		scale, ts, io int
		size          image.Point
		want          error
	}{
		{3, 1, 1, image.Pt(1, 1), ErrScale},
		{0, 1, 1, image.Pt(1, 1), ErrScale},
		{4, 0, 1, image.Pt(1, 1), ErrTexelSize},
		{4, 1, 2, image.Pt(1, 1), ErrInternalOffset},
		{4, 1, 4, image.Pt(1, 1), ErrInternalOffset},
		{4, 1, 1, image.Pt(0, 1), ErrRasterSize},
	}
	for _, tc := range bad {
		_, err := NewCoordinateConverter(tc.scale, tc.ts, tc.io, tc.size, image.Point{})
		if err != tc.want {
			t.Errorf("%+v: got %v", tc, err)
		}
	}

	c, err := NewCoordinateConverter(4, 64, 1, image.Pt(16, 16), image.Pt(-64, -128))
	if err != nil {
		t.Fatal(err)
	}
	if got := c.OutlinePoint(image.Pt(10, -3)); got != image.Pt(41, -11) {
		t.Errorf("OutlinePoint: %v", got)
	}
	if got := c.FontPoint(vec.Vec2{X: 41, Y: -11}); got != (vec.Vec2{X: 10, Y: -3}) {
		t.Errorf("FontPoint: %v", got)
	}
	if got := c.PointFromTexel(0, bezier.X, Begin); got != -256 {
		t.Errorf("begin of texel 0: %d", got)
	}
	if got := c.PointFromTexel(2, bezier.Y, Center); got != 4*(-128+128+32) {
		t.Errorf("center of texel 2: %d", got)
	}
	for tx := -2; tx < 18; tx++ {
		begin := c.PointFromTexel(tx, bezier.X, Begin)
		center := c.PointFromTexel(tx, bezier.X, Center)
		if got := c.TexelFromPoint(float64(begin)+0.5, bezier.X, Begin); got != tx {
			t.Errorf("texel of %d: %d", begin, got)
		}
		if got := c.TexelFromPoint(float64(center), bezier.X, Center); got != tx {
			t.Errorf("center texel of %d: %d", center, got)
		}
		if got := c.TexelFromPoint(float64(center)-0.5, bezier.X, Center); got != tx-1 {
			t.Errorf("center texel before %d: %d", center, got)
		}
	}
	if c.TexelTopRight(image.Pt(3, 4)) != c.TexelBottomLeft(image.Pt(4, 5)) {
		t.Error("texel corners inconsistent")
	}
	n := c.NormalizedGlyphCoordinate(vec.Vec2{X: float64(c.TexelCenter(image.Pt(8, 0)).X), Y: float64(c.TexelBottomLeft(image.Pt(0, 16)).Y)})
	if n.X != 8.5/16 || n.Y != 1 {
		t.Errorf("normalized coordinate %v", n)
	}

	// outline points and snapped points avoid texel lines and centers
	for _, v := range []float64{-300.2, -17, 0, 0.9, 2, 13.5, 1000.49} {
		s := c.Snap(vec.Vec2{X: v, Y: v})
		if mod(s.X-1, 2) != 0 || abs(float64(s.X)-v) > 1 {
			t.Errorf("Snap(%g) = %d", v, s.X)
		}
		if mod(s.X, 2) == 0 {
			t.Errorf("Snap(%g) = %d lies on a texel line", v, s.X)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
