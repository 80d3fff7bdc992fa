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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
)

// Sink receives the contours of a glyph outline, one curve at a time.
//
// Each call to PushCurve passes the control points of one curve of
// degree one, two or three, starting at the end point of the previous
// curve.  EndContour closes the current contour.
type Sink interface {
	PushCurve(pts ...image.Point)
	EndContour()
}

// Tag classifies the points of a TrueType style contour.
type Tag uint8

const (
	// OnCurve marks a point on the outline.
	OnCurve Tag = iota

	// Conic marks the control point of a quadratic curve.
	Conic

	// Cubic marks one of the two control points of a cubic curve.
	Cubic
)

// TaggedPoint is a point of a TrueType style contour.
type TaggedPoint struct {
	P   image.Point
	Tag Tag
}

// Builder assembles an [Outline] from curves given in font space.
// The zero value passes coordinates through unchanged.
type Builder struct {
	// Converter maps font space points to outline space.  If it is nil,
	// points are taken to be in outline space already.
	Converter *CoordinateConverter

	// CubicSplit, if set to 1, 2 or 4, replaces every cubic curve by that
	// many quadratic curves.
	CubicSplit int

	hints    Hints
	curves   []bezier.Curve
	contours []Contour

	// the contour under construction
	pending []bezier.Curve
	start   image.Point
	current image.Point
}

var _ Sink = (*Builder)(nil)

// SetHints records the rasterizer hints of the outline.
func (b *Builder) SetHints(h Hints) {
	b.hints = h
}

func (b *Builder) toOutline(p image.Point) image.Point {
	if b.Converter == nil {
		return p
	}
	return b.Converter.OutlinePoint(p)
}

func (b *Builder) snap(p vec.Vec2) image.Point {
	if b.Converter == nil {
		return image.Point{X: int(p.X + 0.5), Y: int(p.Y + 0.5)}
	}
	return b.Converter.Snap(p)
}

// PushCurve adds a curve to the current contour.  The points are given in
// font space.  Curves of length zero are ignored.
func (b *Builder) PushCurve(pts ...image.Point) {
	var buf [4]image.Point
	q := buf[:0]
	for _, p := range pts {
		q = append(q, b.toOutline(p))
	}
	b.push(q)
}

// push adds a curve given in outline space.
func (b *Builder) push(pts []image.Point) {
	if len(pts) < 2 || len(pts) > 4 {
		return
	}
	degenerate := true
	for _, p := range pts[1:] {
		if p != pts[0] {
			degenerate = false
			break
		}
	}
	if degenerate {
		return
	}

	if len(b.pending) == 0 {
		b.start = pts[0]
	} else if pts[0] != b.current {
		b.appendCurve(b.current, pts[0])
	}

	if len(pts) == 4 && b.CubicSplit > 0 {
		c, _ := bezier.New(pts...)
		if quads, ok := c.ApproximateCubicAsQuadratics(b.CubicSplit); ok {
			prev := pts[0]
			for i, q := range quads {
				end := pts[3]
				if i < len(quads)-1 {
					end = b.snap(q[2])
				}
				b.appendCurve(prev, b.snap(q[1]), end)
				prev = end
			}
			b.current = pts[3]
			return
		}
	}

	b.appendCurve(pts...)
	b.current = pts[len(pts)-1]
}

func (b *Builder) appendCurve(pts ...image.Point) {
	c, err := bezier.New(pts...)
	if err != nil || c.Degree() == 1 && c.Start() == c.End() {
		return
	}
	b.pending = append(b.pending, *c)
}

// EndContour closes the current contour, adding a line back to the start
// point if necessary.  Empty contours are dropped.
func (b *Builder) EndContour() {
	if len(b.pending) == 0 {
		return
	}
	if b.current != b.start {
		b.appendCurve(b.current, b.start)
	}

	id := len(b.contours)
	first := len(b.curves)
	for i := range b.pending {
		b.pending[i].ContourID = id
		b.pending[i].CurveID = i
	}
	b.curves = append(b.curves, b.pending...)
	b.contours = append(b.contours, Contour{First: first, Len: len(b.pending)})
	b.pending = b.pending[:0]
}

// AddTagged adds a closed contour given as a sequence of TrueType style
// tagged points in font space.  Between two consecutive conic control
// points an on-curve point is inserted at their midpoint.
func (b *Builder) AddTagged(pts []TaggedPoint) {
	n := len(pts)
	if n == 0 {
		return
	}

	q := make([]TaggedPoint, n)
	for i, p := range pts {
		q[i] = TaggedPoint{P: b.toOutline(p.P), Tag: p.Tag}
	}

	// Choose the start point the way FreeType does.
	var start image.Point
	var seq []TaggedPoint
	switch {
	case q[0].Tag == OnCurve:
		start, seq = q[0].P, q[1:]
	case q[0].Tag == Conic && q[n-1].Tag == OnCurve:
		start, seq = q[n-1].P, q[:n-1]
	case q[0].Tag == Conic:
		start, seq = midpoint(q[0].P, q[n-1].P), q
	default:
		k := 0
		for k < n && q[k].Tag != OnCurve {
			k++
		}
		if k == n {
			return
		}
		start = q[k].P
		seq = append(append([]TaggedPoint{}, q[k+1:]...), q[:k]...)
	}

	cur := start
	var ctrl [2]image.Point
	nCtrl := 0
	conic := false
	emit := func(end image.Point) {
		switch {
		case nCtrl == 0:
			b.push([]image.Point{cur, end})
		case conic || nCtrl == 1:
			b.push([]image.Point{cur, ctrl[0], end})
		default:
			b.push([]image.Point{cur, ctrl[0], ctrl[1], end})
		}
		cur = end
		nCtrl = 0
	}

	for _, p := range seq {
		switch p.Tag {
		case OnCurve:
			emit(p.P)
		case Conic:
			if nCtrl > 0 && conic {
				emit(midpoint(ctrl[0], p.P))
			}
			ctrl[0] = p.P
			nCtrl = 1
			conic = true
		case Cubic:
			if nCtrl == 2 {
				// more than two cubic control points in a row
				ctrl[0] = ctrl[1]
				nCtrl = 1
			}
			if conic {
				nCtrl = 0
				conic = false
			}
			ctrl[nCtrl] = p.P
			nCtrl++
		}
	}
	emit(start)
	b.EndContour()
}

func midpoint(a, b image.Point) image.Point {
	return image.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Outline closes any open contour and returns the assembled outline.
// The builder is reset and can be used to build another outline.
func (b *Builder) Outline() *Outline {
	b.EndContour()
	o := &Outline{
		curves:   b.curves,
		contours: b.contours,
		hints:    b.hints,
		sides:    make([][2]vertexSide, len(b.curves)),
	}
	for c := range o.contours {
		o.computeSides(c)
	}

	b.curves = nil
	b.contours = nil
	b.hints = Hints{}
	return o
}
