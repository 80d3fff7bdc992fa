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
	"slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/glyphfield/bezier"
	"seehuhn.de/go/glyphfield/outline"
)

// Affector is the part of a curve, between parameters T0 and T1, which
// lies inside a block of texels.
type Affector struct {
	Curve  outline.CurveRef
	T0, T1 float64
}

// BlockRect returns the outline space rectangle covered by the block of
// 2^lod x 2^lod texels with index block.
func (d *OutlineData) BlockRect(block image.Point, lod int) rect.Rect {
	lo := d.conv.TexelBottomLeft(block.Mul(1 << lod))
	hi := d.conv.TexelBottomLeft(block.Add(image.Point{X: 1, Y: 1}).Mul(1 << lod))
	return rect.Rect{
		LLx: float64(lo.X), LLy: float64(lo.Y),
		URx: float64(hi.X), URy: float64(hi.Y),
	}
}

// LocalizedAffectors returns the pieces of the outline which lie inside
// the given block.  With lod 0 the block is a single texel.
//
// Every curve is cut at its intersections with the four lines bounding
// the block, and the parameter intervals inside the block are returned.
// Adjacent intervals of the same curve are merged.
func (d *OutlineData) LocalizedAffectors(block image.Point, lod int) []Affector {
	r := d.BlockRect(block, lod)
	lines := [4]struct {
		coord bezier.Coordinate
		value int
	}{
		{bezier.X, int(r.LLx)},
		{bezier.X, int(r.URx)},
		{bezier.Y, int(r.LLy)},
		{bezier.Y, int(r.URy)},
	}

	var res []Affector
	var ts []float64
	var buf []bezier.Intersection
	for i := range d.o.NumCurves() {
		c := d.o.CurveAt(i)
		bb := c.BoundingBox()
		if bb.URx < r.LLx || bb.LLx > r.URx || bb.URy < r.LLy || bb.LLy > r.URy {
			continue
		}

		ts = append(ts[:0], 0, 1)
		for _, l := range lines {
			buf = c.IntersectLine(l.coord, l.value, false, buf[:0])
			for _, is := range buf {
				ts = append(ts, is.T)
			}
		}
		slices.Sort(ts)
		ts = slices.Compact(ts)

		ref := d.o.Ref(i)
		open := false
		for k := 1; k < len(ts); k++ {
			t0, t1 := ts[k-1], ts[k]
			m := c.Evaluate((t0 + t1) / 2)
			in := m.X >= r.LLx && m.X <= r.URx && m.Y >= r.LLy && m.Y <= r.URy
			switch {
			case in && open:
				res[len(res)-1].T1 = t1
			case in:
				res = append(res, Affector{Curve: ref, T0: t0, T1: t1})
			}
			open = in
		}
	}
	return res
}

// AffectorSegment returns the control points of the curve piece described
// by a.
func (d *OutlineData) AffectorSegment(a Affector) bezier.Segment {
	return d.o.Curve(a.Curve).Segment().SubSegment(a.T0, a.T1)
}
