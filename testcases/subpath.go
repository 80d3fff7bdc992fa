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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

var subpathCases = []TestCase{
	{
		Name:   "two_triangles",
		Path:   twoTriangles(16, 32, 48, 32, 12),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "overlapping_rect_nonzero",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "overlapping_rect_evenodd",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "ring_shape",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "ring_shape_hole",
		Path:   ringShapeHole(32, 32, 25, 12),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "multiple_rings",
		Path:   multipleRings(64, 64),
		Width:  128,
		Height: 128,
		Rule:   EvenOdd,
	},
	{
		Name:   "many_small_shapes",
		Path:   manySmallShapes(8, 8),
		Width:  128,
		Height: 128,
	},
}

// twoTriangles builds two disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	p := &path.Data{}
	for _, c := range [2][2]float64{{cx1, cy1}, {cx2, cy2}} {
		p = p.
			MoveTo(pt(c[0], c[1]-size)).
			LineTo(pt(c[0]+size, c[1]+size)).
			LineTo(pt(c[0]-size, c[1]+size)).
			Close()
	}
	return p
}

// overlappingRectangles builds two rectangles with the same orientation.
func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) *path.Data {
	return addRectangle(addRectangle(&path.Data{}, x1a, y1a, x2a, y2a), x1b, y1b, x2b, y2b)
}

// ringShape builds two nested squares with the same orientation.
func ringShape(cx, cy, outerSize, innerSize float64) *path.Data {
	p := addRectangle(&path.Data{}, cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize)
	return addRectangle(p, cx-innerSize, cy-innerSize, cx+innerSize, cy+innerSize)
}

// ringShapeHole builds two nested squares where the inner one is
// oriented clockwise, so that it is a hole under the nonzero rule.
func ringShapeHole(cx, cy, outerSize, innerSize float64) *path.Data {
	p := addRectangle(&path.Data{}, cx-outerSize, cy-outerSize, cx+outerSize, cy+outerSize)
	return p.
		MoveTo(pt(cx-innerSize, cy-innerSize)).
		LineTo(pt(cx-innerSize, cy+innerSize)).
		LineTo(pt(cx+innerSize, cy+innerSize)).
		LineTo(pt(cx+innerSize, cy-innerSize)).
		Close()
}

func multipleRings(cx, cy float64) *path.Data {
	rings := []struct{ cx, cy, outer, inner float64 }{
		{cx - 30, cy - 30, 20, 10},
		{cx + 30, cy - 30, 20, 10},
		{cx, cy + 30, 20, 10},
	}
	p := &path.Data{}
	for _, r := range rings {
		p = addRectangle(p, r.cx-r.outer, r.cy-r.outer, r.cx+r.outer, r.cy+r.outer)
		p = addRectangle(p, r.cx-r.inner, r.cy-r.inner, r.cx+r.inner, r.cy+r.inner)
	}
	return p
}

func manySmallShapes(rows, cols int) *path.Data {
	const size = 5.0
	const spacing = 14.0

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			cx := 10.0 + float64(col)*spacing
			cy := 10.0 + float64(row)*spacing
			p = p.
				MoveTo(pt(cx, cy-size)).
				LineTo(pt(cx+size, cy+size)).
				LineTo(pt(cx-size, cy+size)).
				Close()
		}
	}
	return p
}

// addRectangle appends a counter-clockwise rectangle to p.
func addRectangle(p *path.Data, x1, y1, x2, y2 float64) *path.Data {
	return p.
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}
