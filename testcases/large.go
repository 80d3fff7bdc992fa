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

var largeCases = []TestCase{
	{
		Name:   "large_rectangle",
		Path:   rectangle(50, 50, 462, 462),
		Width:  512,
		Height: 512,
	},
	{
		Name:   "large_concentric_nonzero",
		Path:   concentricRectangles(256, 256, 200, 100),
		Width:  512,
		Height: 512,
	},
	{
		Name:   "large_concentric_evenodd",
		Path:   concentricRectangles(256, 256, 200, 100),
		Width:  512,
		Height: 512,
		Rule:   EvenOdd,
	},
	{
		Name:   "large_diamond",
		Path:   diamond(256, 256, 180),
		Width:  512,
		Height: 512,
	},
	{
		Name:   "large_grid",
		Path:   rectangleGrid(8, 8, 512, 512, 4),
		Width:  512,
		Height: 512,
	},
	{
		Name:   "large_clipped",
		Path:   rectangle(-100, 100, 612, 400),
		Width:  512,
		Height: 512,
	},
}

// concentricRectangles builds two nested squares with the same
// orientation.
func concentricRectangles(cx, cy, outer, inner float64) *path.Data {
	return ringShape(cx, cy, outer, inner)
}

func diamond(cx, cy, r float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(cx, cy-r)).
		LineTo(pt(cx+r, cy)).
		LineTo(pt(cx, cy+r)).
		LineTo(pt(cx-r, cy)).
		Close()
}

func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			p = addRectangle(p,
				float64(col)*cellW+gap, float64(row)*cellH+gap,
				float64(col+1)*cellW-gap, float64(row+1)*cellH-gap)
		}
	}
	return p
}
