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
	"math"

	"seehuhn.de/go/geom/path"
)

var fillCases = []TestCase{
	{
		Name:   "triangle_nonzero",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "triangle_evenodd",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "star_nonzero",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "star_evenodd",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 44, 44),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "rectangle_clockwise",
		Path:   rectangleCW(10, 10, 44, 44),
		Width:  64,
		Height: 64,
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	var pts [5]struct{ x, y float64 }
	for i := range pts {
		angle := float64(i)*2*math.Pi/5 + math.Pi/2
		pts[i].x = cx + r*math.Cos(angle)
		pts[i].y = cy + r*math.Sin(angle)
	}

	// 0 -> 2 -> 4 -> 1 -> 3 -> 0
	p := (&path.Data{}).MoveTo(pt(pts[0].x, pts[0].y))
	for _, i := range []int{2, 4, 1, 3} {
		p = p.LineTo(pt(pts[i].x, pts[i].y))
	}
	return p.Close()
}

// rectangle builds a counter-clockwise rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// rectangleCW builds a clockwise rectangular path.
func rectangleCW(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x1, y2)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x2, y1)).
		Close()
}
