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

var complexCases = []TestCase{
	{
		Name:   "mixed_lines_curves",
		Path:   mixedLinesCurves(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "glyph_like",
		Path:   glyphLikeShape(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "glyph_like_evenodd",
		Path:   glyphLikeShape(),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "spiral_polygon",
		Path:   spiralPolygon(32, 32, 4, 28, 3),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "zigzag",
		Path:   zigzag(6, 32, 58, 10, 12),
		Width:  64,
		Height: 64,
	},
}

// mixedLinesCurves builds a path combining line segments and Bezier curves.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 50)).
		LineTo(pt(20, 30)).
		QuadTo(pt(32, 10), pt(44, 30)).
		LineTo(pt(54, 50)).
		CubeTo(pt(48, 60), pt(16, 60), pt(10, 50)).
		Close()
}

// glyphLikeShape builds a shape resembling a simplified lowercase 'a':
// a bowl with a counter, joined to a stem by a single contour.
func glyphLikeShape() *path.Data {
	cx, cy := 32.0, 28.0
	r := 18.0
	k := r * kappa
	ir := 8.0
	ik := ir * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy+k), pt(cx+k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx-k, cy+r), pt(cx-r, cy+k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy-k), pt(cx-k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx+k, cy-r), pt(cx+r, cy-k), pt(cx+r, cy)).
		LineTo(pt(cx+r, 54)).
		LineTo(pt(cx+r-6, 54)).
		LineTo(pt(cx+r-6, cy)).
		LineTo(pt(cx+ir, cy)).
		CubeTo(pt(cx+ir, cy-ik), pt(cx+ik, cy-ir), pt(cx, cy-ir)).
		CubeTo(pt(cx-ik, cy-ir), pt(cx-ir, cy-ik), pt(cx-ir, cy)).
		CubeTo(pt(cx-ir, cy+ik), pt(cx-ik, cy+ir), pt(cx, cy+ir)).
		CubeTo(pt(cx+ik, cy+ir), pt(cx+ir, cy+ik), pt(cx+ir, cy)).
		Close()
}

// spiralPolygon builds an Archimedean spiral which is closed by a straight
// line back to its start, crossing its own turns.
func spiralPolygon(cx, cy, rMin, rMax float64, turns float64) *path.Data {
	steps := max(int(turns*32), 8)
	p := (&path.Data{}).MoveTo(pt(cx+rMin, cy))
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		angle := f * turns * 2 * math.Pi
		r := rMin + f*(rMax-rMin)
		p = p.LineTo(pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return p.Close()
}

// zigzag builds a band whose upper and lower edges are parallel zigzag
// lines.
func zigzag(x1, cy, x2, amplitude float64, n int) *path.Data {
	const thickness = 4.0
	dx := (x2 - x1) / float64(n)
	y := func(i int) float64 {
		if i%2 == 0 {
			return cy - amplitude/2
		}
		return cy + amplitude/2
	}

	p := (&path.Data{}).MoveTo(pt(x1, y(0)))
	for i := 1; i <= n; i++ {
		p = p.LineTo(pt(x1+float64(i)*dx, y(i)))
	}
	for i := n; i >= 0; i-- {
		p = p.LineTo(pt(x1+float64(i)*dx, y(i)+thickness))
	}
	return p.Close()
}
