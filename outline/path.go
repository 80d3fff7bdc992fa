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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// AddPath sends the subpaths of p to s.  The matrix m maps path
// coordinates to font space, where coordinates are rounded to integers.
// Every subpath is treated as closed.
func AddPath(s Sink, p *path.Data, m matrix.Matrix) {
	toFont := func(v vec.Vec2) image.Point {
		x := m[0]*v.X + m[2]*v.Y + m[4]
		y := m[1]*v.X + m[3]*v.Y + m[5]
		return image.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
	}

	var current, start image.Point
	open := false
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				s.EndContour()
			}
			current = toFont(p.Coords[coordIdx])
			start = current
			open = true
			coordIdx++

		case path.CmdLineTo:
			open = true
			next := toFont(p.Coords[coordIdx])
			s.PushCurve(current, next)
			current = next
			coordIdx++

		case path.CmdQuadTo:
			open = true
			c := toFont(p.Coords[coordIdx])
			next := toFont(p.Coords[coordIdx+1])
			s.PushCurve(current, c, next)
			current = next
			coordIdx += 2

		case path.CmdCubeTo:
			open = true
			c1 := toFont(p.Coords[coordIdx])
			c2 := toFont(p.Coords[coordIdx+1])
			next := toFont(p.Coords[coordIdx+2])
			s.PushCurve(current, c1, c2, next)
			current = next
			coordIdx += 3

		case path.CmdClose:
			if open {
				s.EndContour()
				open = false
			}
			current = start
		}
	}
	if open {
		s.EndContour()
	}
}
