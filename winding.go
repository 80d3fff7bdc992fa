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

	"seehuhn.de/go/glyphfield/bezier"
	"seehuhn.de/go/glyphfield/outline"
)

// WindingNumbers computes the winding number of the outline around the
// point offset (in outline units) away from each texel center.  Offsets
// of the form k*Scale/2, including zero, are safe: such sample points
// never coincide with outline vertices.
func (d *OutlineData) WindingNumbers(offset image.Point) *Grid[int] {
	w, h := d.cfg.Width, d.cfg.Height
	res := NewGrid[int](w, h)

	xs := d.centers(bezier.X)
	for i := range xs {
		xs[i] += offset.X
	}
	before := make([]int, w)
	after := make([]int, w)
	for j := range h {
		y := d.conv.PointFromTexel(j, bezier.Y, outline.Center) + offset.Y
		sweep(d.crossings(bezier.Y, y), xs, before, after, res.Row(j))
	}
	return res
}

// WindingNumber returns the winding number of the outline around the
// center of texel t.
func (d *OutlineData) WindingNumber(t image.Point) int {
	return d.o.WindingNumber(d.conv.TexelCenter(t))
}
