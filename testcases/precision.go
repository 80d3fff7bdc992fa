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

// precisionCases probe sub-texel positions and coordinates which are
// large compared to the shape.
var precisionCases = []TestCase{
	{
		Name:   "subtexel_offset_00",
		Path:   offsetRectangle(20, 20, 24, 24, 0.0),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subtexel_offset_25",
		Path:   offsetRectangle(20, 20, 24, 24, 0.25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subtexel_offset_50",
		Path:   offsetRectangle(20, 20, 24, 24, 0.5),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subtexel_offset_75",
		Path:   offsetRectangle(20, 20, 24, 24, 0.75),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "thin_sliver",
		Path:   rectangle(5, 10, 59, 10.25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "thin_wedge",
		Path:   triangle(4, 30, 60, 31, 4, 32),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "large_coord_centered",
		Path:   largeOffsetRectangle(1000, 1000, 20),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "texel_aligned_vertices",
		Path:   triangle(8, 8, 56, 8, 32, 56),
		Width:  64,
		Height: 64,
	},
}

func offsetRectangle(x1, y1, w, h, offset float64) *path.Data {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// largeOffsetRectangle builds a square which is described far away from
// the origin and then moved back onto the raster.
func largeOffsetRectangle(cx, cy, size float64) *path.Data {
	tx := 32 - cx
	ty := 32 - cy
	return rectangle(cx-size/2+tx, cy-size/2+ty, cx+size/2+tx, cy+size/2+ty)
}
