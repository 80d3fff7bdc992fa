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

// Package glyphfield computes per-texel geometry for glyph outlines, as
// needed to build distance field and analytic coverage textures.
//
// A glyph outline is given in font units and converted to an integer
// outline space in which no vertex lies on a texel boundary or a texel
// center.  [OutlineData] samples this outline on a raster of texels and
// provides signed distances, winding numbers, per-texel intersections with
// the outline, lists of curves affecting blocks of texels, and area
// coverage.
//
// The sub-packages provide the building blocks: [seehuhn.de/go/glyphfield/poly]
// solves the polynomial equations, [seehuhn.de/go/glyphfield/bezier]
// represents the curves, [seehuhn.de/go/glyphfield/outline] builds the
// outlines, and [seehuhn.de/go/glyphfield/triangulate] splits point sets
// into regions of constant winding number.
package glyphfield

//go:generate go run ./testcases/export
