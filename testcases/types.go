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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// UnitsPerTexel is the number of font units per texel used when the test
// cases are converted to glyph outlines.
const UnitsPerTexel = 64

// TestCase defines a single outline test.
type TestCase struct {
	Name   string        // lowercase a-z and _ only
	Path   *path.Data    // the geometry, in texel units
	Width  int           // raster width in texels
	Height int           // raster height in texels
	Rule   FillRule      // fill rule
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// FontMatrix returns the map from path coordinates to font units: the
// CTM of the test case followed by scaling with UnitsPerTexel.
func (tc TestCase) FontMatrix() matrix.Matrix {
	m := tc.CTM
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	for i := range m {
		m[i] *= UnitsPerTexel
	}
	return m
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
