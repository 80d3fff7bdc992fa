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

// Grid is a two-dimensional array of per-texel values.  Row 0 is the
// bottom row of the raster.
type Grid[T any] struct {
	Width, Height int
	Data          []T // row-major, len Width*Height
}

// NewGrid allocates a grid of the given size.
func NewGrid[T any](width, height int) *Grid[T] {
	return &Grid[T]{
		Width:  width,
		Height: height,
		Data:   make([]T, width*height),
	}
}

// At returns a pointer to the value of texel (x, y).
func (g *Grid[T]) At(x, y int) *T {
	return &g.Data[y*g.Width+x]
}

// Row returns the values of row y.
func (g *Grid[T]) Row(y int) []T {
	return g.Data[y*g.Width : (y+1)*g.Width]
}
