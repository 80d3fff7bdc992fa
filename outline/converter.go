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
	"errors"
	"image"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
)

// Errors returned by [NewCoordinateConverter].
var (
	ErrScale          = errors.New("outline: scale must be positive and even")
	ErrTexelSize      = errors.New("outline: texel size must be positive")
	ErrInternalOffset = errors.New("outline: internal offset must avoid texel lines and centers")
	ErrRasterSize     = errors.New("outline: raster size must be positive")
)

// Anchor selects a reference point within a texel.
type Anchor int

const (
	// Begin is the lower (left or bottom) boundary of a texel.
	Begin Anchor = iota

	// Center is the texel center.
	Center
)

// CoordinateConverter maps between font space, outline space and texel
// coordinates.
//
// A font space point f corresponds to the outline space point
// scale*f + internalOffset.  Texel t along an axis covers the font space
// interval [offset + t*texelSize, offset + (t+1)*texelSize].  All texel
// boundaries and texel centers have outline coordinates which are
// multiples of scale/2, while outline points built from integer font
// coordinates never are.
type CoordinateConverter struct {
	scale          int
	texelSize      int
	internalOffset int
	size           image.Point
	offset         image.Point
}

// NewCoordinateConverter returns a converter for a raster of size texels
// whose texel (0, 0) has its lower left corner at the font space point
// offset.
func NewCoordinateConverter(scale, texelSize, internalOffset int, size, offset image.Point) (*CoordinateConverter, error) {
	if scale <= 0 || scale%2 != 0 {
		return nil, ErrScale
	}
	if texelSize <= 0 {
		return nil, ErrTexelSize
	}
	if r := mod(internalOffset, scale/2); r == 0 {
		return nil, ErrInternalOffset
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrRasterSize
	}
	return &CoordinateConverter{
		scale:          scale,
		texelSize:      texelSize,
		internalOffset: internalOffset,
		size:           size,
		offset:         offset,
	}, nil
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Scale returns the factor between font space and outline space.
func (c *CoordinateConverter) Scale() int {
	return c.scale
}

// Size returns the raster size in texels.
func (c *CoordinateConverter) Size() image.Point {
	return c.size
}

// TexelSpan returns the side length of a texel in outline space.
func (c *CoordinateConverter) TexelSpan() int {
	return c.scale * c.texelSize
}

// OutlinePoint maps a font space point to outline space.
func (c *CoordinateConverter) OutlinePoint(font image.Point) image.Point {
	return image.Point{
		X: c.scale*font.X + c.internalOffset,
		Y: c.scale*font.Y + c.internalOffset,
	}
}

// FontPoint maps an outline space point back to font space.
func (c *CoordinateConverter) FontPoint(p vec.Vec2) vec.Vec2 {
	s := float64(c.scale)
	o := float64(c.internalOffset)
	return vec.Vec2{X: (p.X - o) / s, Y: (p.Y - o) / s}
}

// PointFromTexel returns the outline coordinate of the given anchor of
// texel t along axis coord.
func (c *CoordinateConverter) PointFromTexel(t int, coord bezier.Coordinate, anchor Anchor) int {
	v := c.scale * (coord.Of(c.offset) + c.texelSize*t)
	if anchor == Center {
		v += c.scale * c.texelSize / 2
	}
	return v
}

// TexelFromPoint returns the texel index along axis coord.  With anchor
// Begin this is the texel containing v; with anchor Center it is the last
// texel whose center is at or before v.
func (c *CoordinateConverter) TexelFromPoint(v float64, coord bezier.Coordinate, anchor Anchor) int {
	v -= float64(c.PointFromTexel(0, coord, anchor))
	return int(math.Floor(v / float64(c.TexelSpan())))
}

// TexelBottomLeft returns the outline space lower left corner of a texel.
func (c *CoordinateConverter) TexelBottomLeft(t image.Point) image.Point {
	return image.Point{
		X: c.PointFromTexel(t.X, bezier.X, Begin),
		Y: c.PointFromTexel(t.Y, bezier.Y, Begin),
	}
}

// TexelTopRight returns the outline space upper right corner of a texel.
func (c *CoordinateConverter) TexelTopRight(t image.Point) image.Point {
	return c.TexelBottomLeft(t.Add(image.Point{X: 1, Y: 1}))
}

// TexelCenter returns the outline space center of a texel.
func (c *CoordinateConverter) TexelCenter(t image.Point) image.Point {
	return image.Point{
		X: c.PointFromTexel(t.X, bezier.X, Center),
		Y: c.PointFromTexel(t.Y, bezier.Y, Center),
	}
}

// NormalizedGlyphCoordinate maps an outline space point to the unit
// square spanned by the raster.
func (c *CoordinateConverter) NormalizedGlyphCoordinate(p vec.Vec2) vec.Vec2 {
	origin := c.TexelBottomLeft(image.Point{})
	w := float64(c.TexelSpan() * c.size.X)
	h := float64(c.TexelSpan() * c.size.Y)
	return vec.Vec2{
		X: (p.X - float64(origin.X)) / w,
		Y: (p.Y - float64(origin.Y)) / h,
	}
}

// Snap rounds an outline space point to the nearest point whose
// coordinates are congruent to the internal offset modulo scale/2.
// Such points never lie on a texel boundary or center line.
func (c *CoordinateConverter) Snap(p vec.Vec2) image.Point {
	half := float64(c.scale / 2)
	o := float64(c.internalOffset)
	return image.Point{
		X: int(math.Round((p.X-o)/half)*half + o),
		Y: int(math.Round((p.Y-o)/half)*half + o),
	}
}

// DistanceToFont converts a distance from outline units to font units.
func (c *CoordinateConverter) DistanceToFont(d float64) float64 {
	return d / float64(c.scale)
}

// DistanceToOutline converts a distance from font units to outline units.
func (c *CoordinateConverter) DistanceToOutline(d float64) float64 {
	return d * float64(c.scale)
}
