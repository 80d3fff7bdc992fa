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
	"log/slog"

	"seehuhn.de/go/glyphfield/outline"
)

// FillRule selects how the inside of an outline is determined.
type FillRule int

const (
	// NonZeroWinding treats points with non-zero winding number as inside.
	NonZeroWinding FillRule = iota

	// OddEven treats a point as inside if at least two of the four
	// axis-parallel rays from the point cross the outline an odd number
	// of times.
	OddEven

	// ExternalHint uses OddEven if the outline hints request the even-odd
	// rule, and NonZeroWinding otherwise.
	ExternalHint
)

func (r FillRule) String() string {
	switch r {
	case NonZeroWinding:
		return "nonzero"
	case OddEven:
		return "evenodd"
	case ExternalHint:
		return "hint"
	}
	return "invalid"
}

// Config holds the raster parameters for an [OutlineData].
type Config struct {
	// Width and Height give the raster size in texels.
	Width, Height int

	// Offset is the font space position of the lower left corner of
	// texel (0, 0).
	Offset image.Point

	// Scale is the factor between font space and outline space.
	// It must be even.
	Scale int

	// TexelSize is the side length of a texel in font units.
	TexelSize int

	// InternalOffset is added to all outline coordinates.  It must not be
	// a multiple of Scale/2.
	InternalOffset int

	// MaxDistance is the largest distance reported by distance fields,
	// in font units.
	MaxDistance float64

	FillRule FillRule

	// CubicSplit, if 1, 2 or 4, replaces every cubic curve by that many
	// quadratic curves when the outline is built.
	CubicSplit int

	// Logger receives debug output.  If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultConfig returns the default raster parameters: font units in 26.6
// fixed point format, so that one texel corresponds to 64 font units,
// and a maximal distance of 1.5 texels.  The raster size must be set by
// the caller.
func DefaultConfig() Config {
	return Config{
		Scale:          4,
		TexelSize:      64,
		InternalOffset: 1,
		MaxDistance:    96,
		FillRule:       NonZeroWinding,
	}
}

// Validate checks the configuration.  All errors are of type
// [*ConfigError].
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	}
	if c.Scale <= 0 || c.Scale%2 != 0 {
		return &ConfigError{Field: "Scale", Reason: "must be positive and even"}
	}
	if c.TexelSize <= 0 {
		return &ConfigError{Field: "TexelSize", Reason: "must be positive"}
	}
	if c.InternalOffset%(c.Scale/2) == 0 {
		return &ConfigError{Field: "InternalOffset", Reason: "must not be a multiple of Scale/2"}
	}
	if !(c.MaxDistance > 0) {
		return &ConfigError{Field: "MaxDistance", Reason: "must be positive"}
	}
	if c.FillRule < NonZeroWinding || c.FillRule > ExternalHint {
		return &ConfigError{Field: "FillRule", Reason: "unknown fill rule"}
	}
	switch c.CubicSplit {
	case 0, 1, 2, 4:
	default:
		return &ConfigError{Field: "CubicSplit", Reason: "must be 0, 1, 2 or 4"}
	}
	return nil
}

// Converter returns the coordinate converter described by the
// configuration.
func (c *Config) Converter() (*outline.CoordinateConverter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return outline.NewCoordinateConverter(c.Scale, c.TexelSize, c.InternalOffset,
		image.Point{X: c.Width, Y: c.Height}, c.Offset)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphfield: invalid config." + e.Field + ": " + e.Reason
}
