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
	"log/slog"

	"seehuhn.de/go/glyphfield/bezier"
	"seehuhn.de/go/glyphfield/internal/logging"
	"seehuhn.de/go/glyphfield/outline"
)

// OutlineData combines a glyph outline with the raster it is sampled on.
//
// An OutlineData is not safe for concurrent use, but independent instances
// share no state.
type OutlineData struct {
	cfg  Config
	conv *outline.CoordinateConverter
	o    *outline.Outline
	log  *slog.Logger

	// per-row and per-column crossing buffer, reused between sweeps
	xs []outline.Crossing
}

// New validates cfg, lets emit send the glyph contours in font space to
// an outline builder, and returns the resulting OutlineData.  Errors from
// emit are returned unchanged.
//
// If the outline hints report an unreliable orientation, contours whose
// orientation disagrees with the fill side are reversed.
func New(cfg Config, emit func(outline.Sink) error) (*OutlineData, error) {
	conv, err := cfg.Converter()
	if err != nil {
		return nil, err
	}
	b := &outline.Builder{
		Converter:  conv,
		CubicSplit: cfg.CubicSplit,
	}
	if err := emit(b); err != nil {
		return nil, err
	}
	return newOutlineData(cfg, conv, b.Outline()), nil
}

// NewFromOutline returns an OutlineData for an outline which is already in
// the outline space described by cfg.
func NewFromOutline(cfg Config, o *outline.Outline) (*OutlineData, error) {
	conv, err := cfg.Converter()
	if err != nil {
		return nil, err
	}
	return newOutlineData(cfg, conv, o), nil
}

func newOutlineData(cfg Config, conv *outline.CoordinateConverter, o *outline.Outline) *OutlineData {
	d := &OutlineData{
		cfg:  cfg,
		conv: conv,
		o:    o,
		log:  logging.OrDiscard(cfg.Logger),
	}
	d.log.Debug("outline loaded",
		slog.Int("contours", o.NumContours()),
		slog.Int("curves", o.NumCurves()),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height))

	if o.Hints().UnreliableOrientation {
		d.CorrectOrientation()
	}
	return d
}

// Outline returns the outline.
func (d *OutlineData) Outline() *outline.Outline {
	return d.o
}

// Converter returns the coordinate converter.
func (d *OutlineData) Converter() *outline.CoordinateConverter {
	return d.conv
}

// Config returns the configuration.
func (d *OutlineData) Config() Config {
	return d.cfg
}

func (d *OutlineData) evenOdd(rule FillRule) bool {
	switch rule {
	case OddEven:
		return true
	case ExternalHint:
		return d.o.Hints().EvenOdd
	}
	return false
}

// inside applies the fill rule.
func (d *OutlineData) inside(winding int, parity [4]int) bool {
	if d.evenOdd(d.cfg.FillRule) {
		return outline.InsideParity(parity)
	}
	return winding != 0
}

// crossings returns the crossings of the outline with an axis-parallel
// line.  The result is valid until the next call.
func (d *OutlineData) crossings(coord bezier.Coordinate, value int) []outline.Crossing {
	d.xs = d.o.Crossings(coord, value, d.xs[:0])
	return d.xs
}

// centers returns the outline coordinates of the texel centers along an
// axis.
func (d *OutlineData) centers(coord bezier.Coordinate) []int {
	n := d.cfg.Width
	if coord == bezier.Y {
		n = d.cfg.Height
	}
	res := make([]int, n)
	for i := range res {
		res[i] = d.conv.PointFromTexel(i, coord, outline.Center)
	}
	return res
}
