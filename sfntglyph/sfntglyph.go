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

// Package sfntglyph reads glyph outlines from OpenType and TrueType fonts.
//
// Outlines are emitted in 26.6 fixed point pixel units, with the y axis
// pointing up.  Use a [outline.Builder] with a [outline.CoordinateConverter]
// to map them into outline space.
package sfntglyph

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/glyphfield/outline"
)

// LoadGlyph emits the outline of glyph gid at the given size, in pixels
// per em, into sink.
func LoadGlyph(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem fixed.Int26_6, sink outline.Sink) error {
	segs, err := f.LoadGlyph(buf, gid, ppem, nil)
	if err != nil {
		return errors.Wrapf(err, "load glyph %d", gid)
	}
	Emit(segs, sink)
	return nil
}

// LoadRune is like [LoadGlyph], but looks up the glyph for r in the
// font's character map.
func LoadRune(f *sfnt.Font, buf *sfnt.Buffer, r rune, ppem fixed.Int26_6, sink outline.Sink) error {
	gid, err := f.GlyphIndex(buf, r)
	if err != nil {
		return errors.Wrapf(err, "glyph index for %q", r)
	}
	if gid == 0 {
		return errors.Errorf("no glyph for %q", r)
	}
	return LoadGlyph(f, buf, gid, ppem, sink)
}

// Emit converts the segments of a glyph outline into curves.  Every
// MoveTo starts a new contour.
func Emit(segs sfnt.Segments, sink outline.Sink) {
	var cur image.Point
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sink.EndContour()
			}
			cur = toPoint(s.Args[0])
			open = true
		case sfnt.SegmentOpLineTo:
			p := toPoint(s.Args[0])
			sink.PushCurve(cur, p)
			cur = p
		case sfnt.SegmentOpQuadTo:
			c, p := toPoint(s.Args[0]), toPoint(s.Args[1])
			sink.PushCurve(cur, c, p)
			cur = p
		case sfnt.SegmentOpCubeTo:
			c1, c2, p := toPoint(s.Args[0]), toPoint(s.Args[1]), toPoint(s.Args[2])
			sink.PushCurve(cur, c1, c2, p)
			cur = p
		}
	}
	if open {
		sink.EndContour()
	}
}

// toPoint flips the y axis, sfnt uses y pointing down.
func toPoint(p fixed.Point26_6) image.Point {
	return image.Point{X: int(p.X), Y: -int(p.Y)}
}
