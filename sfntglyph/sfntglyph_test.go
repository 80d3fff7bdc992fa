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

package sfntglyph

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/glyphfield/outline"
)

func loadFont(t testing.TB) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoadRune(t *testing.T) {
	f := loadFont(t)
	var buf sfnt.Buffer

	type testCase struct {
		r        rune
		contours int
		hole     bool // the center of the bounding box is outside
	}
	cases := []testCase{
		{'l', 1, false},
		{'o', 2, true},
		{'O', 2, true},
		{'i', 2, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.r), func(t *testing.T) {
			b := &outline.Builder{}
			err := LoadRune(f, &buf, tc.r, fixed.I(100), b)
			if err != nil {
				t.Fatal(err)
			}
			o := b.Outline()
			if o.NumContours() != tc.contours {
				t.Errorf("got %d contours, want %d", o.NumContours(), tc.contours)
			}

			bbox := o.BoundingBox()
			if bbox.Max.Y <= 0 || bbox.Min.Y < -5*64 {
				t.Errorf("glyph not above the baseline: %v", bbox)
			}
			center := image.Pt((bbox.Min.X+bbox.Max.X)/2+1, (bbox.Min.Y+bbox.Max.Y)/2+1)
			if w := o.WindingNumber(center); (w == 0) != tc.hole {
				t.Errorf("winding number %d at the center", w)
			}
		})
	}
}

func TestRing(t *testing.T) {
	f := loadFont(t)
	var buf sfnt.Buffer
	b := &outline.Builder{}
	if err := LoadRune(f, &buf, 'o', fixed.I(100), b); err != nil {
		t.Fatal(err)
	}
	o := b.Outline()

	// just inside the left side of the ring
	bbox := o.BoundingBox()
	p := image.Pt(bbox.Min.X+bbox.Dx()/20+1, (bbox.Min.Y+bbox.Max.Y)/2+1)
	if w := o.WindingNumber(p); w == 0 {
		t.Errorf("point %v in the ring has winding number 0", p)
	}
	if o.Orientation(0) == o.Orientation(1) {
		t.Error("inner and outer contour have the same orientation")
	}
}

func TestMissing(t *testing.T) {
	f := loadFont(t)
	var buf sfnt.Buffer
	b := &outline.Builder{}
	if err := LoadRune(f, &buf, '\U0001F600', fixed.I(100), b); err == nil {
		t.Error("missing glyph not reported")
	}
	gid := sfnt.GlyphIndex(f.NumGlyphs() + 10)
	if err := LoadGlyph(f, &buf, gid, fixed.I(100), b); err == nil {
		t.Error("invalid glyph index not reported")
	}
}
