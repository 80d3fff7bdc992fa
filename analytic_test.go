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
	"math"
	"testing"

	"seehuhn.de/go/glyphfield/outline"
)

func TestAnalyticSquare(t *testing.T) {
	cfg := unitConfig(12, 12, image.Pt(-1, -1))
	d := mustNew(t, cfg, polygons(square(0, 0, 10, 10)))
	res := d.AnalyticValues()

	if len(res.Reversed) != 1 || res.Reversed[0] {
		t.Errorf("reversed %v", res.Reversed)
	}

	// texel (1,5) is crossed by the left side of the square, which runs
	// downwards
	v := res.Values.At(1, 5)
	if len(v.Intersections) != 2 {
		t.Fatalf("got %d intersections, want 2", len(v.Intersections))
	}
	left := outline.CurveRef{Contour: 0, Curve: 3}
	for _, is := range v.Intersections {
		if is.Curve != left {
			t.Errorf("%s: curve %v", is.Side, is.Curve)
		}
		if math.Abs(is.Position-0.25) > 1e-9 {
			t.Errorf("%s: position %g", is.Side, is.Position)
		}
		if math.Abs(is.FillNormal.X-1) > 1e-9 || math.Abs(is.FillNormal.Y) > 1e-9 {
			t.Errorf("%s: fill normal %v", is.Side, is.FillNormal)
		}
		switch is.Side {
		case Top:
			if !is.Enters {
				t.Error("curve should enter through the top")
			}
		case Bottom:
			if is.Enters {
				t.Error("curve should leave through the bottom")
			}
		default:
			t.Errorf("unexpected side %s", is.Side)
		}
	}
	if !v.Inside || v.Parity != [4]int{1, 1, 1, 1} {
		t.Errorf("inside %t, parity %v", v.Inside, v.Parity)
	}

	// texels away from the outline have no intersections
	for _, p := range []image.Point{{5, 5}, {0, 0}, {10, 10}} {
		if n := len(res.Values.At(p.X, p.Y).Intersections); n != 0 {
			t.Errorf("%v: %d intersections", p, n)
		}
	}
}

func TestAnalyticConsistency(t *testing.T) {
	// every crossing of a texel side appears in both adjacent texels,
	// once entering and once leaving
	emit := func(s outline.Sink) error {
		s.PushCurve(image.Pt(3, 3), image.Pt(40, 5))
		s.PushCurve(image.Pt(40, 5), image.Pt(45, 40), image.Pt(10, 35))
		s.PushCurve(image.Pt(10, 35), image.Pt(0, 30), image.Pt(10, 15), image.Pt(3, 3))
		s.EndContour()
		return nil
	}
	cfg := unitConfig(16, 16, image.Point{})
	cfg.TexelSize = 3
	d := mustNew(t, cfg, emit)
	res := d.AnalyticValues()
	dist := d.DistanceValues()

	opposite := map[Side]Side{Bottom: Top, Top: Bottom, LeftSide: RightSide, RightSide: LeftSide}
	step := map[Side]image.Point{Bottom: {0, -1}, Top: {0, 1}, LeftSide: {-1, 0}, RightSide: {1, 0}}
	total := 0
	for j := range cfg.Height {
		for i := range cfg.Width {
			v := res.Values.At(i, j)
			if v.Inside != dist.At(i, j).Inside {
				t.Errorf("texel (%d,%d): inside flags differ", i, j)
			}
			if v.Parity != dist.At(i, j).Parity {
				t.Errorf("texel (%d,%d): parity %v != %v", i, j, v.Parity, dist.At(i, j).Parity)
			}
			for _, is := range v.Intersections {
				total++
				if is.Position < 0 || is.Position > 1 {
					t.Errorf("texel (%d,%d): position %g", i, j, is.Position)
				}
				if l := is.FillNormal.Length(); math.Abs(l-1) > 1e-9 {
					t.Errorf("texel (%d,%d): normal length %g", i, j, l)
				}
				n := image.Pt(i, j).Add(step[is.Side])
				if n.X < 0 || n.Y < 0 || n.X >= cfg.Width || n.Y >= cfg.Height {
					continue
				}
				found := false
				for _, other := range res.Values.At(n.X, n.Y).Intersections {
					if other.Side == opposite[is.Side] && other.Curve == is.Curve &&
						math.Abs(other.T-is.T) < 1e-12 {
						found = true
						if other.Enters == is.Enters {
							t.Errorf("texel (%d,%d): crossing enters both texels", i, j)
						}
					}
				}
				if !found {
					t.Errorf("texel (%d,%d): crossing on %s missing in neighbor", i, j, is.Side)
				}
			}
		}
	}
	if total == 0 {
		t.Error("no intersections found")
	}
}
