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
	"errors"
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/glyphfield/outline"
)

// polygons returns an emit function for closed polygons in font space.
func polygons(contours ...[]image.Point) func(outline.Sink) error {
	return func(s outline.Sink) error {
		for _, pts := range contours {
			for i, p := range pts {
				s.PushCurve(p, pts[(i+1)%len(pts)])
			}
			s.EndContour()
		}
		return nil
	}
}

func square(x0, y0, x1, y1 int) []image.Point {
	return []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// unitConfig returns a configuration with one font unit per texel.
func unitConfig(w, h int, offset image.Point) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Offset = offset
	cfg.TexelSize = 1
	return cfg
}

func mustNew(t testing.TB, cfg Config, emit func(outline.Sink) error) *OutlineData {
	t.Helper()
	d, err := New(cfg, emit)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSquare(t *testing.T) {
	cfg := unitConfig(12, 12, image.Pt(-1, -1))
	d := mustNew(t, cfg, polygons(square(0, 0, 10, 10)))
	dist := d.DistanceValues()

	type testCase struct {
		texel    image.Point
		inside   bool
		winding  int
		distance float64
	}
	cases := []testCase{
		{image.Pt(5, 5), true, 1, 4.25},
		{image.Pt(0, 0), false, 0, 1.5},
		{image.Pt(11, 11), false, 0, 0.5},
		{image.Pt(1, 5), true, 1, 0.25},
		{image.Pt(10, 5), true, 1, 0.75},
		{image.Pt(11, 5), false, 0, 0.25},
	}
	for _, tc := range cases {
		v := dist.At(tc.texel.X, tc.texel.Y)
		if v.Inside != tc.inside || v.Winding != tc.winding {
			t.Errorf("%v: inside=%t winding=%d, want %t %d",
				tc.texel, v.Inside, v.Winding, tc.inside, tc.winding)
		}
		if math.Abs(v.Distance-tc.distance) > 1e-9 {
			t.Errorf("%v: distance %g, want %g", tc.texel, v.Distance, tc.distance)
		}
		if w := d.WindingNumber(tc.texel); w != tc.winding {
			t.Errorf("%v: WindingNumber %d, want %d", tc.texel, w, tc.winding)
		}
		if s := v.Signed(); (s > 0) != tc.inside {
			t.Errorf("%v: signed distance %g", tc.texel, s)
		}
	}

	// every texel center inside the square has odd parity in all four
	// directions
	for j := 1; j <= 10; j++ {
		for i := 1; i <= 10; i++ {
			p := dist.At(i, j).Parity
			if p != [4]int{1, 1, 1, 1} {
				t.Errorf("texel (%d,%d): parity %v", i, j, p)
			}
		}
	}
}

func TestSaturation(t *testing.T) {
	cfg := unitConfig(40, 40, image.Pt(-5, -5))
	cfg.MaxDistance = 2
	d := mustNew(t, cfg, polygons(square(0, 0, 30, 30)))
	dist := d.DistanceValues()
	for idx, v := range dist.Data {
		if v.Distance > cfg.MaxDistance {
			t.Fatalf("texel %d: distance %g exceeds the maximum", idx, v.Distance)
		}
	}
	if v := dist.At(20, 20); v.Distance != 2 || !v.Inside {
		t.Errorf("center: %+v", v)
	}
}

// l1ToSegment returns the L1 distance from c to the segment between p and
// q.
func l1ToSegment(c, p, q image.Point) float64 {
	cx, cy := float64(c.X), float64(c.Y)
	px, py := float64(p.X), float64(p.Y)
	qx, qy := float64(q.X), float64(q.Y)
	best := min(math.Abs(px-cx)+math.Abs(py-cy), math.Abs(qx-cx)+math.Abs(qy-cy))
	if (py-cy)*(qy-cy) < 0 {
		x := px + (cy-py)/(qy-py)*(qx-px)
		best = min(best, math.Abs(x-cx))
	}
	if (px-cx)*(qx-cx) < 0 {
		y := py + (cx-px)/(qx-px)*(qy-py)
		best = min(best, math.Abs(y-cy))
	}
	return best
}

func TestDistanceRandomPolygons(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for run := range 20 {
		n := 3 + rng.IntN(8)
		pts := make([]image.Point, n)
		for i := range pts {
			pts[i] = image.Pt(rng.IntN(30), rng.IntN(30))
		}
		cfg := unitConfig(32, 32, image.Pt(-1, -1))
		cfg.MaxDistance = 6
		d := mustNew(t, cfg, polygons(pts))
		conv := d.Converter()
		o := d.Outline()

		dist := d.DistanceValues()
		winding := d.WindingNumbers(image.Point{})
		for j := range cfg.Height {
			for i := range cfg.Width {
				c := conv.TexelCenter(image.Pt(i, j))
				want := math.Inf(1)
				for k := range o.NumCurves() {
					curve := o.CurveAt(k)
					want = min(want, l1ToSegment(c, curve.Start(), curve.End()))
				}
				want = min(conv.DistanceToFont(want), cfg.MaxDistance)

				v := dist.At(i, j)
				if math.Abs(v.Distance-want) > 1e-6 {
					t.Fatalf("run %d, texel (%d,%d): distance %g, want %g",
						run, i, j, v.Distance, want)
				}
				w := o.WindingNumber(c)
				if v.Winding != w || *winding.At(i, j) != w {
					t.Fatalf("run %d, texel (%d,%d): winding %d/%d, want %d",
						run, i, j, v.Winding, *winding.At(i, j), w)
				}
				if v.Distance == 0 {
					continue
				}
				// off the outline, all four rays agree with the winding number
				for k, p := range v.Parity {
					if (p-w)%2 != 0 {
						t.Fatalf("run %d, texel (%d,%d): parity[%d]=%d, winding %d",
							run, i, j, k, p, w)
					}
				}
			}
		}
	}
}

func TestDistanceCurve(t *testing.T) {
	// a quarter circle like quadratic arc and a cubic S curve
	emit := func(s outline.Sink) error {
		s.PushCurve(image.Pt(2, 2), image.Pt(28, 2))
		s.PushCurve(image.Pt(28, 2), image.Pt(28, 28), image.Pt(2, 28))
		s.PushCurve(image.Pt(2, 28), image.Pt(-10, 20), image.Pt(14, 10), image.Pt(2, 2))
		s.EndContour()
		return nil
	}
	cfg := unitConfig(32, 32, image.Pt(-2, 0))
	cfg.MaxDistance = 8
	d := mustNew(t, cfg, emit)
	conv := d.Converter()
	o := d.Outline()
	dist := d.DistanceValues()

	for j := range cfg.Height {
		for i := range cfg.Width {
			c := conv.TexelCenter(image.Pt(i, j))
			cx, cy := float64(c.X), float64(c.Y)
			sampled := math.Inf(1)
			for k := range o.NumCurves() {
				curve := o.CurveAt(k)
				for s := range 2001 {
					p := curve.Evaluate(float64(s) / 2000)
					sampled = min(sampled, math.Abs(p.X-cx)+math.Abs(p.Y-cy))
				}
			}
			sampled = min(conv.DistanceToFont(sampled), cfg.MaxDistance)

			// sampling can only overestimate the distance
			got := dist.At(i, j).Distance
			if got > sampled+1e-9 || got < sampled-0.05 {
				t.Errorf("texel (%d,%d): distance %g, sampled %g", i, j, got, sampled)
			}
		}
	}
}

func TestFillRules(t *testing.T) {
	// a self-intersecting pentagram: the center has winding number 2
	star := []image.Point{
		{20, 38}, {9, 4}, {38, 25}, {2, 25}, {31, 4},
	}
	for _, tc := range []struct {
		rule   FillRule
		hints  outline.Hints
		inside bool
	}{
		{NonZeroWinding, outline.Hints{}, true},
		{OddEven, outline.Hints{}, false},
		{ExternalHint, outline.Hints{}, true},
		{ExternalHint, outline.Hints{EvenOdd: true}, false},
	} {
		t.Run(tc.rule.String(), func(t *testing.T) {
			cfg := unitConfig(40, 40, image.Point{})
			cfg.FillRule = tc.rule
			conv, err := cfg.Converter()
			if err != nil {
				t.Fatal(err)
			}
			b := &outline.Builder{Converter: conv}
			b.SetHints(tc.hints)
			if err := polygons(star)(b); err != nil {
				t.Fatal(err)
			}
			d, err := NewFromOutline(cfg, b.Outline())
			if err != nil {
				t.Fatal(err)
			}

			v := d.DistanceValues().At(20, 18)
			if v.Winding != 2 {
				t.Errorf("winding %d at the center", v.Winding)
			}
			if v.Inside != tc.inside {
				t.Errorf("inside %t, want %t", v.Inside, tc.inside)
			}
			// a point in one of the tips is inside with every rule
			if tip := d.DistanceValues().At(20, 34); !tip.Inside {
				t.Errorf("tip not inside: %+v", tip)
			}
		})
	}
}

func TestReversedContours(t *testing.T) {
	// both contours counter-clockwise: the hole is misoriented
	contours := [][]image.Point{square(0, 0, 20, 20), square(5, 5, 15, 15)}
	cfg := unitConfig(22, 22, image.Pt(-1, -1))

	d := mustNew(t, cfg, polygons(contours...))
	rev := d.ReversedContours()
	if len(rev) != 2 || rev[0] || !rev[1] {
		t.Errorf("reversed contours %v", rev)
	}
	if w := d.WindingNumber(image.Pt(11, 11)); w != 2 {
		t.Errorf("winding in the hole %d", w)
	}

	conv, err := cfg.Converter()
	if err != nil {
		t.Fatal(err)
	}
	b := &outline.Builder{Converter: conv}
	b.SetHints(outline.Hints{UnreliableOrientation: true})
	if err := polygons(contours...)(b); err != nil {
		t.Fatal(err)
	}
	d, err = NewFromOutline(cfg, b.Outline())
	if err != nil {
		t.Fatal(err)
	}
	if w := d.WindingNumber(image.Pt(11, 11)); w != 0 {
		t.Errorf("corrected winding in the hole %d", w)
	}
	if w := d.WindingNumber(image.Pt(3, 3)); w != 1 {
		t.Errorf("corrected winding in the ring %d", w)
	}
	if rev := d.ReversedContours(); rev[0] || rev[1] {
		t.Errorf("contours still reversed after correction: %v", rev)
	}
}

func TestReverseFillHint(t *testing.T) {
	// clockwise outer contour, as in TrueType fonts
	cw := []image.Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	cfg := unitConfig(12, 12, image.Pt(-1, -1))
	conv, err := cfg.Converter()
	if err != nil {
		t.Fatal(err)
	}
	b := &outline.Builder{Converter: conv}
	b.SetHints(outline.Hints{ReverseFill: true})
	if err := polygons(cw)(b); err != nil {
		t.Fatal(err)
	}
	d, err := NewFromOutline(cfg, b.Outline())
	if err != nil {
		t.Fatal(err)
	}
	if rev := d.ReversedContours(); rev[0] {
		t.Error("clockwise contour reported as reversed")
	}
	if !d.DistanceValues().At(5, 5).Inside {
		t.Error("center not inside")
	}
}

func TestWindingOffset(t *testing.T) {
	cfg := unitConfig(12, 12, image.Pt(-1, -1))
	d := mustNew(t, cfg, polygons(square(0, 0, 10, 10)))

	// shifting the sample points by one texel moves texel 0 onto the
	// square
	span := cfg.Scale * cfg.TexelSize
	w := d.WindingNumbers(image.Pt(span, span))
	if got := *w.At(0, 0); got != 1 {
		t.Errorf("shifted winding %d at texel (0,0)", got)
	}
	if got := *w.At(10, 10); got != 0 {
		t.Errorf("shifted winding %d at texel (10,10)", got)
	}
}

func TestEmitError(t *testing.T) {
	errTest := errors.New("test error")
	_, err := New(unitConfig(4, 4, image.Point{}), func(outline.Sink) error {
		return errTest
	})
	if err != errTest {
		t.Errorf("got error %v, want %v", err, errTest)
	}

	_, err = New(Config{}, polygons(square(0, 0, 1, 1)))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("got error %v, want a ConfigError", err)
	}
}
