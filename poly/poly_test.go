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

package poly

import (
	"math"
	"math/rand/v2"
	"testing"
)

// factor is the linear polynomial den*t - num with root num/den.
type factor struct {
	num, den int64
}

// expand multiplies the given linear factors.
func expand(fs ...factor) []int64 {
	c := []int64{1}
	for _, f := range fs {
		next := make([]int64, len(c)+1)
		for i, x := range c {
			next[i] -= x * f.num
			next[i+1] += x * f.den
		}
		c = next
	}
	return c
}

func TestSolveFactors(t *testing.T) {
	type want struct {
		t    float64
		mult int
	}
	cases := []struct {
		name    string
		factors []factor
		all     []want
	}{
		{"linear_interior", []factor{{1, 3}}, []want{{1.0 / 3, 1}}},
		{"linear_exterior", []factor{{5, 3}}, []want{{5.0 / 3, -1}}},
		{"linear_zero", []factor{{0, 7}}, []want{{0, -1}}},
		{"linear_one", []factor{{-4, -4}}, []want{{1, -1}}},
		{"quadratic_two_inside", []factor{{1, 4}, {3, 4}}, []want{{0.25, 1}, {0.75, 1}}},
		{"quadratic_one_inside", []factor{{-1, 2}, {1, 2}}, []want{{-0.5, -1}, {0.5, 1}}},
		{"quadratic_double", []factor{{1, 2}, {1, 2}}, []want{{0.5, 2}}},
		{"quadratic_double_outside", []factor{{3, 2}, {3, 2}}, []want{{1.5, -2}}},
		{"quadratic_boundary", []factor{{0, 1}, {1, 1}}, []want{{0, -1}, {1, -1}}},
		{"quadratic_double_zero", []factor{{0, 1}, {0, 3}}, []want{{0, -2}}},
		{"cubic_three_inside", []factor{{1, 4}, {1, 2}, {3, 4}}, []want{{0.25, 1}, {0.5, 1}, {0.75, 1}}},
		{"cubic_mixed", []factor{{-1, 1}, {1, 3}, {2, 1}}, []want{{-1, -1}, {1.0 / 3, 1}, {2, -1}}},
		{"cubic_double_simple", []factor{{1, 3}, {1, 3}, {2, 3}}, []want{{1.0 / 3, 2}, {2.0 / 3, 1}}},
		{"cubic_triple", []factor{{2, 5}, {2, 5}, {2, 5}}, []want{{0.4, 3}}},
		{"cubic_with_zero", []factor{{0, 1}, {1, 5}, {4, 5}}, []want{{0, -1}, {0.2, 1}, {0.8, 1}}},
		{"cubic_zero_and_one", []factor{{0, 1}, {1, 1}, {1, 2}}, []want{{0, -1}, {0.5, 1}, {1, -1}}},
		{"cubic_one_twice", []factor{{1, 1}, {1, 1}, {1, 8}}, []want{{0.125, 1}, {1, -2}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := expand(tc.factors...)
			got := Solve(c, All, nil)
			if len(got) != len(tc.all) {
				t.Fatalf("got %v, want %v", got, tc.all)
			}
			for i, w := range tc.all {
				if math.Abs(got[i].T-w.t) > 1e-9 || got[i].Multiplicity != w.mult {
					t.Errorf("root %d: got %v, want %v", i, got[i], w)
				}
			}

			interior := Solve(c, Interior, nil)
			n := 0
			for _, w := range tc.all {
				if w.mult > 0 {
					n++
				}
			}
			if len(interior) != n {
				t.Errorf("interior: got %v, want %d roots", interior, n)
			}
			for _, r := range interior {
				if !r.Interior() || r.T <= 0 || r.T >= 1 {
					t.Errorf("interior mode returned %v", r)
				}
			}
		})
	}
}

func TestSolveComplex(t *testing.T) {
	// t^2 + 1 and (t^2 + 1)(2t - 1)
	if got := Solve([]int64{1, 0, 1}, All, nil); len(got) != 0 {
		t.Errorf("t^2+1: got %v", got)
	}
	got := Solve([]int64{-1, 2, -1, 2}, All, nil)
	if len(got) != 1 || math.Abs(got[0].T-0.5) > 1e-12 || got[0].Multiplicity != 1 {
		t.Errorf("(t^2+1)(2t-1): got %v", got)
	}
}

func TestSolveDegenerate(t *testing.T) {
	cases := [][]int64{
		nil,
		{0},
		{5},
		{0, 0, 0, 0},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := Solve(c, All, nil); len(got) != 0 {
			t.Errorf("Solve(%v) = %v, want no roots", c, got)
		}
	}

	// leading zeros reduce the degree
	got := Solve([]int64{-1, 2, 0, 0}, Interior, nil)
	if len(got) != 1 || got[0].T != 0.5 {
		t.Errorf("got %v", got)
	}
}

func TestSolveAppends(t *testing.T) {
	dst := []Root{{T: 42, Multiplicity: 1}}
	dst = Solve(expand(factor{1, 4}, factor{1, 2}), Interior, dst)
	if len(dst) != 3 || dst[0].T != 42 {
		t.Fatalf("unexpected result %v", dst)
	}
}

// TestSolveParity checks that the number of interior roots always has the
// parity determined by the sign change between t=0 and t=1.
func TestSolveParity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20000 {
		var c [4]int64
		for i := range c {
			c[i] = rng.Int64N(2001) - 1000
		}
		f0 := c[0]
		f1 := c[0] + c[1] + c[2] + c[3]
		if f0 == 0 || f1 == 0 || c[3] == 0 {
			continue
		}
		roots := Solve(c[:], Interior, nil)
		n := 0
		for _, r := range roots {
			n += r.Multiplicity
		}
		if (n%2 == 1) != (f0*f1 < 0) {
			t.Fatalf("%v: %d interior roots %v, f(0)=%d f(1)=%d", c, n, roots, f0, f1)
		}
		for _, r := range roots {
			v := ((float64(c[3])*r.T+float64(c[2]))*r.T+float64(c[1]))*r.T + float64(c[0])
			scale := math.Abs(float64(c[0])) + math.Abs(float64(c[1])) + math.Abs(float64(c[2])) + math.Abs(float64(c[3]))
			if math.Abs(v) > 1e-6*scale {
				t.Fatalf("%v: root %v has residual %g", c, r, v)
			}
		}
	}
}

func BenchmarkSolveCubic(b *testing.B) {
	c := expand(factor{1, 4}, factor{1, 2}, factor{3, 4})
	var dst []Root
	for b.Loop() {
		dst = Solve(c, Interior, dst[:0])
	}
}
