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

// Package poly finds the real roots of polynomials of degree at most three
// with integer coefficients, as they arise when a Bezier curve with integer
// control points is intersected with an axis-parallel line.
//
// Roots at t=0 and t=1 are detected exactly and deflated before any floating
// point work is done.  Whether a root lies in the open interval (0, 1) is
// decided with integer arithmetic for degrees one and two; for degree three
// the number of interior roots always has the parity given by the signs of
// the polynomial at 0 and 1.
package poly

import (
	"math"
	"math/big"
	"slices"
)

// Mode selects which roots are reported by [Solve].
type Mode int

const (
	// Interior reports only the roots in the open interval (0, 1).
	Interior Mode = iota

	// All reports every real root.  Roots outside the open interval
	// (0, 1) are reported with a negative multiplicity.
	All
)

// Root is a real root of a polynomial.
type Root struct {
	T float64

	// Multiplicity is positive for roots in (0, 1) and negative otherwise.
	Multiplicity int
}

// Interior reports whether the root lies strictly between 0 and 1.
func (r Root) Interior() bool {
	return r.Multiplicity > 0
}

// Solve appends the real roots of the polynomial
//
//	c[0] + c[1]*t + ... + c[n]*t^n
//
// to dst and returns the extended slice.  The degree n is at most 3; leading
// zero coefficients reduce the degree.  The new roots are sorted by T.
// Constant polynomials, including the zero polynomial, have no roots.
func Solve(c []int64, mode Mode, dst []Root) []Root {
	n := len(c)
	for n > 0 && c[n-1] == 0 {
		n--
	}
	if n <= 1 {
		return dst
	}
	if n > 4 {
		panic("poly: degree > 3")
	}

	var a [4]int64
	copy(a[:], c[:n])
	deg := n - 1

	// deflate t=0
	at0 := 0
	for deg > 0 && a[0] == 0 {
		copy(a[:], a[1:deg+1])
		a[deg] = 0
		deg--
		at0++
	}

	// deflate t=1
	at1 := 0
	for deg > 0 && sum(a[:deg+1]) == 0 {
		var b [4]int64
		b[deg-1] = a[deg]
		for k := deg - 1; k >= 1; k-- {
			b[k-1] = a[k] + b[k]
		}
		a = b
		deg--
		at1++
	}

	start := len(dst)
	if mode == All {
		if at0 > 0 {
			dst = append(dst, Root{T: 0, Multiplicity: -at0})
		}
		if at1 > 0 {
			dst = append(dst, Root{T: 1, Multiplicity: -at1})
		}
	}

	var buf [3]Root
	var roots []Root
	switch deg {
	case 1:
		roots = solveLinear(a[0], a[1], buf[:0])
	case 2:
		roots = solveQuadratic(a[0], a[1], a[2], buf[:0])
	case 3:
		roots = solveCubic(a[0], a[1], a[2], a[3], buf[:0])
	}
	for _, r := range roots {
		if r.Interior() || mode == All {
			dst = append(dst, r)
		}
	}

	slices.SortFunc(dst[start:], func(x, y Root) int {
		switch {
		case x.T < y.T:
			return -1
		case x.T > y.T:
			return 1
		}
		return 0
	})
	return dst
}

func sum(a []int64) int64 {
	var s int64
	for _, x := range a {
		s += x
	}
	return s
}

// Below, the polynomial p satisfies p(0) != 0 and p(1) != 0.

func solveLinear(a0, a1 int64, dst []Root) []Root {
	t := -float64(a0) / float64(a1)
	if a1 < 0 {
		a0, a1 = -a0, -a1
	}
	if 0 < -a0 && -a0 < a1 {
		return append(dst, Root{T: clampInterior(t), Multiplicity: 1})
	}
	return append(dst, Root{T: t, Multiplicity: -1})
}

func solveQuadratic(a0, a1, a2 int64, dst []Root) []Root {
	if a2 < 0 {
		a0, a1, a2 = -a0, -a1, -a2
	}

	disc := discriminant2(a0, a1, a2)
	switch {
	case disc < 0:
		return dst
	case disc == 0:
		t := -float64(a1) / float64(2*a2)
		if 0 < -a1 && -a1 < 2*a2 {
			return append(dst, Root{T: clampInterior(t), Multiplicity: 2})
		}
		return append(dst, Root{T: t, Multiplicity: -2})
	}

	d := quadDiscFloat(a0, a1, a2)
	sq := math.Sqrt(d)
	var q float64
	if a1 >= 0 {
		q = -(float64(a1) + sq) / 2
	} else {
		q = -(float64(a1) - sq) / 2
	}
	lo, hi := q/float64(a2), float64(a0)/q
	if lo > hi {
		lo, hi = hi, lo
	}

	// With a2 > 0, p is negative exactly between the roots.
	f0 := a0
	f1 := a0 + a1 + a2
	var loIn, hiIn bool
	switch {
	case f0 < 0 && f1 > 0:
		hiIn = true
	case f0 > 0 && f1 < 0:
		loIn = true
	case f0 > 0 && f1 > 0:
		if 0 < -a1 && -a1 < 2*a2 {
			loIn, hiIn = true, true
		}
	}
	dst = append(dst, makeRoot(lo, loIn, 1), makeRoot(hi, hiIn, 1))
	return dst
}

// discriminant2 returns the sign of a1^2 - 4*a0*a2.
func discriminant2(a0, a1, a2 int64) int {
	if fitsSmall(a0) && fitsSmall(a1) && fitsSmall(a2) {
		d := a1*a1 - 4*a0*a2
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	}
	d := new(big.Int).Mul(big.NewInt(a1), big.NewInt(a1))
	t := new(big.Int).Mul(big.NewInt(a0), big.NewInt(a2))
	t.Lsh(t, 2)
	return d.Sub(d, t).Sign()
}

func quadDiscFloat(a0, a1, a2 int64) float64 {
	if fitsSmall(a0) && fitsSmall(a1) && fitsSmall(a2) {
		return float64(a1*a1 - 4*a0*a2)
	}
	return float64(a1)*float64(a1) - 4*float64(a0)*float64(a2)
}

// fitsSmall reports whether squares and products of x stay well inside the
// int64 range.
func fitsSmall(x int64) bool {
	return x > -1<<30 && x < 1<<30
}

func solveCubic(d, c, b, a int64, dst []Root) []Root {
	if a < 0 {
		a, b, c, d = -a, -b, -c, -d
	}
	A, B, C, D := big.NewInt(a), big.NewInt(b), big.NewInt(c), big.NewInt(d)
	disc := cubicDiscriminant(A, B, C, D)

	// delta0 = b^2 - 3ac
	delta0 := new(big.Int).Mul(B, B)
	delta0.Sub(delta0, new(big.Int).Mul(big.NewInt(3), new(big.Int).Mul(A, C)))

	if disc.Sign() == 0 {
		if delta0.Sign() == 0 {
			// triple root -b/(3a)
			r := new(big.Rat).SetFrac(new(big.Int).Neg(B), new(big.Int).Mul(big.NewInt(3), A))
			t, _ := r.Float64()
			return append(dst, makeRoot(t, ratInterior(r), 3))
		}

		// double root (9ad - bc) / (2 delta0)
		num := new(big.Int).Mul(big.NewInt(9), new(big.Int).Mul(A, D))
		num.Sub(num, new(big.Int).Mul(B, C))
		r2 := new(big.Rat).SetFrac(num, new(big.Int).Lsh(delta0, 1))

		// simple root (4abc - 9a^2 d - b^3) / (a delta0)
		num1 := new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(A, new(big.Int).Mul(B, C)))
		num1.Sub(num1, new(big.Int).Mul(big.NewInt(9), new(big.Int).Mul(new(big.Int).Mul(A, A), D)))
		num1.Sub(num1, new(big.Int).Mul(B, new(big.Int).Mul(B, B)))
		r1 := new(big.Rat).SetFrac(num1, new(big.Int).Mul(A, delta0))

		t2, _ := r2.Float64()
		t1, _ := r1.Float64()
		return append(dst, makeRoot(t2, ratInterior(r2), 2), makeRoot(t1, ratInterior(r1), 1))
	}

	fa, fb, fc, fd := float64(a), float64(b), float64(c), float64(d)
	B3 := fb / fa / 3
	p := fc/fa - fb*fb/(3*fa*fa)
	q := 2*fb*fb*fb/(27*fa*fa*fa) - fb*fc/(3*fa*fa) + fd/fa

	var buf [3]float64
	ts := buf[:0]
	if disc.Sign() > 0 {
		// three distinct real roots, p < 0
		m := 2 * math.Sqrt(-p/3)
		arg := 3 * q / (p * m)
		arg = max(-1, min(1, arg))
		theta := math.Acos(arg) / 3
		for k := range 3 {
			ts = append(ts, m*math.Cos(theta-2*math.Pi*float64(k)/3)-B3)
		}
	} else {
		var x float64
		switch {
		case p < 0:
			s := math.Sqrt(-p / 3)
			arg := -3 * math.Abs(q) / (2 * p) / s
			x = -2 * math.Copysign(1, q) * s * math.Cosh(math.Acosh(max(arg, 1))/3)
		case p > 0:
			s := math.Sqrt(p / 3)
			arg := 3 * q / (2 * p) / s
			x = -2 * s * math.Sinh(math.Asinh(arg)/3)
		default:
			x = math.Cbrt(-q)
		}
		ts = append(ts, x-B3)
	}

	for i, t := range ts {
		ts[i] = polish(t, fd, fc, fb, fa)
	}

	in := make([]bool, len(ts))
	count := 0
	for i, t := range ts {
		in[i] = t > 0 && t < 1
		if in[i] {
			count++
		}
	}

	// The number of roots in (0, 1) is odd exactly when p(0) and p(1)
	// have opposite signs.  If rounding broke this, move the root closest
	// to the boundary to the other side.
	f0 := D.Sign()
	f1 := new(big.Int).Add(A, B)
	f1.Add(f1, C)
	f1.Add(f1, D)
	wantOdd := f0*f1.Sign() < 0
	if (count%2 == 1) != wantOdd {
		best := -1
		bestDist := math.Inf(1)
		for i, t := range ts {
			dist := min(math.Abs(t), math.Abs(t-1))
			if dist < bestDist {
				best, bestDist = i, dist
			}
		}
		in[best] = !in[best]
	}

	for i, t := range ts {
		dst = append(dst, makeRoot(t, in[i], 1))
	}
	return dst
}

// cubicDiscriminant returns 18abcd - 4b^3d + b^2c^2 - 4ac^3 - 27a^2d^2.
func cubicDiscriminant(a, b, c, d *big.Int) *big.Int {
	mul := func(xs ...*big.Int) *big.Int {
		r := big.NewInt(1)
		for _, x := range xs {
			r.Mul(r, x)
		}
		return r
	}
	res := mul(big.NewInt(18), a, b, c, d)
	res.Sub(res, mul(big.NewInt(4), b, b, b, d))
	res.Add(res, mul(b, b, c, c))
	res.Sub(res, mul(big.NewInt(4), a, c, c, c))
	res.Sub(res, mul(big.NewInt(27), a, a, d, d))
	return res
}

// polish refines a root of d + c t + b t^2 + a t^3 by Newton's method.
func polish(t, d, c, b, a float64) float64 {
	for range 3 {
		f := ((a*t+b)*t+c)*t + d
		df := (3*a*t+2*b)*t + c
		if df == 0 || f == 0 {
			break
		}
		next := t - f/df
		fn := ((a*next+b)*next+c)*next + d
		if math.IsNaN(next) || math.Abs(fn) >= math.Abs(f) {
			break
		}
		t = next
	}
	return t
}

func ratInterior(r *big.Rat) bool {
	return r.Sign() > 0 && r.Cmp(big.NewRat(1, 1)) < 0
}

func makeRoot(t float64, interior bool, mult int) Root {
	if interior {
		return Root{T: clampInterior(t), Multiplicity: mult}
	}
	switch {
	case t > 0 && t < 0.5:
		t = 0
	case t >= 0.5 && t < 1:
		t = 1
	}
	return Root{T: t, Multiplicity: -mult}
}

var (
	tMin = math.Nextafter(0, 1)
	tMax = math.Nextafter(1, 0)
)

func clampInterior(t float64) float64 {
	return max(tMin, min(tMax, t))
}
