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

package triangulate

import (
	"image"
	"math/big"
)

// orient returns a positive value if a, b, c are in counter-clockwise
// order, a negative value if they are clockwise, and zero if they are
// collinear.  Coordinates must be smaller than 2^30 in absolute value.
func orient(a, b, c image.Point) int64 {
	abx := int64(b.X - a.X)
	aby := int64(b.Y - a.Y)
	acx := int64(c.X - a.X)
	acy := int64(c.Y - a.Y)
	return abx*acy - aby*acx
}

func sign(x int64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// smallDiff is the bound on coordinate differences below which inCircle
// can be evaluated in int64 arithmetic.
const smallDiff = 1 << 14

// inCircle returns +1 if d lies strictly inside the circle through the
// counter-clockwise triangle a, b, c, -1 if it lies strictly outside, and
// 0 if the four points are cocircular.
func inCircle(a, b, c, d image.Point) int {
	adx, ady := int64(a.X-d.X), int64(a.Y-d.Y)
	bdx, bdy := int64(b.X-d.X), int64(b.Y-d.Y)
	cdx, cdy := int64(c.X-d.X), int64(c.Y-d.Y)

	if small(adx, ady, bdx, bdy, cdx, cdy) {
		alift := adx*adx + ady*ady
		blift := bdx*bdx + bdy*bdy
		clift := cdx*cdx + cdy*cdy
		det := alift*(bdx*cdy-bdy*cdx) +
			blift*(cdx*ady-cdy*adx) +
			clift*(adx*bdy-ady*bdx)
		return sign(det)
	}

	var v [6]big.Int
	for i, x := range [6]int64{adx, ady, bdx, bdy, cdx, cdy} {
		v[i].SetInt64(x)
	}
	lift := func(x, y *big.Int) *big.Int {
		var s, t big.Int
		s.Mul(x, x)
		t.Mul(y, y)
		return s.Add(&s, &t)
	}
	cross := func(x1, y1, x2, y2 *big.Int) *big.Int {
		var s, t big.Int
		s.Mul(x1, y2)
		t.Mul(y1, x2)
		return s.Sub(&s, &t)
	}

	var det, term big.Int
	det.Mul(lift(&v[0], &v[1]), cross(&v[2], &v[3], &v[4], &v[5]))
	term.Mul(lift(&v[2], &v[3]), cross(&v[4], &v[5], &v[0], &v[1]))
	det.Add(&det, &term)
	term.Mul(lift(&v[4], &v[5]), cross(&v[0], &v[1], &v[2], &v[3]))
	det.Add(&det, &term)
	return det.Sign()
}

func small(xs ...int64) bool {
	for _, x := range xs {
		if x <= -smallDiff || x >= smallDiff {
			return false
		}
	}
	return true
}

// crossesProperly reports whether the open segments pq and ab intersect in
// a single point which is interior to both.
func crossesProperly(p, q, a, b image.Point) bool {
	return sign(orient(a, b, p))*sign(orient(a, b, q)) < 0 &&
		sign(orient(p, q, a))*sign(orient(p, q, b)) < 0
}
