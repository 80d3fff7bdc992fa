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

package bezier

import (
	"seehuhn.de/go/geom/vec"
)

// Segment is a Bezier curve with floating point control points.
// The degree is len(s)-1.
type Segment []vec.Vec2

// Evaluate returns the point at parameter t.
func (s Segment) Evaluate(t float64) vec.Vec2 {
	var buf [4]vec.Vec2
	p := buf[:len(s)]
	copy(p, s)
	return casteljau(p, t)
}

// Derivative returns the derivative with respect to t.
func (s Segment) Derivative(t float64) vec.Vec2 {
	n := len(s) - 1
	if n < 1 {
		return vec.Vec2{}
	}
	var buf [3]vec.Vec2
	d := buf[:n]
	for i := range n {
		d[i] = s[i+1].Sub(s[i]).Mul(float64(n))
	}
	return casteljau(d, t)
}

// SplitAt divides the segment at parameter t.
func (s Segment) SplitAt(t float64) (Segment, Segment) {
	n := len(s)
	left := make(Segment, n)
	right := make(Segment, n)

	var buf [4]vec.Vec2
	p := buf[:n]
	copy(p, s)
	for k := range n {
		left[k] = p[0]
		right[n-1-k] = p[n-1-k]
		for i := range n - 1 - k {
			p[i] = p[i].Mul(1 - t).Add(p[i+1].Mul(t))
		}
	}
	return left, right
}

// SubSegment returns the part of the segment between parameters t0 and t1,
// reparametrized to [0, 1].
func (s Segment) SubSegment(t0, t1 float64) Segment {
	if t0 == 0 && t1 == 1 {
		return append(Segment(nil), s...)
	}
	_, right := s.SplitAt(t0)
	if t0 == 1 {
		return right
	}
	left, _ := right.SplitAt((t1 - t0) / (1 - t0))
	return left
}
