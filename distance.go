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
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphfield/bezier"
	"seehuhn.de/go/glyphfield/outline"
)

// Directions of the crossing counts in [DistanceValue.Parity].
const (
	Left = iota
	Right
	Below
	Above
)

// DistanceValue is the distance field entry of one texel.
type DistanceValue struct {
	// Distance is the L1 distance from the texel center to the outline in
	// font units, saturated at MaxDistance.
	Distance float64

	Inside bool

	// Winding is the winding number of the outline around the texel
	// center.
	Winding int

	// Parity counts the crossings of the outline with the rays from the
	// texel center to the left, right, bottom and top.
	Parity [4]int
}

// Signed returns the distance, negated for texels outside the outline.
func (v DistanceValue) Signed() float64 {
	if v.Inside {
		return v.Distance
	}
	return -v.Distance
}

// DistanceValues computes the signed L1 distance field of the outline,
// sampled at the texel centers.
func (d *OutlineData) DistanceValues() *Grid[DistanceValue] {
	w, h := d.cfg.Width, d.cfg.Height
	maxDist := d.conv.DistanceToOutline(d.cfg.MaxDistance)

	dist := NewGrid[float64](w, h)
	for i := range dist.Data {
		dist.Data[i] = 2 * maxDist
	}
	res := NewGrid[DistanceValue](w, h)

	cx := d.centers(bezier.X)
	cy := d.centers(bezier.Y)

	// end points and local extrema of the L1 distance along curves
	radius := int(math.Ceil(maxDist / float64(d.conv.TexelSpan())))
	sampled := 0
	update := func(p vec.Vec2) {
		tx := d.conv.TexelFromPoint(p.X, bezier.X, outline.Begin)
		ty := d.conv.TexelFromPoint(p.Y, bezier.Y, outline.Begin)
		for j := max(ty-radius, 0); j <= min(ty+radius, h-1); j++ {
			dy := math.Abs(float64(cy[j]) - p.Y)
			row := dist.Row(j)
			for i := max(tx-radius, 0); i <= min(tx+radius, w-1); i++ {
				row[i] = min(row[i], math.Abs(float64(cx[i])-p.X)+dy)
			}
		}
		sampled++
	}
	for i := range d.o.NumCurves() {
		c := d.o.CurveAt(i)
		start := c.Start()
		update(vec.Vec2{X: float64(start.X), Y: float64(start.Y)})
		for _, cp := range c.MaximalMinimalPoints() {
			update(cp.P)
		}
	}

	// rows: horizontal distances, left/right parity and winding
	crossings := 0
	before := make([]int, max(w, h))
	after := make([]int, max(w, h))
	winding := make([]int, max(w, h))
	for j, y := range cy {
		xs := d.crossings(bezier.Y, y)
		crossings += len(xs)
		d.axisDistances(xs, cx, dist.Row(j), maxDist)

		sweep(xs, cx, before, after, winding)
		out := res.Row(j)
		for i := range out {
			out[i].Winding = winding[i]
			out[i].Parity[Left] = before[i]
			out[i].Parity[Right] = after[i]
		}
	}

	// columns: vertical distances, below/above parity
	col := make([]float64, h)
	for i, x := range cx {
		xs := d.crossings(bezier.X, x)
		crossings += len(xs)
		for j := range col {
			col[j] = *dist.At(i, j)
		}
		d.axisDistances(xs, cy, col, maxDist)

		sweep(xs, cy, before, after, winding)
		for j := range col {
			*dist.At(i, j) = col[j]
			v := res.At(i, j)
			v.Parity[Below] = before[j]
			v.Parity[Above] = after[j]
		}
	}

	for idx := range res.Data {
		v := &res.Data[idx]
		v.Distance = min(d.conv.DistanceToFont(dist.Data[idx]), d.cfg.MaxDistance)
		v.Inside = d.inside(v.Winding, v.Parity)
	}

	d.log.Debug("distance field",
		slog.Int("samples", sampled),
		slog.Int("crossings", crossings))
	return res
}

// axisDistances updates the distances of texels along one raster line
// with the distances to the crossings on that line.
func (d *OutlineData) axisDistances(xs []outline.Crossing, centers []int, dist []float64, maxDist float64) {
	if len(centers) == 0 {
		return
	}
	span := float64(d.conv.TexelSpan())
	first := float64(centers[0])
	for _, c := range xs {
		lo := max(int(math.Ceil((c.Pos-maxDist-first)/span)), 0)
		hi := min(int(math.Floor((c.Pos+maxDist-first)/span)), len(centers)-1)
		for i := lo; i <= hi; i++ {
			dist[i] = min(dist[i], math.Abs(float64(centers[i])-c.Pos))
		}
	}
}

// sweep computes, for every sample position along a line, the total
// multiplicity of the crossings before and after the position and the
// winding contribution of the crossings after it.  The crossings must be
// sorted by position.  Crossings exactly at a sample position are not
// counted.
func sweep(xs []outline.Crossing, pos []int, before, after, winding []int) {
	k, n := 0, 0
	for i, p := range pos {
		x := float64(p)
		for k < len(xs) && xs[k].Pos < x {
			n += xs[k].Multiplicity
			k++
		}
		before[i] = n
	}

	k, n = len(xs)-1, 0
	w := 0
	for i := len(pos) - 1; i >= 0; i-- {
		x := float64(pos[i])
		for k >= 0 && xs[k].Pos > x {
			n += xs[k].Multiplicity
			w += xs[k].Winding
			k--
		}
		after[i] = n
		winding[i] = w
	}
}
