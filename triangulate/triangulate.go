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

// Package triangulate computes constrained triangulations of point sets
// with closed outlines, and splits them into regions of constant winding
// number.
//
// Points are added together with caller chosen indices, and all results
// are reported in terms of these indices.  The edges of outlines, and any
// extra edges added with [Triangulation.AddEdge], are constrained: they
// appear as edges of the triangulation.  Constrained edges separate the
// triangles into connected components.  Every component is assigned the
// winding number of the outlines around it; extra edges split components
// but do not change winding numbers.
//
// Coordinates must be smaller than 2^20 in absolute value.
package triangulate

import (
	"image"
	"log/slog"

	"seehuhn.de/go/glyphfield/internal/logging"
)

type state int

const (
	stateEmpty state = iota
	statePointsAdded
	stateTriangulated
	stateComponentsComputed
)

// Triangulation accumulates points and edges and computes a constrained
// triangulation of them on demand.  Adding points or edges invalidates
// all previously computed results.
type Triangulation struct {
	log *slog.Logger

	pts       []image.Point
	userIndex []int // the first user index given for each vertex
	byCoord   map[image.Point]int
	byIndex   map[int]int

	outlines [][]int // closed loops of vertices
	extra    [][2]int

	state         state
	mesh          *mesh
	pointFail     bool
	outlineFail   bool
	componentFail bool
	components    []*Component
	evenOdd       [][3]int
	nonZero       [][3]int
}

// Option configures a [Triangulation].
type Option func(*Triangulation)

// WithLogger sets the logger used to report failures and statistics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Triangulation) {
		t.log = l
	}
}

// New creates an empty triangulation.
func New(opts ...Option) *Triangulation {
	t := &Triangulation{
		byCoord: make(map[image.Point]int),
		byIndex: make(map[int]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = logging.OrDiscard(t.log)
	return t
}

// Edge is an extra constrained edge between two points.
type Edge struct {
	P0, P1 image.Point
	I0, I1 int
}

func (t *Triangulation) invalidate() {
	t.state = statePointsAdded
	t.mesh = nil
	t.pointFail = false
	t.outlineFail = false
	t.componentFail = false
	t.components = nil
	t.evenOdd = nil
	t.nonZero = nil
}

// AddPoint adds a point with the given user index.  If the index is
// already in use, the call has no effect.  Points with equal coordinates
// share a vertex.
func (t *Triangulation) AddPoint(p image.Point, index int) {
	t.vertex(p, index)
}

func (t *Triangulation) vertex(p image.Point, index int) int {
	if v, ok := t.byIndex[index]; ok {
		return v
	}
	v, ok := t.byCoord[p]
	if !ok {
		v = len(t.pts)
		t.pts = append(t.pts, p)
		t.userIndex = append(t.userIndex, index)
		t.byCoord[p] = v
		t.invalidate()
	}
	t.byIndex[index] = v
	return v
}

// AddOutline adds a closed outline through the points with the given
// indices.  The function lookup gives the coordinates of each index.
// Outlines determine the winding numbers of the components.
func (t *Triangulation) AddOutline(indices []int, lookup func(int) image.Point) {
	loop := make([]int, 0, len(indices))
	for _, idx := range indices {
		v := t.vertex(lookup(idx), idx)
		if len(loop) > 0 && loop[len(loop)-1] == v {
			continue
		}
		loop = append(loop, v)
	}
	for len(loop) > 1 && loop[0] == loop[len(loop)-1] {
		loop = loop[:len(loop)-1]
	}
	if len(loop) < 2 {
		return
	}
	t.outlines = append(t.outlines, loop)
	t.invalidate()
}

// AddEdge adds a constrained edge between two points.  The edge separates
// components but does not affect winding numbers.
func (t *Triangulation) AddEdge(p0 image.Point, i0 int, p1 image.Point, i1 int) {
	v0 := t.vertex(p0, i0)
	v1 := t.vertex(p1, i1)
	if v0 == v1 {
		return
	}
	t.extra = append(t.extra, [2]int{v0, v1})
	t.invalidate()
}

// AddEdges adds a list of constrained edges.
func (t *Triangulation) AddEdges(edges []Edge) {
	for _, e := range edges {
		t.AddEdge(e.P0, e.I0, e.P1, e.I1)
	}
}

// PointTriangulationFail reports whether the triangulation could not
// contain all constrained edges, typically because two of them cross.
func (t *Triangulation) PointTriangulationFail() bool {
	t.triangulate()
	return t.pointFail
}

// ConnectedComponentComputationFail reports whether the winding numbers
// of the components are unreliable, because some outline edge is not part
// of the triangulation.
func (t *Triangulation) ConnectedComponentComputationFail() bool {
	t.computeComponents()
	return t.componentFail
}

func (t *Triangulation) triangulate() {
	if t.state >= stateTriangulated || len(t.pts) == 0 {
		return
	}

	m := newMesh(t.pts)
	m.insertAll(t.pts)

	outlineFail := 0
	for _, loop := range t.outlines {
		for i, v := range loop {
			w := loop[(i+1)%len(loop)]
			if !m.constrain(v+numSuper, w+numSuper) {
				outlineFail++
			}
		}
	}
	fail := outlineFail
	for _, e := range t.extra {
		if !m.constrain(e[0]+numSuper, e[1]+numSuper) {
			fail++
		}
	}

	t.mesh = m
	t.pointFail = fail > 0
	t.outlineFail = outlineFail > 0
	t.state = stateTriangulated
	if fail > 0 {
		t.log.Warn("constrained edges could not be recovered",
			slog.Int("edges", fail))
	}
	t.log.Debug("triangulated",
		slog.Int("points", len(t.pts)),
		slog.Int("triangles", len(m.tris)))
}

// userTriangle converts a mesh triangle to user indices.
func (t *Triangulation) userTriangle(k int) [3]int {
	tr := &t.mesh.tris[k]
	return [3]int{
		t.userIndex[tr.v[0]-numSuper],
		t.userIndex[tr.v[1]-numSuper],
		t.userIndex[tr.v[2]-numSuper],
	}
}

// Triangles returns all triangles of the triangulation, as counter-clockwise
// triples of user indices.
func (t *Triangulation) Triangles() [][3]int {
	t.triangulate()
	if t.mesh == nil {
		return nil
	}
	var res [][3]int
	for k := range t.mesh.tris {
		if !t.mesh.tris[k].hasSuper() {
			res = append(res, t.userTriangle(k))
		}
	}
	return res
}

// EvenOddTriangulation returns the triangles of all components with an
// odd winding number.
func (t *Triangulation) EvenOddTriangulation() [][3]int {
	t.computeComponents()
	return t.evenOdd
}

// WindingRuleTriangulation returns the triangles of all components with a
// non-zero winding number.
func (t *Triangulation) WindingRuleTriangulation() [][3]int {
	t.computeComponents()
	return t.nonZero
}
