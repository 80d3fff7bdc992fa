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
	"log/slog"

	"seehuhn.de/go/glyphfield/outline"
)

// EdgeClass describes the vertical direction of a boundary edge.
type EdgeClass int

const (
	Flat EdgeClass = iota
	Rising
	Falling
)

func (c EdgeClass) String() string {
	switch c {
	case Flat:
		return "flat"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "invalid"
}

// BoundaryEdge is an edge on the boundary of a connected component.  The
// component lies to the left of the directed edge from From to To.
type BoundaryEdge struct {
	From, To int
	Class    EdgeClass

	// Neighbor is the component on the other side of the edge.
	Neighbor *Component
}

// Component is a maximal set of triangles connected across unconstrained
// edges.
type Component struct {
	id        int
	t         *Triangulation
	triangles []int
	induced   bool
	winding   int
	edges     []BoundaryEdge
}

// ID returns the position of the component in the list returned by
// [Triangulation.ConnectedComponents].
func (c *Component) ID() int {
	return c.id
}

// WindingNumber returns the winding number of the outlines around the
// component.
func (c *Component) WindingNumber() int {
	return c.winding
}

// Induced reports whether the component touches the scaffolding which
// encloses all points.  This is the case for the unbounded region outside
// all outlines.
func (c *Component) Induced() bool {
	return c.induced
}

// Triangulation returns the triangles of the component as
// counter-clockwise triples of user indices.
func (c *Component) Triangulation() [][3]int {
	var res [][3]int
	for _, k := range c.triangles {
		if !c.t.mesh.tris[k].hasSuper() {
			res = append(res, c.t.userTriangle(k))
		}
	}
	return res
}

// Edges returns the boundary edges of the component.  Edges leading to
// the enclosing scaffolding are omitted.
func (c *Component) Edges() []BoundaryEdge {
	return c.edges
}

// ConnectedComponents returns the connected components of the
// triangulation.
func (t *Triangulation) ConnectedComponents() []*Component {
	t.computeComponents()
	return t.components
}

func (t *Triangulation) computeComponents() {
	t.triangulate()
	if t.state >= stateComponentsComputed || t.mesh == nil {
		return
	}
	m := t.mesh

	owner := make([]int, len(m.tris))
	for k := range owner {
		owner[k] = -1
	}
	var comps []*Component
	var stack []int
	for k := range m.tris {
		if owner[k] >= 0 {
			continue
		}
		c := &Component{id: len(comps), t: t}
		comps = append(comps, c)
		owner[k] = c.id
		stack = append(stack[:0], k)
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c.triangles = append(c.triangles, s)
			tr := &m.tris[s]
			if tr.hasSuper() {
				c.induced = true
			}
			for i := range 3 {
				u := tr.n[i]
				if u >= 0 && !tr.c[i] && owner[u] < 0 {
					owner[u] = c.id
					stack = append(stack, u)
				}
			}
		}
	}

	fail := t.outlineFail

	o := t.windingOutline()
	for _, c := range comps {
		tr := &m.tris[c.triangles[0]]
		// three times the centroid
		var p image.Point
		for _, v := range tr.v {
			p = p.Add(m.pts[v])
		}
		c.winding = o.WindingNumber(p)
	}

	for _, c := range comps {
		for _, k := range c.triangles {
			tr := &m.tris[k]
			for i := range 3 {
				u := tr.n[i]
				if u >= 0 && owner[u] == c.id {
					continue
				}
				a, b := tr.edgeVertices(i)
				if a < numSuper || b < numSuper {
					continue
				}
				e := BoundaryEdge{
					From:  t.userIndex[a-numSuper],
					To:    t.userIndex[b-numSuper],
					Class: classify(m.pts[a], m.pts[b]),
				}
				if u >= 0 {
					e.Neighbor = comps[owner[u]]
				}
				c.edges = append(c.edges, e)
			}
		}
	}

	var evenOdd, nonZero [][3]int
	for _, c := range comps {
		if c.winding == 0 {
			continue
		}
		tris := c.Triangulation()
		nonZero = append(nonZero, tris...)
		if c.winding%2 != 0 {
			evenOdd = append(evenOdd, tris...)
		}
	}

	t.components = comps
	t.componentFail = fail
	t.evenOdd = evenOdd
	t.nonZero = nonZero
	t.state = stateComponentsComputed
	if fail {
		t.log.Warn("outline edges missing from triangulation")
	}
	t.log.Debug("connected components",
		slog.Int("components", len(comps)))
}

// windingOutline builds an outline from the closed loops, with all
// coordinates multiplied by three.
func (t *Triangulation) windingOutline() *outline.Outline {
	var b outline.Builder
	for _, loop := range t.outlines {
		for i, v := range loop {
			p := t.pts[v].Mul(3)
			q := t.pts[loop[(i+1)%len(loop)]].Mul(3)
			b.PushCurve(p, q)
		}
		b.EndContour()
	}
	return b.Outline()
}

func classify(a, b image.Point) EdgeClass {
	switch {
	case b.Y > a.Y:
		return Rising
	case b.Y < a.Y:
		return Falling
	}
	return Flat
}
