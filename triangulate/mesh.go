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
	"cmp"
	"image"
	"slices"
)

// numSuper is the number of vertices of the enclosing triangle.  They
// occupy the first vertex slots of a mesh.
const numSuper = 3

// triangle is a counter-clockwise triangle of a mesh.  Edge i is the edge
// opposite v[i], n[i] is the triangle on the other side of edge i (or -1),
// and c[i] records whether edge i is constrained.
type triangle struct {
	v [3]int
	n [3]int
	c [3]bool
}

// edgeVertices returns the end points of edge i in counter-clockwise
// order.
func (t *triangle) edgeVertices(i int) (int, int) {
	return t.v[(i+1)%3], t.v[(i+2)%3]
}

func (t *triangle) hasSuper() bool {
	return t.v[0] < numSuper || t.v[1] < numSuper || t.v[2] < numSuper
}

// mesh is a triangulation of a point set, enclosed in a large triangle.
type mesh struct {
	pts  []image.Point
	tris []triangle

	// vt[v] is some triangle incident to vertex v
	vt []int

	last int // starting point for the next point location
}

// newMesh creates a mesh consisting of a single triangle which contains
// all the given points well inside.
func newMesh(pts []image.Point) *mesh {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	d := max(maxX-minX, maxY-minY) + 1
	cx := minX + (maxX-minX)/2
	cy := minY + (maxY-minY)/2

	m := &mesh{
		pts: make([]image.Point, 0, len(pts)+numSuper),
		vt:  make([]int, numSuper, len(pts)+numSuper),
	}
	m.pts = append(m.pts,
		image.Point{X: cx - 20*d, Y: cy - 10*d},
		image.Point{X: cx + 20*d, Y: cy - 10*d},
		image.Point{X: cx, Y: cy + 20*d},
	)
	m.tris = append(m.tris, triangle{
		v: [3]int{0, 1, 2},
		n: [3]int{-1, -1, -1},
	})
	return m
}

// setTriangle stores t at index k and records it as incident to its
// vertices.
func (m *mesh) setTriangle(k int, t triangle) {
	m.tris[k] = t
	for _, v := range t.v {
		m.vt[v] = k
	}
}

// replaceNeighbor changes the neighbor of triangle k across the edge
// with end points a and b to nb.
func (m *mesh) replaceNeighbor(k, a, b, nb int) {
	if k < 0 {
		return
	}
	t := &m.tris[k]
	if i := t.edgeIndex(a, b); i >= 0 {
		t.n[i] = nb
	}
}

// edgeIndex returns the index of the edge with end points a and b, in
// either direction, or -1.
func (t *triangle) edgeIndex(a, b int) int {
	for i := range 3 {
		p, q := t.edgeVertices(i)
		if p == a && q == b || p == b && q == a {
			return i
		}
	}
	return -1
}

func (t *triangle) vertexIndex(v int) int {
	for i, w := range t.v {
		if w == v {
			return i
		}
	}
	return -1
}

// insertAll inserts the points, sorted by y and then x.
func (m *mesh) insertAll(pts []image.Point) {
	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		if c := cmp.Compare(pts[i].Y, pts[j].Y); c != 0 {
			return c
		}
		return cmp.Compare(pts[i].X, pts[j].X)
	})

	// vertex numbers follow the input order
	m.pts = append(m.pts, pts...)
	for range pts {
		m.vt = append(m.vt, -1)
	}
	for _, i := range order {
		m.insert(i + numSuper)
	}
}

// locate finds a triangle containing p, possibly on its boundary.  It
// walks from the last triangle found towards p and falls back to a linear
// search if the walk does not terminate.
func (m *mesh) locate(p image.Point) int {
	k := m.last
	for range 4*len(m.tris) + 8 {
		t := &m.tris[k]
		moved := false
		for i := range 3 {
			a, b := t.edgeVertices(i)
			if orient(m.pts[a], m.pts[b], p) < 0 && t.n[i] >= 0 {
				k = t.n[i]
				moved = true
				break
			}
		}
		if !moved {
			return k
		}
	}

	for k := range m.tris {
		if m.contains(k, p) {
			return k
		}
	}
	return -1
}

func (m *mesh) contains(k int, p image.Point) bool {
	t := &m.tris[k]
	for i := range 3 {
		a, b := t.edgeVertices(i)
		if orient(m.pts[a], m.pts[b], p) < 0 {
			return false
		}
	}
	return true
}

// insert adds vertex v to the triangulation.
func (m *mesh) insert(v int) {
	p := m.pts[v]
	k := m.locate(p)
	if k < 0 {
		return
	}
	t := &m.tris[k]

	onEdge := -1
	for i := range 3 {
		a, b := t.edgeVertices(i)
		if orient(m.pts[a], m.pts[b], p) == 0 {
			onEdge = i
			break
		}
	}

	var stack [][2]int
	if onEdge >= 0 {
		stack = m.splitEdge(k, onEdge, v, stack)
	} else {
		stack = m.split3(k, v, stack)
	}
	m.legalize(stack)
}

// split3 splits triangle k at the interior vertex v.  The returned stack
// lists the edges opposite v, for legalization.
func (m *mesh) split3(k, v int, stack [][2]int) [][2]int {
	old := m.tris[k]
	a, b, c := old.v[0], old.v[1], old.v[2]

	kb := len(m.tris)
	kc := kb + 1
	m.tris = append(m.tris, triangle{}, triangle{})

	m.setTriangle(k, triangle{
		v: [3]int{v, b, c},
		n: [3]int{old.n[0], kb, kc},
		c: [3]bool{old.c[0], false, false},
	})
	m.setTriangle(kb, triangle{
		v: [3]int{v, c, a},
		n: [3]int{old.n[1], kc, k},
		c: [3]bool{old.c[1], false, false},
	})
	m.setTriangle(kc, triangle{
		v: [3]int{v, a, b},
		n: [3]int{old.n[2], k, kb},
		c: [3]bool{old.c[2], false, false},
	})
	m.replaceNeighbor(old.n[1], c, a, kb)
	m.replaceNeighbor(old.n[2], a, b, kc)
	m.last = k

	return append(stack, [2]int{k, 0}, [2]int{kb, 0}, [2]int{kc, 0})
}

// splitEdge splits edge i of triangle k, and the triangle on the other
// side, at vertex v.
func (m *mesh) splitEdge(k, i, v int, stack [][2]int) [][2]int {
	t := m.tris[k]
	c := t.v[i]
	a, b := t.edgeVertices(i)
	ntA := t.n[(i+1)%3] // across (b, c)
	ntB := t.n[(i+2)%3] // across (c, a)
	cA := t.c[(i+1)%3]
	cB := t.c[(i+2)%3]
	cEdge := t.c[i]

	u := t.n[i]
	t2 := len(m.tris)
	m.tris = append(m.tris, triangle{})

	if u < 0 {
		m.setTriangle(k, triangle{
			v: [3]int{c, a, v},
			n: [3]int{-1, t2, ntB},
			c: [3]bool{cEdge, false, cB},
		})
		m.setTriangle(t2, triangle{
			v: [3]int{c, v, b},
			n: [3]int{-1, ntA, k},
			c: [3]bool{cEdge, cA, false},
		})
		m.replaceNeighbor(ntA, b, c, t2)
		m.last = k
		return append(stack, [2]int{k, 0}, [2]int{t2, 0})
	}

	ut := m.tris[u]
	j := ut.edgeIndex(a, b)
	d := ut.v[j]
	var nuA, nuB int // across (d, b) and (a, d)
	var cuA, cuB bool
	for l := range 3 {
		p, q := ut.edgeVertices(l)
		switch {
		case p == d && q == b:
			nuA, cuA = ut.n[l], ut.c[l]
		case p == a && q == d:
			nuB, cuB = ut.n[l], ut.c[l]
		}
	}
	u2 := len(m.tris)
	m.tris = append(m.tris, triangle{})

	m.setTriangle(k, triangle{
		v: [3]int{c, a, v},
		n: [3]int{u, t2, ntB},
		c: [3]bool{cEdge, false, cB},
	})
	m.setTriangle(t2, triangle{
		v: [3]int{c, v, b},
		n: [3]int{u2, ntA, k},
		c: [3]bool{cEdge, cA, false},
	})
	m.setTriangle(u, triangle{
		v: [3]int{d, v, a},
		n: [3]int{k, nuB, u2},
		c: [3]bool{cEdge, cuB, false},
	})
	m.setTriangle(u2, triangle{
		v: [3]int{d, b, v},
		n: [3]int{t2, u, nuA},
		c: [3]bool{cEdge, false, cuA},
	})
	m.replaceNeighbor(ntA, b, c, t2)
	m.replaceNeighbor(nuA, d, b, u2)
	m.last = k

	// edges opposite v
	return append(stack, [2]int{k, 2}, [2]int{t2, 1}, [2]int{u, 1}, [2]int{u2, 2})
}

// legalize flips edges until the triangles around the listed edges
// satisfy the empty circle property.  Each stack entry names a triangle
// and the index of an edge whose opposite vertex is the newly inserted
// one.
func (m *mesh) legalize(stack [][2]int) {
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		k, i := e[0], e[1]

		t := &m.tris[k]
		u := t.n[i]
		if u < 0 || t.c[i] {
			continue
		}
		a, b := t.edgeVertices(i)
		ut := &m.tris[u]
		q := ut.v[ut.edgeIndex(a, b)]
		if inCircle(m.pts[t.v[0]], m.pts[t.v[1]], m.pts[t.v[2]], m.pts[q]) <= 0 {
			continue
		}
		k1, k2 := m.flip(k, i)
		stack = append(stack, [2]int{k1, 0}, [2]int{k2, 2})
	}
}

// flip replaces the edge i of triangle k by the other diagonal of the
// quadrilateral formed with its neighbor.  With p = v[i] of triangle k
// and q the opposite vertex in the neighbor, the new triangles are
// (p, a, q) and (q, b, p), where (a, b) is the old edge.  Both indices
// are reused and returned in this order.
func (m *mesh) flip(k, i int) (int, int) {
	t := m.tris[k]
	p := t.v[i]
	a, b := t.edgeVertices(i)
	ntA, cA := t.n[(i+1)%3], t.c[(i+1)%3] // across (b, p)
	ntB, cB := t.n[(i+2)%3], t.c[(i+2)%3] // across (p, a)

	u := t.n[i]
	ut := m.tris[u]
	j := ut.edgeIndex(a, b)
	q := ut.v[j]
	var nuA, nuB int // across (q, b) and (a, q)
	var cuA, cuB bool
	for l := range 3 {
		x, y := ut.edgeVertices(l)
		switch {
		case x == q && y == b:
			nuA, cuA = ut.n[l], ut.c[l]
		case x == a && y == q:
			nuB, cuB = ut.n[l], ut.c[l]
		}
	}

	m.setTriangle(k, triangle{
		v: [3]int{p, a, q},
		n: [3]int{nuB, u, ntB},
		c: [3]bool{cuB, false, cB},
	})
	m.setTriangle(u, triangle{
		v: [3]int{q, b, p},
		n: [3]int{ntA, k, nuA},
		c: [3]bool{cA, false, cuA},
	})
	m.replaceNeighbor(nuB, a, q, k)
	m.replaceNeighbor(ntA, b, p, u)
	return k, u
}

// fan returns the triangles incident to vertex v.
func (m *mesh) fan(v int, dst []int) []int {
	start := m.vt[v]
	if start < 0 || m.tris[start].vertexIndex(v) < 0 {
		for k := range m.tris {
			if m.tris[k].vertexIndex(v) >= 0 {
				dst = append(dst, k)
			}
		}
		return dst
	}

	// rotate around v, crossing the edge (v, v[l+1])
	k := start
	for {
		dst = append(dst, k)
		t := &m.tris[k]
		l := t.vertexIndex(v)
		next := t.n[(l+2)%3] // across (v, v[l+1])
		if next < 0 || next == start {
			if next == start {
				return dst
			}
			break
		}
		k = next
	}

	// open fan: collect the other side
	k = start
	for {
		t := &m.tris[k]
		l := t.vertexIndex(v)
		next := t.n[(l+1)%3] // across (v[l+2], v)
		if next < 0 {
			return dst
		}
		dst = append(dst, next)
		k = next
	}
}

// findEdge returns a triangle and an edge index for the edge between
// vertices a and b, or ok == false if there is no such edge.
func (m *mesh) findEdge(a, b int) (k, i int, ok bool) {
	var buf [16]int
	for _, k := range m.fan(a, buf[:0]) {
		if i := m.tris[k].edgeIndex(a, b); i >= 0 {
			return k, i, true
		}
	}
	return 0, 0, false
}

// setConstrained marks the edge between a and b as constrained on both
// sides.  It reports whether the edge exists.
func (m *mesh) setConstrained(a, b int) bool {
	k, i, ok := m.findEdge(a, b)
	if !ok {
		return false
	}
	t := &m.tris[k]
	t.c[i] = true
	if u := t.n[i]; u >= 0 {
		ut := &m.tris[u]
		ut.c[ut.edgeIndex(a, b)] = true
	}
	return true
}
