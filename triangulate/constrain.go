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

import "image"

// constrain forces the segment between vertices a and b to be an edge of
// the mesh and marks it as constrained.  If other vertices lie on the
// segment, the pieces between them are constrained instead.  The result
// is false if the segment crosses an edge which is already constrained,
// or if the edge could not be recovered.
func (m *mesh) constrain(a, b int) bool {
	if a == b {
		return true
	}
	if m.setConstrained(a, b) {
		return true
	}

	crossed, via, ok := m.crossedEdges(a, b)
	if !ok {
		return false
	}
	if via >= 0 {
		return m.constrain(a, via) && m.constrain(via, b)
	}

	pa, pb := m.pts[a], m.pts[b]
	queue := crossed
	var created [][2]int
	limit := 8*len(crossed)*len(crossed) + 64
	for n := 0; len(queue) > 0; n++ {
		if n > limit {
			return false
		}
		e := queue[0]
		queue = queue[1:]

		k, i, found := m.findEdge(e[0], e[1])
		if !found {
			continue
		}
		t := &m.tris[k]
		u := t.n[i]
		if u < 0 {
			return false
		}
		p := t.v[i]
		ut := &m.tris[u]
		q := ut.v[ut.edgeIndex(e[0], e[1])]
		pp, pq := m.pts[p], m.pts[q]

		// only flip if the quadrilateral is strictly convex
		if sign(orient(pp, pq, m.pts[e[0]]))*sign(orient(pp, pq, m.pts[e[1]])) >= 0 {
			queue = append(queue, e)
			continue
		}
		m.flip(k, i)
		if crossesProperly(pp, pq, pa, pb) {
			queue = append(queue, [2]int{p, q})
		} else {
			created = append(created, [2]int{p, q})
		}
	}

	if !m.setConstrained(a, b) {
		return false
	}
	m.restoreDelaunay(created)
	return true
}

// crossedEdges lists the edges crossed by the segment from vertex a to
// vertex b, in order.  If the segment passes through another vertex, the
// list is empty and via is set to the first such vertex.
func (m *mesh) crossedEdges(a, b int) (crossed [][2]int, via int, ok bool) {
	pa, pb := m.pts[a], m.pts[b]

	// find the triangle at a whose interior contains the start of the
	// segment
	k, x, y := -1, 0, 0
	var buf [16]int
	for _, t := range m.fan(a, buf[:0]) {
		tr := &m.tris[t]
		l := tr.vertexIndex(a)
		vx, vy := tr.v[(l+1)%3], tr.v[(l+2)%3]
		ox := orient(pa, m.pts[vx], pb)
		oy := orient(pa, m.pts[vy], pb)
		if ox == 0 && ahead(pa, m.pts[vx], pb) {
			return nil, vx, true
		}
		if oy == 0 && ahead(pa, m.pts[vy], pb) {
			return nil, vy, true
		}
		if ox > 0 && oy < 0 {
			k, x, y = t, vx, vy
			break
		}
	}
	if k < 0 {
		return nil, -1, false
	}

	for range len(m.tris) + 1 {
		t := &m.tris[k]
		i := t.edgeIndex(x, y)
		if t.c[i] {
			return nil, -1, false
		}
		crossed = append(crossed, [2]int{x, y})

		u := t.n[i]
		if u < 0 {
			return nil, -1, false
		}
		ut := &m.tris[u]
		z := ut.v[ut.edgeIndex(x, y)]
		if z == b {
			return crossed, -1, true
		}
		oz := sign(orient(pa, pb, m.pts[z]))
		if oz == 0 {
			return nil, z, true
		}
		if sign(orient(pa, pb, m.pts[x])) == oz {
			x = z
		} else {
			y = z
		}
		k = u
	}
	return nil, -1, false
}

// ahead reports whether p lies on the same side of a as b, for three
// collinear points.
func ahead(a, p, b image.Point) bool {
	dx1, dy1 := int64(p.X-a.X), int64(p.Y-a.Y)
	dx2, dy2 := int64(b.X-a.X), int64(b.Y-a.Y)
	return dx1*dx2+dy1*dy2 > 0
}

// restoreDelaunay flips the given unconstrained edges, and the edges
// created by these flips, until they are locally Delaunay.
func (m *mesh) restoreDelaunay(edges [][2]int) {
	limit := 4*len(edges)*len(edges) + 16
	for changed := true; changed && limit > 0; {
		changed = false
		for idx, e := range edges {
			k, i, found := m.findEdge(e[0], e[1])
			if !found {
				continue
			}
			t := &m.tris[k]
			u := t.n[i]
			if u < 0 || t.c[i] {
				continue
			}
			ut := &m.tris[u]
			q := ut.v[ut.edgeIndex(e[0], e[1])]
			if inCircle(m.pts[t.v[0]], m.pts[t.v[1]], m.pts[t.v[2]], m.pts[q]) <= 0 {
				continue
			}
			p := t.v[i]
			m.flip(k, i)
			edges[idx] = [2]int{p, q}
			changed = true
			limit--
		}
	}
}
