package models

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Cube returns an axis-aligned cube with the given edge length centered on
// the origin. Each face has its own four vertices so faces shade flat.
func Cube(size float64) *Mesh {
	m := NewMesh("cube")
	h := size / 2

	// Outward normal n and tangents u, v with u × v = n, so the corners
	// below wind counter-clockwise seen from outside.
	faces := [6][3]math3d.Vec3{
		{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), math3d.V3(1, 0, 0)},
		{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 0, -1), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0)},
	}
	for _, f := range faces {
		n, u, v := f[0].Scale(h), f[1].Scale(h), f[2].Scale(h)
		a := m.AddVertex(n.Minus(u).Minus(v))
		b := m.AddVertex(n.Plus(u).Minus(v))
		c := m.AddVertex(n.Plus(u).Plus(v))
		d := m.AddVertex(n.Minus(u).Plus(v))
		m.AddTriangle(a, b, c)
		m.AddTriangle(a, c, d)
	}

	m.CalculateBounds()
	return m
}

// Icosphere returns a unit sphere built by subdividing an icosahedron.
// Each subdivision splits every triangle into four; 0 gives the
// icosahedron itself (12 vertices, 20 faces).
func Icosphere(subdivisions int) *Mesh {
	m := NewMesh("icosphere")
	t := (1 + math.Sqrt(5)) / 2

	for _, p := range []math3d.Vec3{
		math3d.V3(-1, t, 0), math3d.V3(1, t, 0), math3d.V3(-1, -t, 0), math3d.V3(1, -t, 0),
		math3d.V3(0, -1, t), math3d.V3(0, 1, t), math3d.V3(0, -1, -t), math3d.V3(0, 1, -t),
		math3d.V3(t, 0, -1), math3d.V3(t, 0, 1), math3d.V3(-t, 0, -1), math3d.V3(-t, 0, 1),
	} {
		m.AddVertex(p.Normalize())
	}
	m.Indices = []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for range max(subdivisions, 0) {
		mid := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if i, ok := mid[key]; ok {
				return i
			}
			i := m.AddVertex(m.Vertex(int(a)).Plus(m.Vertex(int(b))).Normalize())
			mid[key] = i
			return i
		}

		old := m.Indices
		m.Indices = make([]uint32, 0, 4*len(old))
		for k := 0; k+2 < len(old); k += 3 {
			a, b, c := old[k], old[k+1], old[k+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			m.AddTriangle(a, ab, ca)
			m.AddTriangle(b, bc, ab)
			m.AddTriangle(c, ca, bc)
			m.AddTriangle(ab, bc, ca)
		}
	}

	m.CalculateBounds()
	return m
}
