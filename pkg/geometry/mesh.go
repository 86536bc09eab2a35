// Package geometry turns raw triangle meshes into the per-stage vertex and
// normal collections the rasterizer consumes.
//
// Every stage returns a new slice and leaves its input untouched, so the
// object-space results can be computed once and reused every frame.
package geometry

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is the raw input: flat xyz positions and triangle vertex indices,
// both with stride 3. Triangles wind counter-clockwise when seen from the
// side their normal points to.
type Mesh struct {
	Positions []float64
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that both buffers have stride 3 and that every index
// refers to an existing vertex.
func (m Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return malformed("%d position values is not a multiple of 3", len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return malformed("%d indices is not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return malformed("index %d at %d out of range for %d vertices", idx, i, n)
		}
	}
	return nil
}

// Vertex is a homogeneous position plus the index of the mesh vertex it
// came from.
type Vertex struct {
	Position math3d.Vec4
	Index    int
}

// Normal is a unit direction (w = 0) for the mesh vertex VertexIndex.
type Normal struct {
	Vec         math3d.Vec4
	VertexIndex int
}

// Corner pairs a vertex with its normal. Both point into stage slices that
// the triangle does not own.
type Corner struct {
	Vertex *Vertex
	Normal *Normal
}

// Triangle is three corners in winding order.
type Triangle struct {
	Corners [3]Corner
}

// Triangles builds triangles over the given stage slices. vertices and
// normals must be indexed by mesh vertex (as the stage functions return
// them).
func Triangles(indices []uint32, vertices []Vertex, normals []Normal) ([]Triangle, error) {
	if len(indices)%3 != 0 {
		return nil, malformed("%d indices is not a multiple of 3", len(indices))
	}
	if len(normals) != len(vertices) {
		return nil, malformed("%d normals for %d vertices", len(normals), len(vertices))
	}

	tris := make([]Triangle, len(indices)/3)
	for t := range tris {
		for c := range 3 {
			idx := int(indices[t*3+c])
			if idx >= len(vertices) {
				return nil, malformed("index %d out of range for %d vertices", idx, len(vertices))
			}
			tris[t].Corners[c] = Corner{Vertex: &vertices[idx], Normal: &normals[idx]}
		}
	}
	return tris, nil
}
