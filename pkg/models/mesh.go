// Package models provides mesh loading and simple primitives for Lumen.
package models

import (
	"math"
	"slices"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is a named triangle mesh with flat position and index buffers, in
// the layout the geometry pipeline consumes.
type Mesh struct {
	Name      string
	Positions []float64 // x, y, z per vertex
	Indices   []uint32  // three per triangle, counter-clockwise from outside
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Material is the subset of a glTF PBR material the renderer uses.
type Material struct {
	Name      string
	BaseColor [4]float64 // linear RGBA in 0-1 range
	Metallic  float64
	Roughness float64
}

// DefaultColor is the base color of meshes without a material.
var DefaultColor = math3d.V3(0.8, 0.8, 0.8)

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p math3d.Vec3) uint32 {
	m.Positions = append(m.Positions, p.X, p.Y, p.Z)
	return uint32(m.VertexCount() - 1)
}

// AddTriangle appends a triangle by vertex index.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return math3d.V3(m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2])
}

func (m *Mesh) setVertex(i int, p math3d.Vec3) {
	m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2] = p.X, p.Y, p.Z
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if m.VertexCount() == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertex(0)
	m.BoundsMax = m.BoundsMin
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Plus(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Minus(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.VertexCount() {
		m.setVertex(i, mat.MulVec3(m.Vertex(i)))
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest extent is 2, fitting it in the cube [-1, 1]³.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	size := m.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(2 / extent).Mul(math3d.Translate(m.Center().Negate())))
}

// Clean drops triangles that repeat a vertex or have zero area, then drops
// vertices no triangle references. It returns the number of triangles and
// vertices removed. Vertex normals are undefined for both, so loaders clean
// every mesh before handing it to the renderer.
func (m *Mesh) Clean() (triangles, vertices int) {
	kept := m.Indices[:0]
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Vertex(int(a)), m.Vertex(int(b)), m.Vertex(int(c))
		if a == b || b == c || a == c || pb.Minus(pa).Cross(pc.Minus(pa)).IsZero() {
			triangles++
			continue
		}
		kept = append(kept, a, b, c)
	}
	m.Indices = kept

	return triangles, m.compact()
}

// compact removes unreferenced vertices, preserving the order of the rest.
func (m *Mesh) compact() int {
	n := m.VertexCount()
	used := make([]bool, n)
	for _, i := range m.Indices {
		used[i] = true
	}

	remap := make([]uint32, n)
	next := 0
	for i := range n {
		if !used[i] {
			continue
		}
		remap[i] = uint32(next)
		if next != i {
			m.setVertex(next, m.Vertex(i))
		}
		next++
	}
	m.Positions = m.Positions[:3*next]
	for k, i := range m.Indices {
		m.Indices[k] = remap[i]
	}
	return n - next
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Positions: slices.Clone(m.Positions),
		Indices:   slices.Clone(m.Indices),
		Materials: slices.Clone(m.Materials),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}

// Geometry returns the mesh buffers for the geometry pipeline. The slices
// are shared, not copied.
func (m *Mesh) Geometry() geometry.Mesh {
	return geometry.Mesh{Positions: m.Positions, Indices: m.Indices}
}

// BaseColor returns the RGB base color of the first material, or
// DefaultColor when the mesh has none.
func (m *Mesh) BaseColor() math3d.Vec3 {
	if len(m.Materials) == 0 {
		return DefaultColor
	}
	c := m.Materials[0].BaseColor
	return math3d.V3(c[0], c[1], c[2])
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}
