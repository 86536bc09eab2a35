package models

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestMeshBaseColor(t *testing.T) {
	mesh := NewMesh("test")
	if got := mesh.BaseColor(); got != DefaultColor {
		t.Errorf("BaseColor() without materials = %v, want %v", got, DefaultColor)
	}

	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	if got := mesh.BaseColor(); got != math3d.V3(1, 0, 0) {
		t.Errorf("BaseColor() = %v, want the first material", got)
	}

	if mat := mesh.GetMaterial(1); mat == nil || mat.Name != "green" {
		t.Errorf("GetMaterial(1) should return 'green' material")
	}
	if mat := mesh.GetMaterial(-1); mat != nil {
		t.Errorf("GetMaterial(-1) should return nil")
	}
	if mat := mesh.GetMaterial(99); mat != nil {
		t.Errorf("GetMaterial(99) should return nil for out-of-bounds")
	}
}

// TestMeshClonePreservesMaterials verifies Clone copies materials.
func TestMeshClonePreservesMaterials(t *testing.T) {
	mesh := Cube(2)
	mesh.Materials = []Material{
		{Name: "mat1", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "mat2", BaseColor: [4]float64{0, 1, 0, 1}},
	}

	clone := mesh.Clone()

	if clone.MaterialCount() != mesh.MaterialCount() {
		t.Errorf("Clone should have %d materials, got %d", mesh.MaterialCount(), clone.MaterialCount())
	}

	// Verify buffers are copied, not shared
	clone.Materials[0].Name = "modified"
	clone.Positions[0] = 100
	clone.Indices[0] = 7
	if mesh.Materials[0].Name == "modified" {
		t.Errorf("Clone should have independent material copy")
	}
	if mesh.Positions[0] == 100 || mesh.Indices[0] == 7 {
		t.Errorf("Clone should have independent geometry")
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := NewMesh("tri")
	mesh.AddVertex(math3d.V3(-1, 0, 2))
	mesh.AddVertex(math3d.V3(3, 4, 2))
	mesh.AddVertex(math3d.V3(1, -2, 6))
	mesh.AddTriangle(0, 1, 2)
	mesh.CalculateBounds()

	if mesh.BoundsMin != math3d.V3(-1, -2, 2) || mesh.BoundsMax != math3d.V3(3, 4, 6) {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
	if got := mesh.Center(); got != math3d.V3(1, 1, 4) {
		t.Errorf("Center() = %v, want (1, 1, 4)", got)
	}
	if got := mesh.Size(); got != math3d.V3(4, 6, 4) {
		t.Errorf("Size() = %v, want (4, 6, 4)", got)
	}
}

func TestMeshNormalize(t *testing.T) {
	mesh := Cube(6)
	mesh.Transform(math3d.Translate(math3d.V3(10, -4, 3)))
	mesh.Normalize()

	if !mesh.Center().ApproxEqual(math3d.Vec3{}, 1e-12) {
		t.Errorf("center = %v, want origin", mesh.Center())
	}
	size := mesh.Size()
	if math.Abs(size.X-2) > 1e-12 || math.Abs(size.Y-2) > 1e-12 || math.Abs(size.Z-2) > 1e-12 {
		t.Errorf("size = %v, want (2, 2, 2)", size)
	}

	flat := NewMesh("point")
	flat.AddVertex(math3d.V3(5, 5, 5))
	flat.Normalize()
	if flat.Vertex(0) != math3d.V3(5, 5, 5) {
		t.Errorf("zero-extent mesh moved to %v", flat.Vertex(0))
	}
}

func TestMeshClean(t *testing.T) {
	mesh := NewMesh("dirty")
	for _, p := range []math3d.Vec3{
		math3d.V3(0, 0, 0), // 0
		math3d.V3(9, 9, 9), // 1, unused
		math3d.V3(1, 0, 0), // 2
		math3d.V3(0, 1, 0), // 3
		math3d.V3(2, 0, 0), // 4, only in degenerate triangles
	} {
		mesh.AddVertex(p)
	}
	mesh.AddTriangle(0, 2, 3)
	mesh.AddTriangle(0, 0, 3) // repeated index
	mesh.AddTriangle(0, 2, 4) // collinear

	tris, verts := mesh.Clean()
	if tris != 2 || verts != 2 {
		t.Errorf("removed %d triangles and %d vertices, want 2 and 2", tris, verts)
	}
	if mesh.TriangleCount() != 1 || mesh.VertexCount() != 3 {
		t.Fatalf("mesh has %d triangles and %d vertices", mesh.TriangleCount(), mesh.VertexCount())
	}

	want := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}
	for k, idx := range mesh.Indices {
		if got := mesh.Vertex(int(idx)); got != want[k] {
			t.Errorf("corner %d = %v, want %v", k, got, want[k])
		}
	}
}

func TestMeshGeometry(t *testing.T) {
	mesh := Cube(1)
	g := mesh.Geometry()
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.VertexCount() != mesh.VertexCount() || g.TriangleCount() != mesh.TriangleCount() {
		t.Errorf("geometry has %d vertices and %d triangles", g.VertexCount(), g.TriangleCount())
	}
}
