package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLB loads a binary (.glb) or JSON (.gltf) glTF file. Every triangle
// primitive of every mesh in the document is merged into one Mesh; node
// transforms are not applied. Materials referenced by the primitives are
// kept in first-use order.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return fromDocument(doc, filepath.Base(path))
}

func fromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	seen := make(map[int]bool)

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh, seen); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh, seen map[int]bool) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("position accessor %d out of range", posIdx)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := uint32(mesh.VertexCount())
		for _, p := range positions {
			mesh.Positions = append(mesh.Positions, float64(p[0]), float64(p[1]), float64(p[2]))
		}

		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("index accessor %d out of range", *prim.Indices)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				for _, idx := range indices[i : i+3] {
					if int(idx) >= len(positions) {
						return fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
					}
				}
				mesh.AddTriangle(base+indices[i], base+indices[i+1], base+indices[i+2])
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				v := base + uint32(i)
				mesh.AddTriangle(v, v+1, v+2)
			}
		}

		if prim.Material != nil && !seen[*prim.Material] && *prim.Material < len(doc.Materials) {
			seen[*prim.Material] = true
			mesh.Materials = append(mesh.Materials, material(doc.Materials[*prim.Material]))
		}
	}

	return nil
}

func material(m *gltf.Material) Material {
	out := Material{
		Name:      m.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		out.BaseColor = pbr.BaseColorFactorOrDefault()
		out.Metallic = pbr.MetallicFactorOrDefault()
		out.Roughness = pbr.RoughnessFactorOrDefault()
	}
	return out
}
