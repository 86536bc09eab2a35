package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/lumen/pkg/geometry"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Load reads a model by file extension (.obj, .glb or .gltf), cleans it and
// fits it into the cube [-1, 1]³.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = LoadGLB(path)
	default:
		return nil, fmt.Errorf("%s: %w %q (use .obj, .glb or .gltf)", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	mesh.Clean()
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s: no triangles: %w", path, geometry.ErrMalformedMesh)
	}
	mesh.Normalize()
	return mesh, nil
}
