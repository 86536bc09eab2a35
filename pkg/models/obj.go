package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads OBJ geometry from r. Only "v" and "f" statements are
// used; polygons are fan-triangulated and negative (relative) indices are
// supported. Normals, texture coordinates and material libraries are
// ignored. Malformed statements wrap geometry.ErrMalformedMesh.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, line, err)
			}
			mesh.AddVertex(p)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices: %w", name, line, geometry.ErrMalformedMesh)
			}
			idx := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := parseIndex(ref, mesh.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, line, err)
				}
				idx = append(idx, i)
			}
			for k := 1; k+1 < len(idx); k++ {
				mesh.AddTriangle(idx[0], idx[k], idx[k+1])
			}

		case "o":
			if len(fields) > 1 && mesh.Name == name {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d: %w", len(fields), geometry.ErrMalformedMesh)
	}
	var c [4]float64
	c[3] = 1
	for i := 0; i < len(fields) && i < 4; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("bad coordinate %q: %w", fields[i], geometry.ErrMalformedMesh)
		}
		c[i] = v
	}
	if c[3] == 0 {
		return math3d.Vec3{}, fmt.Errorf("vertex weight is zero: %w", geometry.ErrMalformedMesh)
	}
	return math3d.V3(c[0]/c[3], c[1]/c[3], c[2]/c[3]), nil
}

// parseIndex resolves the position part of a face reference ("7",
// "7/2", "7//4", "-1") to a zero-based index.
func parseIndex(ref string, count int) (uint32, error) {
	pos, _, _ := strings.Cut(ref, "/")
	i, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %w", ref, geometry.ErrMalformedMesh)
	}

	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("face index 0 is invalid: %w", geometry.ErrMalformedMesh)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("face index %q out of range for %d vertices: %w", ref, count, geometry.ErrMalformedMesh)
	}
	return uint32(i), nil
}
