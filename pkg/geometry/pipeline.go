package geometry

import (
	"cmp"
	"context"
	"slices"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/parallel"
)

// Adjacency lists, per vertex, the ordered pairs of the other two corners
// of every triangle that uses it.
type Adjacency [][][2]int

// ObjectVertices extracts object-space vertices (w = 1) from a flat xyz
// buffer. Extraction runs on the pool; the result is in buffer order.
func ObjectVertices(ctx context.Context, pool *parallel.Pool, positions []float64) ([]Vertex, error) {
	if len(positions)%3 != 0 {
		return nil, malformed("%d position values is not a multiple of 3", len(positions))
	}

	verts, err := parallel.Collect(ctx, pool, len(positions)/3, func(lo, hi int) ([]Vertex, error) {
		out := make([]Vertex, 0, hi-lo)
		for i := lo; i < hi; i++ {
			p := positions[i*3 : i*3+3]
			out = append(out, Vertex{Position: math3d.V4(p[0], p[1], p[2], 1), Index: i})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	// Chunks finish in any order.
	slices.SortFunc(verts, func(a, b Vertex) int { return cmp.Compare(a.Index, b.Index) })
	return verts, nil
}

// BuildAdjacency records, for triangle (a, b, c), the pair (b, c) on a,
// (c, a) on b and (a, b) on c. Each pair keeps the triangle's winding.
func BuildAdjacency(indices []uint32, vertexCount int) (Adjacency, error) {
	if len(indices)%3 != 0 {
		return nil, malformed("%d indices is not a multiple of 3", len(indices))
	}

	adj := make(Adjacency, vertexCount)
	for t := 0; t < len(indices); t += 3 {
		a, b, c := int(indices[t]), int(indices[t+1]), int(indices[t+2])
		for _, idx := range [3]int{a, b, c} {
			if idx >= vertexCount {
				return nil, malformed("index %d out of range for %d vertices", idx, vertexCount)
			}
		}
		adj[a] = append(adj[a], [2]int{b, c})
		adj[b] = append(adj[b], [2]int{c, a})
		adj[c] = append(adj[c], [2]int{a, b})
	}
	return adj, nil
}

// VertexNormals computes one smooth normal per vertex: the normalized sum
// of the unit face normals of every adjacent triangle. Zero-area
// contributions are skipped. A vertex with no usable contribution yields a
// *DegenerateError instead of a NaN normal.
func VertexNormals(ctx context.Context, pool *parallel.Pool, vertices []Vertex, adj Adjacency) ([]Normal, error) {
	if len(adj) != len(vertices) {
		return nil, malformed("adjacency for %d vertices, have %d", len(adj), len(vertices))
	}

	normals := make([]Normal, len(vertices))
	err := pool.For(ctx, len(vertices), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			n, err := vertexNormal(vertices, adj, i)
			if err != nil {
				return err
			}
			normals[i] = Normal{Vec: math3d.V4FromV3(n, 0), VertexIndex: vertices[i].Index}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return normals, nil
}

func vertexNormal(vertices []Vertex, adj Adjacency, i int) (math3d.Vec3, error) {
	if len(adj[i]) == 0 {
		return math3d.Vec3{}, &DegenerateError{Vertex: i, Reason: "not used by any triangle"}
	}

	p := vertices[i].Position.PerspectiveDivide().Vec3()
	var sum math3d.Vec3
	for _, pair := range adj[i] {
		a := vertices[pair[0]].Position.PerspectiveDivide().Vec3()
		b := vertices[pair[1]].Position.PerspectiveDivide().Vec3()

		c := a.Minus(p).Cross(b.Minus(p))
		if c.IsZero() {
			continue
		}
		sum = sum.Plus(c.Normalize())
	}

	if sum.IsZero() {
		return math3d.Vec3{}, &DegenerateError{Vertex: i, Reason: "adjacent face normals sum to zero"}
	}
	return sum.Normalize(), nil
}

// ToWorld transforms object-space vertices by the model matrix.
func ToWorld(ctx context.Context, pool *parallel.Pool, vertices []Vertex, model math3d.Mat4) ([]Vertex, error) {
	return parallel.Map(ctx, pool, vertices, func(v Vertex) Vertex {
		return Vertex{Position: model.MulVec4(v.Position), Index: v.Index}
	})
}

// ToEye transforms world-space vertices by the view matrix and divides by
// w, so every eye-space position has w = 1.
func ToEye(ctx context.Context, pool *parallel.Pool, vertices []Vertex, view math3d.Mat4) ([]Vertex, error) {
	return parallel.Map(ctx, pool, vertices, func(v Vertex) Vertex {
		return Vertex{Position: view.MulVec4(v.Position).PerspectiveDivide(), Index: v.Index}
	})
}

// TransformNormals maps normals through the inverse-transpose of m's
// upper 3x3 block and renormalizes them. Translation never applies and w
// stays 0. A singular m returns math3d.ErrSingular.
func TransformNormals(ctx context.Context, pool *parallel.Pool, normals []Normal, m math3d.Mat4) ([]Normal, error) {
	nm, err := m.NormalMatrix()
	if err != nil {
		return nil, err
	}
	return parallel.Map(ctx, pool, normals, func(n Normal) Normal {
		v := nm.MulVec3(n.Vec.Vec3()).Normalize()
		return Normal{Vec: math3d.V4FromV3(v, 0), VertexIndex: n.VertexIndex}
	})
}
