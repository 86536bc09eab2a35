// Package render turns eye-space triangles into shaded pixels: projection,
// edge-function rasterization with perspective-correct interpolation, depth
// resolution and Phong lighting, plus the framebuffer and terminal output.
package render

import (
	"context"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/parallel"
)

// Rasterizer converts eye-space triangles into fragments for a device of
// Width x Height pixels. Device space has its origin at the bottom-left
// pixel corner and y up.
type Rasterizer struct {
	Width, Height int
	Projection    math3d.Mat4
}

// DeviceVertex is a projected vertex: pixel position, the reciprocal depth
// used for perspective-correct interpolation, and the clip-space position
// kept for culling.
type DeviceVertex struct {
	X, Y float64
	Z    float64 // -1 / eye z
	Clip math3d.Vec4
}

// Attribute is a value that can be blended across a triangle.
type Attribute[T any] interface {
	Plus(T) T
	Scale(float64) T
}

// Primitive is a projected triangle with one attribute per corner.
type Primitive[T Attribute[T]] struct {
	V    [3]DeviceVertex
	Attr [3]T
}

// Fragment is one covered pixel with its eye-space depth (a positive
// distance along the view axis) and interpolated attribute.
type Fragment[T any] struct {
	X, Y  int
	Depth float64
	Attr  T
}

// Project maps an eye-space position to device space.
func (r *Rasterizer) Project(eye math3d.Vec4) DeviceVertex {
	clip := r.Projection.MulVec4(eye)
	ndc := clip.PerspectiveDivide()
	return DeviceVertex{
		X:    (ndc.X + 1) * 0.5 * float64(r.Width),
		Y:    (ndc.Y + 1) * 0.5 * float64(r.Height),
		Z:    -1 / eye.Z,
		Clip: clip,
	}
}

// Culled reports whether a triangle must be dropped before rasterization:
// a corner at or behind the eye plane, or all three corners outside the
// same clip plane. Triangles are never clipped.
func Culled(eye [3]math3d.Vec4, dv [3]DeviceVertex) bool {
	for _, e := range eye {
		if e.Z >= 0 {
			return true
		}
	}

	var outside [6]int
	for _, v := range dv {
		c := v.Clip
		if c.X < -c.W {
			outside[0]++
		}
		if c.X > c.W {
			outside[1]++
		}
		if c.Y < -c.W {
			outside[2]++
		}
		if c.Y > c.W {
			outside[3]++
		}
		if c.Z < -c.W {
			outside[4]++
		}
		if c.Z > c.W {
			outside[5]++
		}
	}
	for _, n := range outside {
		if n == 3 {
			return true
		}
	}
	return false
}

// edgeFunction is the signed-area test
// E(a, b, c) = (c.x-a.x)(b.y-a.y) - (c.y-a.y)(b.x-a.x)
// written as A*x + B*y + C for fixed a and b.
type edgeFunction struct {
	A, B, C float64
	owner   bool // pixels exactly on the edge belong to this triangle
}

func newEdge(ax, ay, bx, by float64) edgeFunction {
	dx, dy := bx-ax, by-ay
	return edgeFunction{
		A:     dy,
		B:     -dx,
		C:     bx*ay - ax*by,
		owner: dy > 0 || (dy == 0 && dx < 0),
	}
}

// covers applies the fill rule to an edge value.
func (e edgeFunction) covers(w float64) bool {
	return w > 0 || (w == 0 && e.owner)
}

func edge(a, b, c math3d.Vec2) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// Area returns the signed edge-function area of the projected triangle.
// It is positive for the winding the rasterizer draws.
func (p Primitive[T]) Area() float64 {
	return edge(
		math3d.V2(p.V[0].X, p.V[0].Y),
		math3d.V2(p.V[1].X, p.V[1].Y),
		math3d.V2(p.V[2].X, p.V[2].Y),
	)
}

// Barycentric returns the barycentric weights of p in triangle (a, b, c).
// ok is false when the triangle has non-positive area or p lies outside it.
// Points on an edge count as inside.
func Barycentric(a, b, c, p math3d.Vec2) (math3d.Vec3, bool) {
	area := edge(a, b, c)
	if !(area > 0) {
		return math3d.Vec3{}, false
	}
	w0, w1, w2 := edge(b, c, p), edge(c, a, p), edge(a, b, p)
	if w0 < 0 || w1 < 0 || w2 < 0 {
		return math3d.Vec3{}, false
	}
	return math3d.V3(w0/area, w1/area, w2/area), true
}

// Rasterize emits one fragment per pixel center covered by p. Triangles
// with non-positive area emit nothing. Depth and attributes are
// interpolated perspective-correctly from the corners' reciprocal depths.
func Rasterize[T Attribute[T]](r *Rasterizer, p Primitive[T], emit func(Fragment[T])) {
	v0, v1, v2 := p.V[0], p.V[1], p.V[2]

	area := p.Area()
	if !(area > 0) {
		return
	}

	// Bounding box, clamped to the screen in float64 before converting so
	// huge coordinates near the eye plane cannot overflow int.
	loX, hiX := math.Floor(min3(v0.X, v1.X, v2.X)), math.Ceil(max3(v0.X, v1.X, v2.X))
	loY, hiY := math.Floor(min3(v0.Y, v1.Y, v2.Y)), math.Ceil(max3(v0.Y, v1.Y, v2.Y))
	if hiX < 0 || hiY < 0 || loX > float64(r.Width-1) || loY > float64(r.Height-1) {
		return
	}
	minX, maxX := clampIndex(loX, r.Width), clampIndex(hiX, r.Width)
	minY, maxY := clampIndex(loY, r.Height), clampIndex(hiY, r.Height)

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	e0 := newEdge(v1.X, v1.Y, v2.X, v2.Y)
	e1 := newEdge(v2.X, v2.Y, v0.X, v0.Y)
	e2 := newEdge(v0.X, v0.Y, v1.X, v1.Y)

	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5

		// Per-row terms; each pixel then costs one multiply-add per edge.
		// Evaluating from the coefficients (rather than accumulating) keeps
		// a shared edge bit-identical in both of its triangles.
		r0 := e0.B*py + e0.C
		r1 := e1.B*py + e1.C
		r2 := e2.B*py + e2.C

		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := e0.A*px + r0
			w1 := e1.A*px + r1
			w2 := e2.A*px + r2
			if !e0.covers(w0) || !e1.covers(w1) || !e2.covers(w2) {
				continue
			}

			// Barycentric weights scaled by each corner's reciprocal depth.
			z0 := w0 * invArea * v0.Z
			z1 := w1 * invArea * v1.Z
			z2 := w2 * invArea * v2.Z
			depth := 1 / (z0 + z1 + z2)

			attr := p.Attr[0].Scale(z0).Plus(p.Attr[1].Scale(z1)).Plus(p.Attr[2].Scale(z2)).Scale(depth)
			emit(Fragment[T]{X: x, Y: y, Depth: depth, Attr: attr})
		}
	}
}

// RasterizeAll rasterizes every primitive on the pool. Result i holds the
// fragments of prims[i]; no state is shared between triangles.
func RasterizeAll[T Attribute[T]](ctx context.Context, pool *parallel.Pool, r *Rasterizer, prims []Primitive[T]) ([][]Fragment[T], error) {
	out := make([][]Fragment[T], len(prims))
	err := pool.For(ctx, len(prims), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			var frags []Fragment[T]
			Rasterize(r, prims[i], func(f Fragment[T]) {
				frags = append(frags, f)
			})
			out[i] = frags
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// clampIndex clamps v to [0, n) and converts it to int.
func clampIndex(v float64, n int) int {
	return int(math.Max(0, math.Min(v, float64(n-1))))
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
