package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so Normal has unit length. A zero normal is
// left unchanged.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance to point, positive on the
// side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is a view volume bounded by six inward-facing planes, ordered
// as the Frustum* constants.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the planes of a world-to-clip matrix
// (Gribb/Hartmann). Each plane is a sum or difference of the fourth row
// with one of the others, because a point is inside when -w ≤ x, y, z ≤ w.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	plane := func(v math3d.Vec4) Plane {
		p := Plane{Normal: math3d.V3(v.X, v.Y, v.Z), D: v.W}
		p.Normalize()
		return p
	}

	var f Frustum
	f.Planes[FrustumLeft] = plane(r3.Plus(r0))
	f.Planes[FrustumRight] = plane(r3.Minus(r0))
	f.Planes[FrustumBottom] = plane(r3.Plus(r1))
	f.Planes[FrustumTop] = plane(r3.Minus(r1))
	f.Planes[FrustumNear] = plane(r3.Plus(r2))
	f.Planes[FrustumFar] = plane(r3.Minus(r2))
	return f
}

// NewCameraFrustum returns the world-space view volume of cam seen
// through p.
func NewCameraFrustum(p Projection, cam Camera) Frustum {
	return NewFrustumFromMatrix(p.Matrix().Mul(cam.View))
}

// ContainsPoint reports whether p lies inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectAABB reports whether any part of box may be visible. For each
// plane only the corner furthest along the normal is tested; if even that
// corner is outside, the whole box is. The test is conservative: a box
// near a frustum corner can pass while still outside.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, pl := range f.Planes {
		far := math3d.V3(
			pick(pl.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(pl.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(pl.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if pl.DistanceToPoint(far) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// NewAABB creates a box from its corners.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the smallest box holding every point, or the zero box
// for no points.
func BoundsOf(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center returns the midpoint of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Plus(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Minus(b.Min)
}

// Transform returns the box bounding the eight transformed corners of b.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var corners [8]math3d.Vec3
	for i := range corners {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners[i] = m.MulVec3(c)
	}
	return BoundsOf(corners[:])
}

// ContainsPoint reports whether p lies inside b, borders included.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
