package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Camera is a look-at camera. It is immutable: moving the eye builds a new
// Camera so View and InverseView always agree with Eye, Center and Up.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	View        math3d.Mat4 // world -> eye
	InverseView math3d.Mat4 // eye -> world
}

// NewCamera creates a camera at eye looking at center.
func NewCamera(eye, center, up math3d.Vec3) Camera {
	return Camera{
		Eye:         eye,
		Center:      center,
		Up:          up,
		View:        math3d.LookAt(eye, center, up),
		InverseView: math3d.InverseLookAt(eye, center, up),
	}
}

// Distance returns the distance from the eye to the center.
func (c Camera) Distance() float64 {
	return c.Eye.Distance(c.Center)
}

// Orbit rotates the eye (and the up vector with it) about the center.
func (c Camera) Orbit(rotation math3d.Mat4) Camera {
	offset := rotation.MulVec3Dir(c.Eye.Minus(c.Center))
	up := rotation.MulVec3Dir(c.Up).Normalize()
	return NewCamera(c.Center.Plus(offset), c.Center, up)
}

// WithDistance moves the eye along its current line of sight so that it
// sits d units from the center.
func (c Camera) WithDistance(d float64) Camera {
	dir := c.Eye.Minus(c.Center)
	if dir.IsZero() {
		dir = math3d.V3(0, 0, 1)
	}
	return NewCamera(c.Center.Plus(dir.Normalize().Scale(d)), c.Center, c.Up)
}

// ViewToWorld maps a direction given in viewer terms (x to the right of the
// screen, y up, z toward the viewer) to world space.
func (c Camera) ViewToWorld(dir math3d.Vec3) math3d.Vec3 {
	// Eye-space x points to the viewer's left.
	return c.InverseView.MulVec3Dir(math3d.V3(-dir.X, dir.Y, dir.Z))
}

// Projection holds the parameters of a symmetric perspective frustum.
type Projection struct {
	FOV    float64 // Vertical field of view in radians
	Aspect float64 // Width / Height
	Near   float64 // Near clipping plane
	Far    float64 // Far clipping plane
}

// DefaultProjection returns a 60° projection for the given aspect ratio.
func DefaultProjection(aspect float64) Projection {
	return Projection{
		FOV:    math.Pi / 3,
		Aspect: aspect,
		Near:   0.1,
		Far:    100,
	}
}

// Matrix returns the eye-to-clip matrix.
func (p Projection) Matrix() math3d.Mat4 {
	return math3d.Perspective(p.FOV, p.Aspect, p.Near, p.Far)
}
