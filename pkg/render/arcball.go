package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Arcball turns cursor drags into rotations by mapping the cursor onto a
// virtual unit sphere centered on the viewport.
type Arcball struct {
	Width, Height int

	start    math3d.Vec3
	dragging bool
}

// NewArcball creates an arcball for a viewport of the given pixel size.
func NewArcball(width, height int) *Arcball {
	return &Arcball{Width: width, Height: height}
}

// Normalize maps pixel coordinates (origin top-left, y down) to [-1, 1]
// with y up. The shorter side spans the unit disc so the sphere stays round.
func (a *Arcball) Normalize(x, y float64) (float64, float64) {
	r := float64(min(a.Width, a.Height)) / 2
	if r <= 0 {
		return 0, 0
	}
	return (x - float64(a.Width)/2) / r, (float64(a.Height)/2 - y) / r
}

// SpherePoint maps normalized cursor coordinates onto the unit sphere.
// Inside the unit disc the point is lifted to z = sqrt(1 - x² - y²);
// outside it is projected onto the rim.
func SpherePoint(x, y float64) math3d.Vec3 {
	d := x*x + y*y
	if d <= 1 {
		return math3d.V3(x, y, math.Sqrt(1-d))
	}
	return math3d.V3(x, y, 0).Normalize()
}

// ArcRotation returns the rotation that carries sphere point p0 to p1.
// ok is false when the points coincide or are antipodal.
func ArcRotation(p0, p1 math3d.Vec3) (axis math3d.Vec3, angle float64, ok bool) {
	axis = p0.Cross(p1)
	if axis.LenSq() < 1e-18 {
		return math3d.Vec3{}, 0, false
	}
	dot := math.Max(-1, math.Min(1, p0.Dot(p1)))
	return axis.Normalize(), math.Acos(dot), true
}

// Begin starts a drag at pixel (x, y).
func (a *Arcball) Begin(x, y float64) {
	a.start = SpherePoint(a.Normalize(x, y))
	a.dragging = true
}

// Dragging reports whether a drag is in progress.
func (a *Arcball) Dragging() bool {
	return a.dragging
}

// Drag moves the cursor to pixel (x, y) and returns the incremental
// rotation since the previous call, in viewer space (x right, y up, z
// toward the viewer).
func (a *Arcball) Drag(x, y float64) (axis math3d.Vec3, angle float64, ok bool) {
	if !a.dragging {
		return math3d.Vec3{}, 0, false
	}
	p := SpherePoint(a.Normalize(x, y))
	axis, angle, ok = ArcRotation(a.start, p)
	a.start = p
	return axis, angle, ok
}

// End finishes the current drag.
func (a *Arcball) End() {
	a.dragging = false
}

// OrbitCamera applies a viewer-space arcball rotation to the camera so the
// scene appears to turn by angle about axis.
func OrbitCamera(c Camera, axis math3d.Vec3, angle float64) Camera {
	world := c.ViewToWorld(axis)
	return c.Orbit(math3d.Rotate(world, -angle))
}
