package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Material describes how a surface reflects light. Colors are linear RGB
// in [0, 1].
type Material struct {
	Ambient    math3d.Vec3
	Diffuse    math3d.Vec3
	Reflection math3d.Vec3 // specular color
	Shininess  float64
}

// DefaultMaterial returns a plastic-looking material with the given base
// color.
func DefaultMaterial(base math3d.Vec3) Material {
	return Material{
		Ambient:    base.Scale(0.2),
		Diffuse:    base,
		Reflection: math3d.V3(0.5, 0.5, 0.5),
		Shininess:  32,
	}
}

// Light is a white-ish point light.
type Light struct {
	Position math3d.Vec3 // world space
	Ambient  math3d.Vec3
	Diffuse  math3d.Vec3
}

// DefaultLight returns a light above and to the right of the viewer.
func DefaultLight() Light {
	return Light{
		Position: math3d.V3(5, 8, 10),
		Ambient:  math3d.V3(1, 1, 1),
		Diffuse:  math3d.V3(1, 1, 1),
	}
}

// Phong evaluates the Phong reflection model. normal, toLight and toView
// must be unit vectors.
func Phong(normal, toLight, toView math3d.Vec3, m Material, l Light) math3d.Vec3 {
	reflected := toLight.Negate().Reflect(normal)
	diffuse := math.Max(0, normal.Dot(toLight))
	specular := pow0(math.Max(0, reflected.Dot(toView)), m.Shininess)

	lit := m.Diffuse.Scale(diffuse).Plus(m.Reflection.Scale(specular)).Mul(l.Diffuse)
	return lit.Plus(m.Ambient.Mul(l.Ambient))
}

// pow0 is math.Pow with 0^e defined as 0 for every e.
func pow0(base, exp float64) float64 {
	if base == 0 {
		return 0
	}
	return math.Pow(base, exp)
}

// Surface is the per-fragment attribute for Phong shading: an eye-space
// normal and position.
type Surface struct {
	Normal   math3d.Vec3
	Position math3d.Vec3
}

// Plus returns the component-wise sum.
func (s Surface) Plus(o Surface) Surface {
	return Surface{Normal: s.Normal.Plus(o.Normal), Position: s.Position.Plus(o.Position)}
}

// Scale scales both components.
func (s Surface) Scale(f float64) Surface {
	return Surface{Normal: s.Normal.Scale(f), Position: s.Position.Scale(f)}
}

// ShadeSurface lights an eye-space surface point. The eye sits at the
// origin, so the view direction is the negated position.
func ShadeSurface(s Surface, lightEye math3d.Vec3, m Material, l Light) math3d.Vec3 {
	n := s.Normal.Normalize()
	toLight := lightEye.Minus(s.Position).Normalize()
	toView := s.Position.Negate().Normalize()
	return Phong(n, toLight, toView, m, l)
}

// ToRGB clamps a linear color to [0, 1] and quantizes it to 8 bits per
// channel, rounding to nearest. NaN channels become 0.
func ToRGB(c math3d.Vec3) color.RGBA {
	return color.RGBA{R: quantize(c.X), G: quantize(c.Y), B: quantize(c.Z), A: 255}
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ShadingMode selects how the renderer lights triangles.
type ShadingMode int

const (
	ShadingPhong     ShadingMode = iota // per-fragment lighting
	ShadingGouraud                      // per-vertex lighting, interpolated colors
	ShadingWireframe                    // triangle edges only
)

var shadingNames = [...]string{"phong", "gouraud", "wireframe"}

func (m ShadingMode) String() string {
	if m < 0 || int(m) >= len(shadingNames) {
		return fmt.Sprintf("ShadingMode(%d)", int(m))
	}
	return shadingNames[m]
}

// ParseShadingMode parses a mode name, ignoring case.
func ParseShadingMode(s string) (ShadingMode, error) {
	for i, name := range shadingNames {
		if strings.EqualFold(s, name) {
			return ShadingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shading mode %q (want phong, gouraud or wireframe)", s)
}

// Toggle switches between Phong and Gouraud. Wireframe goes back to Phong.
func (m ShadingMode) Toggle() ShadingMode {
	if m == ShadingPhong {
		return ShadingGouraud
	}
	return ShadingPhong
}
