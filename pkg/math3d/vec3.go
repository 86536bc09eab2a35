// Package math3d provides the fixed-size vectors and matrices used by the
// lumen rendering pipeline.
//
// Vectors carry an orientation flag: a zero Transposed value is a column
// vector, a set flag is a row vector. Operations whose result depends on
// shape compatibility (Add, Sub) check it and report a
// *DimensionMismatchError; the unchecked Plus and Minus are meant for the
// pipeline's own column vectors.
package math3d

import "math"

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z    float64
	Transposed bool
}

// V3 creates a new column Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return V3(0, 1, 0)
}

// Shape returns (rows, cols): (3, 1) for a column vector, (1, 3) for a row vector.
func (a Vec3) Shape() [2]int {
	return vecShape(3, a.Transposed)
}

// Get returns component i (0=X, 1=Y, 2=Z).
func (a Vec3) Get(i int) (float64, error) {
	switch i {
	case 0:
		return a.X, nil
	case 1:
		return a.Y, nil
	case 2:
		return a.Z, nil
	}
	return 0, vecIndexError(3, i)
}

// Set returns a copy of a with component i replaced by v.
func (a Vec3) Set(i int, v float64) (Vec3, error) {
	switch i {
	case 0:
		a.X = v
	case 1:
		a.Y = v
	case 2:
		a.Z = v
	default:
		return a, vecIndexError(3, i)
	}
	return a, nil
}

// Transpose flips the orientation.
func (a Vec3) Transpose() Vec3 {
	a.Transposed = !a.Transposed
	return a
}

// Add returns the vector sum a + b, or an error if the orientations differ.
func (a Vec3) Add(b Vec3) (Vec3, error) {
	if a.Transposed != b.Transposed {
		return Vec3{}, &DimensionMismatchError{Expected: a.Shape(), Got: b.Shape()}
	}
	return a.Plus(b), nil
}

// Sub returns the vector difference a - b, or an error if the orientations differ.
func (a Vec3) Sub(b Vec3) (Vec3, error) {
	if a.Transposed != b.Transposed {
		return Vec3{}, &DimensionMismatchError{Expected: a.Shape(), Got: b.Shape()}
	}
	return a.Minus(b), nil
}

// Plus returns a + b without checking orientation. The result keeps a's.
func (a Vec3) Plus(b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, Transposed: a.Transposed}
}

// Minus returns a - b without checking orientation. The result keeps a's.
func (a Vec3) Minus(b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, Transposed: a.Transposed}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z, Transposed: a.Transposed}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s, Transposed: a.Transposed}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the right-handed cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X:          a.Y*b.Z - a.Z*b.Y,
		Y:          a.Z*b.X - a.X*b.Z,
		Z:          a.X*b.Y - a.Y*b.X,
		Transposed: a.Transposed,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// IsZero reports whether all components are zero.
func (a Vec3) IsZero() bool {
	return a.X == 0 && a.Y == 0 && a.Z == 0
}

// Normalize returns the unit vector in the same direction.
// The zero vector has no direction; it is returned unchanged, so callers
// that need a unit result must check IsZero first.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		X:          a.X + (b.X-a.X)*t,
		Y:          a.Y + (b.Y-a.Y)*t,
		Z:          a.Z + (b.Z-a.Z)*t,
		Transposed: a.Transposed,
	}
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Minus(b).Len()
}

// Reflect returns the reflection of a around the unit normal n.
func (a Vec3) Reflect(n Vec3) Vec3 {
	return a.Minus(n.Scale(2 * a.Dot(n)))
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		X:          math.Min(a.X, b.X),
		Y:          math.Min(a.Y, b.Y),
		Z:          math.Min(a.Z, b.Z),
		Transposed: a.Transposed,
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		X:          math.Max(a.X, b.X),
		Y:          math.Max(a.Y, b.Y),
		Z:          math.Max(a.Z, b.Z),
		Transposed: a.Transposed,
	}
}

// ApproxEqual reports whether a and b differ by at most eps per component.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
