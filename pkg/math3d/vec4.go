package math3d

import "math"

// Vec4 represents a 4D vector (or homogeneous 3D point).
type Vec4 struct {
	X, Y, Z, W float64
	Transposed bool
}

// V4 creates a new column Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w, Transposed: v.Transposed}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z, Transposed: v.Transposed}
}

// PerspectiveDivide divides every component by W, leaving W = 1.
// A zero W (a direction) is returned unchanged.
func (v Vec4) PerspectiveDivide() Vec4 {
	if v.W == 0 {
		return v
	}
	inv := 1 / v.W
	return Vec4{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv, W: 1, Transposed: v.Transposed}
}

// Shape returns (rows, cols): (4, 1) for a column vector, (1, 4) for a row vector.
func (v Vec4) Shape() [2]int {
	return vecShape(4, v.Transposed)
}

// Get returns component i (0=X .. 3=W).
func (v Vec4) Get(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	case 3:
		return v.W, nil
	}
	return 0, vecIndexError(4, i)
}

// Set returns a copy of v with component i replaced by x.
func (v Vec4) Set(i int, x float64) (Vec4, error) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	case 3:
		v.W = x
	default:
		return v, vecIndexError(4, i)
	}
	return v, nil
}

// Transpose flips the orientation.
func (v Vec4) Transpose() Vec4 {
	v.Transposed = !v.Transposed
	return v
}

// Add returns the vector sum, or an error if the orientations differ.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) (Vec4, error) {
	if a.Transposed != b.Transposed {
		return Vec4{}, &DimensionMismatchError{Expected: a.Shape(), Got: b.Shape()}
	}
	return a.Plus(b), nil
}

// Sub returns the vector difference, or an error if the orientations differ.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) (Vec4, error) {
	if a.Transposed != b.Transposed {
		return Vec4{}, &DimensionMismatchError{Expected: a.Shape(), Got: b.Shape()}
	}
	return a.Minus(b), nil
}

// Plus returns a + b without checking orientation.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Plus(b Vec4) Vec4 {
	return Vec4{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z, W: a.W + b.W, Transposed: a.Transposed}
}

// Minus returns a - b without checking orientation.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Minus(b Vec4) Vec4 {
	return Vec4{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z, W: a.W - b.W, Transposed: a.Transposed}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s, Transposed: v.Transposed}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the length.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)
}

// Normalize returns the unit vector. The zero vector is returned unchanged.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns linear interpolation.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		X:          a.X + (b.X-a.X)*t,
		Y:          a.Y + (b.Y-a.Y)*t,
		Z:          a.Z + (b.Z-a.Z)*t,
		W:          a.W + (b.W-a.W)*t,
		Transposed: a.Transposed,
	}
}

// ApproxEqual reports whether a and b differ by at most eps per component.
func (a Vec4) ApproxEqual(b Vec4, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps && math.Abs(a.W-b.W) <= eps
}
