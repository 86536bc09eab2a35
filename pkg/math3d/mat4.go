package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
// This matches OpenGL conventions for easier reasoning about transforms.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
//
// Transpose only flips a flag; every access goes through at/put, which pick
// the addressing that matches the flag.
type Mat4 struct {
	m          [16]float64
	transposed bool
}

// NewMat4 builds a matrix from 16 values in column-major order.
func NewMat4(cols [16]float64) Mat4 {
	return Mat4{m: cols}
}

// at returns entry (row, col). The caller guarantees 0 <= row, col < 4.
func (a *Mat4) at(row, col int) float64 {
	if a.transposed {
		return a.m[col+row*4]
	}
	return a.m[row+col*4]
}

// put sets entry (row, col). The caller guarantees 0 <= row, col < 4.
func (a *Mat4) put(row, col int, v float64) {
	if a.transposed {
		a.m[col+row*4] = v
		return
	}
	a.m[row+col*4] = v
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{m: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Mat4FromCols builds a matrix from four column vectors.
func Mat4FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{m: [16]float64{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}}
}

// Mat4FromRows builds a matrix from four row vectors.
func Mat4FromRows(r0, r1, r2, r3 Vec4) Mat4 {
	m := Mat4FromCols(r0, r1, r2, r3)
	m.transposed = true
	return m
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{m: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{m: [16]float64{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{m: [16]float64{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{m: [16]float64{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{m: [16]float64{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Rotate creates a right-handed rotation matrix around an arbitrary axis
// (Rodrigues' formula). The axis is normalized first.
func Rotate(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{m: [16]float64{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}}
}

// Perspective creates a perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are clipping planes.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{m: [16]float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}}
}

// Orthographic creates an orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{m: [16]float64{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a.at(row, k) * b.at(k, col)
			}
			m.m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X:          a.at(0, 0)*v.X + a.at(0, 1)*v.Y + a.at(0, 2)*v.Z + a.at(0, 3)*v.W,
		Y:          a.at(1, 0)*v.X + a.at(1, 1)*v.Y + a.at(1, 2)*v.Z + a.at(1, 3)*v.W,
		Z:          a.at(2, 0)*v.X + a.at(2, 1)*v.Y + a.at(2, 2)*v.Z + a.at(2, 3)*v.W,
		W:          a.at(3, 0)*v.X + a.at(3, 1)*v.Y + a.at(3, 2)*v.Z + a.at(3, 3)*v.W,
		Transposed: v.Transposed,
	}
}

// MulVec3 transforms a Vec3 as a point (w=1) and divides by the resulting w.
func (a Mat4) MulVec3(v Vec3) Vec3 {
	return a.MulVec4(V4FromV3(v, 1)).PerspectiveDivide().Vec3()
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (a Mat4) MulVec3Dir(v Vec3) Vec3 {
	return a.MulVec4(V4FromV3(v, 0)).Vec3()
}

// ScalarMul multiplies every entry by s.
func (a Mat4) ScalarMul(s float64) Mat4 {
	for i := range a.m {
		a.m[i] *= s
	}
	return a
}

// Transpose returns the transposed matrix. It only flips the layout flag.
func (a Mat4) Transpose() Mat4 {
	a.transposed = !a.transposed
	return a
}

// Shape returns (4, 4).
func (a Mat4) Shape() [2]int {
	return [2]int{4, 4}
}

// Entry returns the element at (row, col).
func (a Mat4) Entry(row, col int) (float64, error) {
	if row < 0 || row > 3 || col < 0 || col > 3 {
		return 0, matIndexError(4, row, col)
	}
	return a.at(row, col), nil
}

// SetEntry sets the element at (row, col).
func (a *Mat4) SetEntry(row, col int, val float64) error {
	if row < 0 || row > 3 || col < 0 || col > 3 {
		return matIndexError(4, row, col)
	}
	a.put(row, col, val)
	return nil
}

// Row returns row i as a row vector. i must be in [0, 4).
func (a Mat4) Row(i int) Vec4 {
	return Vec4{X: a.at(i, 0), Y: a.at(i, 1), Z: a.at(i, 2), W: a.at(i, 3), Transposed: true}
}

// Col returns column j as a column vector. j must be in [0, 4).
func (a Mat4) Col(j int) Vec4 {
	return Vec4{X: a.at(0, j), Y: a.at(1, j), Z: a.at(2, j), W: a.at(3, j)}
}

// SetRow replaces row i. i must be in [0, 4).
func (a *Mat4) SetRow(i int, v Vec4) {
	a.put(i, 0, v.X)
	a.put(i, 1, v.Y)
	a.put(i, 2, v.Z)
	a.put(i, 3, v.W)
}

// SetCol replaces column j. j must be in [0, 4).
func (a *Mat4) SetCol(j int, v Vec4) {
	a.put(0, j, v.X)
	a.put(1, j, v.Y)
	a.put(2, j, v.Z)
	a.put(3, j, v.W)
}

// Cols returns the 16 entries in column-major order, whatever the layout flag.
func (a Mat4) Cols() [16]float64 {
	if !a.transposed {
		return a.m
	}
	var out [16]float64
	for col := range 4 {
		for row := range 4 {
			out[row+col*4] = a.at(row, col)
		}
	}
	return out
}

// Mat3 returns the upper-left 3x3 block (rotation and scale).
func (a Mat4) Mat3() Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			m.m[row+col*3] = a.at(row, col)
		}
	}
	return m
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 block,
// which maps surface normals without skewing them under non-uniform scale.
func (a Mat4) NormalMatrix() (Mat3, error) {
	inv, err := a.Mat3().Inverse()
	if err != nil {
		return Mat3{}, err
	}
	return inv.Transpose(), nil
}

// ApproxEqual reports whether every entry of a and b differs by at most eps.
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for row := range 4 {
		for col := range 4 {
			if math.Abs(a.at(row, col)-b.at(row, col)) > eps {
				return false
			}
		}
	}
	return true
}

// Determinant returns the determinant of the matrix.
func (a Mat4) Determinant() float64 {
	m := a.Cols()
	return m[0]*(m[5]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[6]*m[15]-m[14]*m[7])+m[13]*(m[6]*m[11]-m[10]*m[7])) -
		m[4]*(m[1]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[11]-m[10]*m[3])) +
		m[8]*(m[1]*(m[6]*m[15]-m[14]*m[7])-m[5]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[7]-m[6]*m[3])) -
		m[12]*(m[1]*(m[6]*m[11]-m[10]*m[7])-m[5]*(m[2]*m[11]-m[10]*m[3])+m[9]*(m[2]*m[7]-m[6]*m[3]))
}

// Inverse returns the inverse of the matrix, or ErrSingular if the
// determinant is zero.
func (a Mat4) Inverse() (Mat4, error) {
	det := a.Determinant()
	if det == 0 || math.IsNaN(det) {
		return Mat4{}, ErrSingular
	}

	m := a.Cols()
	invDet := 1.0 / det
	var inv Mat4

	inv.m[0] = (m[5]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[6]*m[15]-m[14]*m[7]) + m[13]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv.m[1] = -(m[1]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv.m[2] = (m[1]*(m[6]*m[15]-m[14]*m[7]) - m[5]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv.m[3] = -(m[1]*(m[6]*m[11]-m[10]*m[7]) - m[5]*(m[2]*m[11]-m[10]*m[3]) + m[9]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv.m[4] = -(m[4]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[6]*m[15]-m[14]*m[7]) + m[12]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv.m[5] = (m[0]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv.m[6] = -(m[0]*(m[6]*m[15]-m[14]*m[7]) - m[4]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv.m[7] = (m[0]*(m[6]*m[11]-m[10]*m[7]) - m[4]*(m[2]*m[11]-m[10]*m[3]) + m[8]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv.m[8] = (m[4]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[5]*m[15]-m[13]*m[7]) + m[12]*(m[5]*m[11]-m[9]*m[7])) * invDet
	inv.m[9] = -(m[0]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[11]-m[9]*m[3])) * invDet
	inv.m[10] = (m[0]*(m[5]*m[15]-m[13]*m[7]) - m[4]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[7]-m[5]*m[3])) * invDet
	inv.m[11] = -(m[0]*(m[5]*m[11]-m[9]*m[7]) - m[4]*(m[1]*m[11]-m[9]*m[3]) + m[8]*(m[1]*m[7]-m[5]*m[3])) * invDet

	inv.m[12] = -(m[4]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[5]*m[14]-m[13]*m[6]) + m[12]*(m[5]*m[10]-m[9]*m[6])) * invDet
	inv.m[13] = (m[0]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[10]-m[9]*m[2])) * invDet
	inv.m[14] = -(m[0]*(m[5]*m[14]-m[13]*m[6]) - m[4]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[6]-m[5]*m[2])) * invDet
	inv.m[15] = (m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])) * invDet

	return inv, nil
}

// Translation extracts the translation component.
func (a Mat4) Translation() Vec3 {
	return V3(a.at(0, 3), a.at(1, 3), a.at(2, 3))
}
