package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order, with the same lazy
// transpose as Mat4.
//
// | 0 3 6 |
// | 1 4 7 |
// | 2 5 8 |
type Mat3 struct {
	m          [9]float64
	transposed bool
}

func (a *Mat3) at(row, col int) float64 {
	if a.transposed {
		return a.m[col+row*3]
	}
	return a.m[row+col*3]
}

func (a *Mat3) put(row, col int, v float64) {
	if a.transposed {
		a.m[col+row*3] = v
		return
	}
	a.m[row+col*3] = v
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{m: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{m: [9]float64{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}}
}

// Mat3FromRows builds a matrix from three row vectors.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	m := Mat3FromCols(r0, r1, r2)
	m.transposed = true
	return m
}

// Mul multiplies two matrices: a * b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			m.m[row+col*3] = a.at(row, 0)*b.at(0, col) + a.at(row, 1)*b.at(1, col) + a.at(row, 2)*b.at(2, col)
		}
	}
	return m
}

// MulVec3 transforms a Vec3.
func (a Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X:          a.at(0, 0)*v.X + a.at(0, 1)*v.Y + a.at(0, 2)*v.Z,
		Y:          a.at(1, 0)*v.X + a.at(1, 1)*v.Y + a.at(1, 2)*v.Z,
		Z:          a.at(2, 0)*v.X + a.at(2, 1)*v.Y + a.at(2, 2)*v.Z,
		Transposed: v.Transposed,
	}
}

// ScalarMul multiplies every entry by s.
func (a Mat3) ScalarMul(s float64) Mat3 {
	for i := range a.m {
		a.m[i] *= s
	}
	return a
}

// Transpose returns the transposed matrix.
func (a Mat3) Transpose() Mat3 {
	a.transposed = !a.transposed
	return a
}

// Shape returns (3, 3).
func (a Mat3) Shape() [2]int {
	return [2]int{3, 3}
}

// Entry returns the element at (row, col).
func (a Mat3) Entry(row, col int) (float64, error) {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return 0, matIndexError(3, row, col)
	}
	return a.at(row, col), nil
}

// SetEntry sets the element at (row, col).
func (a *Mat3) SetEntry(row, col int, val float64) error {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return matIndexError(3, row, col)
	}
	a.put(row, col, val)
	return nil
}

// Row returns row i as a row vector. i must be in [0, 3).
func (a Mat3) Row(i int) Vec3 {
	return Vec3{X: a.at(i, 0), Y: a.at(i, 1), Z: a.at(i, 2), Transposed: true}
}

// Col returns column j as a column vector. j must be in [0, 3).
func (a Mat3) Col(j int) Vec3 {
	return Vec3{X: a.at(0, j), Y: a.at(1, j), Z: a.at(2, j)}
}

// Mat4 embeds the matrix in the upper-left block of an identity Mat4.
func (a Mat3) Mat4() Mat4 {
	m := Identity()
	for col := range 3 {
		for row := range 3 {
			m.m[row+col*4] = a.at(row, col)
		}
	}
	return m
}

// Determinant returns the determinant of the matrix.
func (a Mat3) Determinant() float64 {
	return a.at(0, 0)*(a.at(1, 1)*a.at(2, 2)-a.at(1, 2)*a.at(2, 1)) -
		a.at(0, 1)*(a.at(1, 0)*a.at(2, 2)-a.at(1, 2)*a.at(2, 0)) +
		a.at(0, 2)*(a.at(1, 0)*a.at(2, 1)-a.at(1, 1)*a.at(2, 0))
}

// Inverse returns the inverse via the adjugate, or ErrSingular if the
// determinant is zero.
func (a Mat3) Inverse() (Mat3, error) {
	det := a.Determinant()
	if det == 0 || math.IsNaN(det) {
		return Mat3{}, ErrSingular
	}
	inv := 1 / det

	// The inverse's columns are the pairwise crosses of a's rows.
	r0, r1, r2 := a.Row(0), a.Row(1), a.Row(2)
	return Mat3FromCols(
		r1.Cross(r2).Scale(inv),
		r2.Cross(r0).Scale(inv),
		r0.Cross(r1).Scale(inv),
	), nil
}

// ApproxEqual reports whether every entry of a and b differs by at most eps.
func (a Mat3) ApproxEqual(b Mat3, eps float64) bool {
	for row := range 3 {
		for col := range 3 {
			if math.Abs(a.at(row, col)-b.at(row, col)) > eps {
				return false
			}
		}
	}
	return true
}
