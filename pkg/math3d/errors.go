package math3d

import (
	"errors"
	"fmt"
)

// ErrSingular is returned by Inverse when the determinant is zero.
var ErrSingular = errors.New("math3d: singular matrix")

// DimensionMismatchError reports an operation on operands whose shapes
// (rows, cols) are incompatible, e.g. adding a row vector to a column vector.
type DimensionMismatchError struct {
	Expected [2]int
	Got      [2]int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("math3d: dimension mismatch: expected [%d, %d], got [%d, %d]",
		e.Expected[0], e.Expected[1], e.Got[0], e.Got[1])
}

// OutOfBoundError reports an index outside a fixed-size vector or matrix.
// Range holds the largest valid (row, col); vectors use col 0.
type OutOfBoundError struct {
	Range [2]int
	Got   [2]int
}

func (e *OutOfBoundError) Error() string {
	return fmt.Sprintf("math3d: index (%d, %d) out of bound, max (%d, %d)",
		e.Got[0], e.Got[1], e.Range[0], e.Range[1])
}

func vecIndexError(size, index int) error {
	return &OutOfBoundError{Range: [2]int{size - 1, 0}, Got: [2]int{index, 0}}
}

func matIndexError(size, row, col int) error {
	return &OutOfBoundError{Range: [2]int{size - 1, size - 1}, Got: [2]int{row, col}}
}

// vecShape returns the (rows, cols) of an n-vector in the given orientation.
func vecShape(n int, transposed bool) [2]int {
	if transposed {
		return [2]int{1, n}
	}
	return [2]int{n, 1}
}
