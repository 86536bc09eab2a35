package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// ZBuffer holds the nearest depth seen so far for every pixel. It is not
// safe for concurrent use; the renderer folds fragments into it from a
// single goroutine.
type ZBuffer struct {
	Width, Height int
	depth         []float64 // row-major
}

// NewZBuffer creates a buffer reset to math.MaxFloat64.
func NewZBuffer(width, height int) *ZBuffer {
	z := &ZBuffer{}
	z.Resize(width, height)
	return z
}

// Resize reallocates the buffer and resets it.
func (z *ZBuffer) Resize(width, height int) {
	z.Width, z.Height = width, height
	z.depth = make([]float64, width*height)
	z.Reset(math.MaxFloat64)
}

// Reset sets every cell to v.
func (z *ZBuffer) Reset(v float64) {
	// Use copy-doubling for faster clearing
	n := len(z.depth)
	if n == 0 {
		return
	}
	z.depth[0] = v
	for i := 1; i < n; i *= 2 {
		copy(z.depth[i:], z.depth[:i])
	}
}

// Update stores d at (x, y) and reports true if d is strictly smaller than
// the stored depth. Equal or larger depths, NaN and coordinates outside
// the buffer are rejected.
func (z *ZBuffer) Update(x, y int, d float64) bool {
	if x < 0 || x >= z.Width || y < 0 || y >= z.Height {
		return false
	}
	i := y*z.Width + x
	if d < z.depth[i] {
		z.depth[i] = d
		return true
	}
	return false
}

// At returns the stored depth at (x, y).
func (z *ZBuffer) At(x, y int) (float64, error) {
	if x < 0 || x >= z.Width || y < 0 || y >= z.Height {
		return 0, &math3d.OutOfBoundError{Range: [2]int{z.Width - 1, z.Height - 1}, Got: [2]int{x, y}}
	}
	return z.depth[y*z.Width+x], nil
}
