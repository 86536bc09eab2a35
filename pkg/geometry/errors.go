package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMesh reports a position or index buffer that does not
	// describe whole triangles over existing vertices.
	ErrMalformedMesh = errors.New("geometry: malformed mesh")

	// ErrDegenerate reports geometry that has no well-defined normal.
	ErrDegenerate = errors.New("geometry: degenerate geometry")
)

// DegenerateError names the vertex whose normal could not be computed.
type DegenerateError struct {
	Vertex int
	Reason string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("geometry: vertex %d: %s", e.Vertex, e.Reason)
}

func (e *DegenerateError) Unwrap() error {
	return ErrDegenerate
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedMesh, fmt.Sprintf(format, args...))
}
