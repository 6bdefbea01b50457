package halfspace

import "github.com/pkg/errors"

var (
	// ErrDegenerateGeometry is returned when a set of planes does not bound a
	// closed, non-empty convex solid with at least four faces.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrCollinearPoints is returned when three points do not span a plane.
	ErrCollinearPoints = errors.New("collinear points")

	// ErrInvalidReference is returned when a handle does not belong to the
	// current generation of the solid it is used with.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidInput is returned for non-finite coordinates and zero normals.
	ErrInvalidInput = errors.New("invalid input")
)
