package bspline

import "errors"

// Errors returned by this package. Most of them are returned wrapped with
// additional context; match them with [errors.Is].
var (
	// ErrDimensionMismatch is returned when vectors of different
	// dimensionality are combined.
	ErrDimensionMismatch = errors.New("bspline: dimension mismatch")

	// ErrNonPositiveDimensions is returned when a vector is resized to zero
	// or fewer dimensions.
	ErrNonPositiveDimensions = errors.New("bspline: dimensions must be positive")

	// ErrUnsupportedOperator is returned for composite ranges whose operator
	// is neither [Union] nor [Intersection].
	ErrUnsupportedOperator = errors.New("bspline: only union and intersection are supported")

	// ErrInvalidChild is returned when a spline contains, or flattening
	// encounters, something that is neither a [*Spline] nor a
	// [*BasisPolynomial].
	ErrInvalidChild = errors.New("bspline: invalid spline child")

	// ErrInvalidDegree is returned when the requested degree is negative or
	// not less than the number of control points.
	ErrInvalidDegree = errors.New("bspline: degree must be less than the number of control points")

	// ErrKnotCountMismatch is returned when a degree 0 B-spline is built from
	// a knot vector that doesn't have exactly one more knot than there are
	// control points.
	ErrKnotCountMismatch = errors.New("bspline: knot vector must have one more knot than there are control points")

	// ErrBasisCountMismatch is returned when the recursive construction
	// doesn't yield one basis function per control point. It indicates a
	// knot vector whose length doesn't match the degree and control points.
	ErrBasisCountMismatch = errors.New("bspline: number of basis functions doesn't match number of control points")

	// ErrDecreasingKnots is returned for knot vectors that aren't
	// non-decreasing.
	ErrDecreasingKnots = errors.New("bspline: knot vector must be non-decreasing")
)
