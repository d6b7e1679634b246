// Package bspline provides a small algebra engine for constructing and
// evaluating B-spline curves. It consists of polynomial arithmetic over
// scalar and vector coefficients, real-number ranges, piecewise basis
// polynomials, and the Cox–de Boor construction of B-spline basis functions
// from a knot vector and control points.
//
// # Values and vectors
//
// Control points, coefficients and evaluations are [Value]s, which hold either
// a real number or a [Vector]. The zero Value is the scalar 0, which acts as
// the additive identity of every dimensionality. This allows scalar and
// vector-valued splines to share one implementation: [Add], [Product] and
// [Dot] accept any combination of operands and return
// [ErrDimensionMismatch] for incompatible ones.
//
// # Ranges
//
// A [Range] is a predicate on real numbers. [SimpleRange] describes a single
// interval with independently inclusive or exclusive boundaries,
// [CompositeRange] the union or intersection of other ranges. Either can be
// complemented. Equality of ranges is shallow: ranges constructed the same way
// are equal, but no attempt is made to detect equivalent sets.
//
// # Polynomials, basis polynomials and splines
//
// A [Polynomial] is an immutable list of coefficients. A [BasisPolynomial]
// restricts a polynomial to a support range, outside of which it evaluates to
// zero. A [Spline] combines the evaluations of a tree of splines and basis
// polynomials, by default by adding them. All of them implement [Evaluable].
//
// Evaluating a deeply nested spline visits every node of the tree. [Flatten]
// converts a tree into a single list of basis polynomials, merging those with
// equal support ranges, after which evaluation costs one polynomial
// evaluation per distinct support range.
//
// # B-splines
//
// [Build] constructs a [BSpline] of a given degree from a [KnotVector] and
// control points, using the recursion
//
//	Bᵢ,₁(x) = 1 if kᵢ ≤ x < kᵢ₊₁, 0 otherwise
//	Bᵢ,ₖ(x) = (x - kᵢ) / (kᵢ₊ₖ₋₁ - kᵢ) · Bᵢ,ₖ₋₁(x) + (kᵢ₊ₖ - x) / (kᵢ₊ₖ - kᵢ₊₁) · Bᵢ₊₁,ₖ₋₁(x)
//
// and scaling basis function i by control point i. [Uniform] does the same
// with an evenly spaced knot vector. The resulting B-spline records its
// control points, knot vector, order and valid parameter domain, and is
// flattened unless [WithoutFlatten] is passed.
//
// [BasisFunctions] exposes the unscaled basis functions, which sum to one on
// the valid domain.
//
// # Plane curves
//
// B-splines with one- or two-dimensional control points can be turned into
// plane curves with [BSpline.Planar]. The resulting [Planar] implements
// [curve.FittableCurve] and can thus be approximated by Bézier paths with
// [curve.FitToBezPath]; it also computes bounding boxes and polylines.
//
// # Concurrency
//
// Evaluation is a pure function of the spline and the parameter. Once
// constructed, all types in this package are safe for concurrent use.
//
// # Literature
//
//   - [A Primer on Bézier Curves], section "B-Splines"
//   - [The NURBS Book] by Piegl and Tiller, chapter 2
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/#bsplines
// [The NURBS Book]: https://doi.org/10.1007/978-3-642-59223-2
package bspline
