package bspline

import (
	"fmt"
)

// KnotVector is a non-decreasing sequence of parameter values.
type KnotVector []float64

// UniformKnotVector returns n knots evenly spaced between 0 and 1, both
// inclusive.
func UniformKnotVector(n int) KnotVector {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return KnotVector{0}
	}
	kv := make(KnotVector, n)
	for i := range kv {
		kv[i] = float64(i) / float64(n-1)
	}
	return kv
}

// Validate returns [ErrDecreasingKnots] if kv isn't non-decreasing.
func (kv KnotVector) Validate() error {
	for i := 1; i < len(kv); i++ {
		if kv[i] < kv[i-1] {
			return fmt.Errorf("knot %d (%g) is less than knot %d (%g): %w", i, kv[i], i-1, kv[i-1], ErrDecreasingKnots)
		}
	}
	return nil
}

func (kv KnotVector) Clone() KnotVector {
	return append(KnotVector(nil), kv...)
}

// StepBasis returns the degree 0 basis functions of the knot vector: for
// every pair of adjacent knots, the constant 1 on [kᵢ, kᵢ₊₁). The support of
// the last non-empty step includes its upper knot, so that the steps cover
// the closed interval spanned by the knot vector. Repeated knots produce
// steps with empty support ranges.
func StepBasis(knots KnotVector) []*BasisPolynomial {
	if len(knots) < 2 {
		return nil
	}
	one := Poly(1)
	out := make([]*BasisPolynomial, len(knots)-1)
	last := -1
	for i := range out {
		var support SimpleRange
		if knots[i] == knots[i+1] {
			support = SimpleRange{Low: knots[i], High: knots[i+1]}
		} else {
			support = ClosedOpen(knots[i], knots[i+1])
			last = i
		}
		out[i] = NewBasisPolynomial(one, support)
	}
	if last >= 0 {
		support := out[last].support.(SimpleRange)
		support.InclusiveHigh = true
		out[last].support = support
	}
	return out
}

// BasisFunctions returns the unscaled basis functions of the given degree,
// constructed with the Cox–de Boor recursion from the step functions of
// [StepBasis]. A knot vector with m knots yields m - degree - 1 basis
// functions.
//
// Basis function i of order k is the two-child spline
//
//	Bᵢ,ₖ(x) = (x - kᵢ) / (kᵢ₊ₖ₋₁ - kᵢ) · Bᵢ,ₖ₋₁(x) + (kᵢ₊ₖ - x) / (kᵢ₊ₖ - kᵢ₊₁) · Bᵢ₊₁,ₖ₋₁(x)
//
// Where a denominator is zero because of repeated knots, the corresponding
// term is omitted.
func BasisFunctions(knots KnotVector, degree int) ([]Evaluable, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree %d: %w", degree, ErrInvalidDegree)
	}
	if err := knots.Validate(); err != nil {
		return nil, err
	}

	steps := StepBasis(knots)
	lower := make([]Evaluable, len(steps))
	for i, b := range steps {
		lower[i] = b
	}

	for order := 2; order <= degree+1; order++ {
		var higher []Evaluable
		for i := 0; i < len(lower)-1; i++ {
			var terms []Evaluable
			if span := knots[i+order-1] - knots[i]; span != 0 {
				left, err := mulEvaluable(lower[i], Poly(1/span, -knots[i]/span))
				if err != nil {
					return nil, err
				}
				terms = append(terms, left)
			}
			if span := knots[i+order] - knots[i+1]; span != 0 {
				right, err := mulEvaluable(lower[i+1], Poly(-1/span, knots[i+order]/span))
				if err != nil {
					return nil, err
				}
				terms = append(terms, right)
			}
			higher = append(higher, &Spline{children: terms, combiner: Sum})
		}
		lower = higher
	}
	return lower, nil
}

func mulEvaluable(e Evaluable, p Polynomial) (Evaluable, error) {
	switch e := e.(type) {
	case *Spline:
		return e.Mul(p)
	case *BasisPolynomial:
		return e.Mul(p)
	default:
		return nil, fmt.Errorf("multiplying %T: %w", e, ErrInvalidChild)
	}
}

func scaleEvaluable(e Evaluable, k Value) (Evaluable, error) {
	switch e := e.(type) {
	case *Spline:
		return e.Scale(k)
	case *BasisPolynomial:
		return e.Scale(k)
	default:
		return nil, fmt.Errorf("scaling %T: %w", e, ErrInvalidChild)
	}
}

// Option configures [Build] and [Uniform].
type Option func(*options)

type options struct {
	flatten bool
}

func defaultOptions() options {
	return options{flatten: true}
}

// WithFlatten controls whether the B-spline is flattened with [Flatten]
// after construction. Flattening is enabled by default; it makes
// construction more expensive and evaluation cheaper.
func WithFlatten(enabled bool) Option {
	return func(o *options) {
		o.flatten = enabled
	}
}

// WithoutFlatten is shorthand for WithFlatten(false).
func WithoutFlatten() Option {
	return WithFlatten(false)
}

// BSpline is a spline built from a knot vector, control points and a
// degree. It is immutable; to change any of its inputs, build a new one.
type BSpline struct {
	spline        *Spline
	controlPoints []Value
	knots         KnotVector
	order         int
	domain        SimpleRange
}

var _ Evaluable = (*BSpline)(nil)

// Build constructs the B-spline of the given degree from a knot vector and
// control points. Basis function i is scaled by control point i, so the knot
// vector must have len(controlPoints) + degree + 1 knots.
//
// Build returns
//   - [ErrInvalidDegree] if degree is negative or not less than the number of control points,
//   - [ErrDimensionMismatch] if the control points differ in dimensionality,
//   - [ErrDecreasingKnots] if the knot vector decreases,
//   - [ErrKnotCountMismatch] if degree is 0 and there isn't one more knot than control points,
//   - [ErrBasisCountMismatch] if the knot vector yields a different number of basis
//     functions than there are control points.
func Build(knots KnotVector, controlPoints []Value, degree int, opts ...Option) (*BSpline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if degree < 0 || degree >= len(controlPoints) {
		return nil, fmt.Errorf("degree %d with %d control points: %w", degree, len(controlPoints), ErrInvalidDegree)
	}
	if _, err := CommonDimensions(controlPoints...); err != nil {
		return nil, fmt.Errorf("control points: %w", err)
	}
	if err := knots.Validate(); err != nil {
		return nil, err
	}
	if degree == 0 && len(knots) != len(controlPoints)+1 {
		return nil, fmt.Errorf("%d knots for %d control points: %w", len(knots), len(controlPoints), ErrKnotCountMismatch)
	}

	basis, err := BasisFunctions(knots, degree)
	if err != nil {
		return nil, err
	}
	if len(basis) != len(controlPoints) {
		return nil, fmt.Errorf("%d basis functions for %d control points: %w", len(basis), len(controlPoints), ErrBasisCountMismatch)
	}

	scaled := make([]Evaluable, len(basis))
	for i, b := range basis {
		scaled[i], err = scaleEvaluable(b, controlPoints[i])
		if err != nil {
			return nil, err
		}
	}
	spline := &Spline{children: scaled, combiner: Sum}
	if o.flatten {
		spline, err = Flatten(spline)
		if err != nil {
			return nil, err
		}
	}

	order := degree + 1
	return &BSpline{
		spline:        spline,
		controlPoints: append([]Value(nil), controlPoints...),
		knots:         knots.Clone(),
		order:         order,
		domain:        ClosedOpen(knots[order-1], knots[len(controlPoints)]),
	}, nil
}

// Uniform is like [Build] but uses [UniformKnotVector] with the number of
// knots required by the control points and degree.
func Uniform(controlPoints []Value, degree int, opts ...Option) (*BSpline, error) {
	if degree < 0 || degree >= len(controlPoints) {
		return nil, fmt.Errorf("degree %d with %d control points: %w", degree, len(controlPoints), ErrInvalidDegree)
	}
	return Build(UniformKnotVector(len(controlPoints)+degree+1), controlPoints, degree, opts...)
}

// Evaluate evaluates the B-spline at x. Only x in [BSpline.Domain] are
// guaranteed to lie on the intended curve.
func (b *BSpline) Evaluate(x float64) (Value, error) {
	return b.spline.Evaluate(x)
}

// ControlPoints returns a copy of the control points.
func (b *BSpline) ControlPoints() []Value {
	return append([]Value(nil), b.controlPoints...)
}

// Knots returns a copy of the knot vector.
func (b *BSpline) Knots() KnotVector {
	return b.knots.Clone()
}

// Order returns the degree plus one.
func (b *BSpline) Order() int { return b.order }

// Degree returns the degree of the B-spline.
func (b *BSpline) Degree() int { return b.order - 1 }

// Domain returns the parameter range [kₒ₋₁, kₙ), where o is the order and n
// the number of control points, over which the basis functions sum to one.
func (b *BSpline) Domain() SimpleRange { return b.domain }

// Dimensions returns the common dimensionality of the control points, or 0
// if all of them are the scalar zero.
func (b *BSpline) Dimensions() int {
	d, _ := CommonDimensions(b.controlPoints...)
	return d
}

// Basis returns the terms of the B-spline, in order. For a flattened
// B-spline, these are basis polynomials with distinct support ranges;
// otherwise, they are the scaled basis functions, one per control point.
func (b *BSpline) Basis() []Evaluable {
	return b.spline.Children()
}

// Spline returns the underlying spline.
func (b *BSpline) Spline() *Spline { return b.spline }

// Flattened reports whether all terms are basis polynomials. This is the case
// for flattened B-splines and for B-splines of degree 0.
func (b *BSpline) Flattened() bool { return b.spline.Flat() }

func (b *BSpline) String() string {
	return fmt.Sprintf("B-spline of degree %d over %v with %d control points", b.Degree(), b.domain, len(b.controlPoints))
}
