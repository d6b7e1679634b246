package bspline

import (
	"fmt"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// Planar adapts an [Evaluable] with one- or two-dimensional values to a plane
// curve. The parameter t ∈ [0, 1] is mapped linearly onto a parameter domain.
// Two-dimensional values are used as points directly; one-dimensional values
// are plotted as the graph (x, f(x)).
//
// Planar implements [curve.FittableCurve], so it can be approximated with
// cubic Béziers using [curve.FitToBezPath]. Its methods panic if evaluating
// the underlying Evaluable fails, which cannot happen for B-splines returned
// by [Build].
type Planar struct {
	e      Evaluable
	deriv  Evaluable
	domain SimpleRange
	dims   int
	// interior support boundaries, in increasing order
	breaks []float64
}

var _ curve.FittableCurve = (*Planar)(nil)

// NewPlanar returns a plane curve for e over domain. dims is the
// dimensionality of e's values and must be 1 or 2, otherwise
// [ErrDimensionMismatch] is returned.
func NewPlanar(e Evaluable, domain SimpleRange, dims int) (*Planar, error) {
	if dims != 1 && dims != 2 {
		return nil, fmt.Errorf("%d-dimensional values can't be projected onto a plane: %w", dims, ErrDimensionMismatch)
	}
	deriv, err := Derivative(e)
	if err != nil {
		return nil, err
	}
	p := &Planar{
		e:      e,
		deriv:  deriv,
		domain: domain,
		dims:   dims,
	}
	collectBreaks(e, domain, &p.breaks)
	slices.Sort(p.breaks)
	p.breaks = slices.Compact(p.breaks)
	return p, nil
}

// Planar returns b as a plane curve over its domain.
func (b *BSpline) Planar() (*Planar, error) {
	dims := b.Dimensions()
	if dims == 0 {
		dims = 1
	}
	return NewPlanar(b, b.domain, dims)
}

func collectBreaks(e Evaluable, domain SimpleRange, out *[]float64) {
	switch e := e.(type) {
	case *BSpline:
		collectBreaks(e.spline, domain, out)
	case *Spline:
		for _, child := range e.children {
			collectBreaks(child, domain, out)
		}
	case *BasisPolynomial:
		if r, ok := e.support.(SimpleRange); ok {
			for _, x := range [2]float64{r.Low, r.High} {
				if x > domain.Low && x < domain.High {
					*out = append(*out, x)
				}
			}
		}
	}
}

// param maps t to the domain. Parameters are clamped to the domain; an
// exclusive boundary is approached from inside.
func (p *Planar) param(t float64) float64 {
	x := lerp(p.domain.Low, p.domain.High, t)
	if x <= p.domain.Low {
		x = p.domain.Low
		if !p.domain.InclusiveLow {
			x = math.Nextafter(x, math.Inf(1))
		}
	}
	if x >= p.domain.High {
		x = p.domain.High
		if !p.domain.InclusiveHigh {
			x = math.Nextafter(x, math.Inf(-1))
		}
	}
	return x
}

func (p *Planar) evaluate(e Evaluable, x float64) Value {
	v, err := e.Evaluate(x)
	if err != nil {
		panic(err)
	}
	return v
}

func (p *Planar) point(x float64) curve.Point {
	v := p.evaluate(p.e, x)
	if p.dims == 1 {
		return curve.Pt(x, v.Float())
	}
	vec, err := Promote(v, 2)
	if err != nil {
		panic(err)
	}
	return curve.Pt(vec.X(), vec.Y())
}

// derivAt returns the derivative with respect to t at parameter x.
func (p *Planar) derivAt(x float64) curve.Vec2 {
	w := p.domain.Width()
	d := p.evaluate(p.deriv, x)
	if p.dims == 1 {
		return curve.Vec(w, w*d.Float())
	}
	vec, err := Promote(d, 2)
	if err != nil {
		panic(err)
	}
	return curve.Vec(w*vec.X(), w*vec.Y())
}

// Eval returns the point at t ∈ [0, 1].
func (p *Planar) Eval(t float64) curve.Point {
	return p.point(p.param(t))
}

// Start returns the point at t = 0.
func (p *Planar) Start() curve.Point { return p.Eval(0) }

// End returns the point at t = 1.
func (p *Planar) End() curve.Point { return p.Eval(1) }

// SamplePtDeriv implements curve.FittableCurve.
func (p *Planar) SamplePtDeriv(t float64) (curve.Point, curve.Vec2) {
	x := p.param(t)
	return p.point(x), p.derivAt(x)
}

// SamplePtTangent implements curve.FittableCurve. At a support boundary, a
// negative sign samples the tangent of the piece to the left and a positive
// sign that of the piece to the right.
func (p *Planar) SamplePtTangent(t float64, sign float64) curve.CurveFitSample {
	x := p.param(t)
	dx := x
	if b, ok := p.nearBreak(x); ok {
		x, dx = b, b
		if sign < 0 {
			dx = math.Nextafter(b, math.Inf(-1))
		}
	}
	return curve.CurveFitSample{
		Point:   p.point(x),
		Tangent: p.derivAt(dx),
	}
}

// breakTolerance is how many ulps, at the scale of the domain, a parameter
// may be off from a support boundary and still be treated as lying on it.
const breakTolerance = 4

// nearBreak returns the support boundary x lies on, if any.
func (p *Planar) nearBreak(x float64) (float64, bool) {
	i, found := slices.BinarySearch(p.breaks, x)
	if found {
		return x, true
	}
	for _, j := range [2]int{i - 1, i} {
		if j < 0 || j >= len(p.breaks) {
			continue
		}
		b := p.breaks[j]
		scale := max(math.Abs(b), math.Abs(p.domain.Low), math.Abs(p.domain.High))
		ulp := math.Nextafter(scale, math.Inf(1)) - scale
		if math.Abs(x-b) <= breakTolerance*ulp {
			return b, true
		}
	}
	return 0, false
}

// BreakCusp implements curve.FittableCurve. It reports the first support
// boundary strictly between start and end at which the tangent direction
// changes.
func (p *Planar) BreakCusp(start, end float64) (float64, bool) {
	const tolerance = 1e-9
	for _, b := range p.breaks {
		t := (b - p.domain.Low) / p.domain.Width()
		if t <= start || t >= end {
			continue
		}
		left := p.derivAt(math.Nextafter(b, math.Inf(-1)))
		right := p.derivAt(b)
		l, r := left.Hypot(), right.Hypot()
		if l == 0 || r == 0 {
			continue
		}
		if math.Abs(left.Cross(right)) > tolerance*l*r || left.Dot(right) < 0 {
			return t, true
		}
	}
	return 0, false
}

// Path approximates the curve with cubic Béziers to within accuracy.
func (p *Planar) Path(accuracy float64) curve.BezPath {
	return curve.BezPath(slices.Collect(curve.FitToBezPath(p, accuracy)))
}

// Polyline returns a path of n line segments through evenly spaced points of
// the curve.
func (p *Planar) Polyline(n int) curve.BezPath {
	var path curve.BezPath
	for t := range Params(0, 1, n) {
		pt := p.Eval(t)
		if len(path) == 0 {
			path = append(path, curve.MoveTo(pt))
		} else {
			path = append(path, curve.LineTo(pt))
		}
	}
	return path
}

// boundsSamples is the number of intervals BoundingBox samples when it can't
// find the extrema analytically.
const boundsSamples = 512

// BoundingBox returns the smallest rectangle containing the curve, grown by a
// fraction of its width and height: padding 0.1 adds 5% of the width on the
// left and on the right, and 5% of the height at the top and at the bottom.
//
// For flattened splines of degree 4 or lower, the extrema are computed
// exactly. Otherwise, the curve is sampled.
func (p *Planar) BoundingBox(padding float64) curve.Rect {
	xs := []float64{p.param(0), p.param(1)}
	for _, b := range p.breaks {
		xs = append(xs, b, math.Nextafter(b, math.Inf(-1)))
	}
	if extrema, ok := p.extrema(); ok {
		xs = append(xs, extrema...)
	} else {
		for t := range Params(0, 1, boundsSamples) {
			xs = append(xs, p.param(t))
		}
	}

	pt := p.point(xs[0])
	r := curve.Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y}
	for _, x := range xs[1:] {
		pt := p.point(x)
		r.X0 = min(r.X0, pt.X)
		r.Y0 = min(r.Y0, pt.Y)
		r.X1 = max(r.X1, pt.X)
		r.Y1 = max(r.Y1, pt.Y)
	}

	padX := (r.X1 - r.X0) * padding / 2
	padY := (r.Y1 - r.Y0) * padding / 2
	r.X0 -= padX
	r.X1 += padX
	r.Y0 -= padY
	r.Y1 += padY
	return r
}

// extrema returns the parameters inside the domain at which a coordinate's
// derivative vanishes. It only succeeds for flat splines whose pieces have
// simple support ranges and are of degree 4 or lower.
func (p *Planar) extrema() ([]float64, bool) {
	var s *Spline
	switch e := p.e.(type) {
	case *BSpline:
		s = e.spline
	case *Spline:
		s = e
	default:
		return nil, false
	}
	if !s.Flat() {
		return nil, false
	}

	var out []float64
	for _, child := range s.children {
		b := child.(*BasisPolynomial)
		support, ok := b.support.(SimpleRange)
		if !ok || support.Complement {
			return nil, false
		}
		for j := range p.dims {
			dp := component(b.poly, j).Derivative()
			if dp.Degree() < 1 {
				continue
			}
			roots, ok := dp.Roots()
			if !ok {
				return nil, false
			}
			for _, x := range roots {
				if support.Contains(x) && p.domain.Contains(x) {
					out = append(out, x)
				}
			}
		}
	}
	return out, true
}

// component returns the scalar polynomial of the j-th component of p's
// coefficients.
func component(p Polynomial, j int) Polynomial {
	coefs := make([]float64, len(p.coefs))
	for i, c := range p.coefs {
		if c.IsVector() {
			coefs[i] = c.v.At(j)
		} else if j == 0 {
			coefs[i] = c.s
		}
	}
	return Poly(coefs...)
}
