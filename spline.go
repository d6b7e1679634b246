package bspline

import (
	"fmt"
	"strings"
)

// Combiner reduces the evaluations of a spline's children to one value.
type Combiner func(values ...Value) (Value, error)

// Spline combines the evaluations of its children, which are other splines
// or basis polynomials, with a [Combiner]. The default combiner is [Sum].
type Spline struct {
	children []Evaluable
	combiner Combiner
}

var _ Evaluable = (*Spline)(nil)

// NewSpline returns a spline with the given children. If combiner is nil,
// [Sum] is used. Children must be of type *Spline or *BasisPolynomial,
// otherwise [ErrInvalidChild] is returned.
func NewSpline(children []Evaluable, combiner Combiner) (*Spline, error) {
	for i, child := range children {
		switch child.(type) {
		case *Spline, *BasisPolynomial:
		default:
			return nil, fmt.Errorf("child %d of type %T: %w", i, child, ErrInvalidChild)
		}
	}
	if combiner == nil {
		combiner = Sum
	}
	return &Spline{
		children: append([]Evaluable(nil), children...),
		combiner: combiner,
	}, nil
}

// Children returns a copy of the spline's children.
func (s *Spline) Children() []Evaluable {
	return append([]Evaluable(nil), s.children...)
}

// Len returns the number of children.
func (s *Spline) Len() int {
	return len(s.children)
}

// Flat reports whether all children are basis polynomials.
func (s *Spline) Flat() bool {
	for _, child := range s.children {
		if _, ok := child.(*BasisPolynomial); !ok {
			return false
		}
	}
	return true
}

func (s *Spline) combine(values ...Value) (Value, error) {
	if s.combiner == nil {
		return Sum(values...)
	}
	return s.combiner(values...)
}

// Evaluate evaluates every child at x and combines the results.
func (s *Spline) Evaluate(x float64) (Value, error) {
	values := make([]Value, len(s.children))
	for i, child := range s.children {
		v, err := child.Evaluate(x)
		if err != nil {
			return Value{}, err
		}
		values[i] = v
	}
	return s.combine(values...)
}

// Scale returns a new spline whose children have been scaled by k.
func (s *Spline) Scale(k Value) (*Spline, error) {
	return s.mapChildren(func(b *BasisPolynomial) (*BasisPolynomial, error) {
		return b.Scale(k)
	})
}

// Mul returns a new spline whose children have been multiplied by p.
func (s *Spline) Mul(p Polynomial) (*Spline, error) {
	return s.mapChildren(func(b *BasisPolynomial) (*BasisPolynomial, error) {
		return b.Mul(p)
	})
}

func (s *Spline) mapChildren(fn func(*BasisPolynomial) (*BasisPolynomial, error)) (*Spline, error) {
	out := &Spline{
		children: make([]Evaluable, len(s.children)),
		combiner: s.combiner,
	}
	for i, child := range s.children {
		var err error
		switch child := child.(type) {
		case *Spline:
			out.children[i], err = child.mapChildren(fn)
		case *BasisPolynomial:
			out.children[i], err = fn(child)
		default:
			err = fmt.Errorf("child of type %T: %w", child, ErrInvalidChild)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Spline) String() string {
	parts := make([]string, len(s.children))
	for i, child := range s.children {
		parts[i] = fmt.Sprint(child)
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// Flatten returns a spline whose children are all basis polynomials, with
// no two of them having equal support ranges. Nested splines are replaced by
// their basis polynomials, and basis polynomials with equal support ranges
// (as reported by [Range.Equal]) are merged by adding their polynomials.
//
// Flattening assumes that the splines being flattened combine their children
// with [Sum]. Flattening is a one-time cost, after which evaluation is
// proportional to the number of distinct support ranges rather than the size
// of the tree. The input is never modified and shares no basis polynomials
// with the result.
//
// Flatten returns [ErrInvalidChild] if it encounters anything other than
// splines and basis polynomials.
func Flatten(e Evaluable) (*Spline, error) {
	f := &flattener{}
	if err := f.add(e); err != nil {
		return nil, err
	}
	children := make([]Evaluable, len(f.basis))
	for i, b := range f.basis {
		children[i] = b
	}
	return &Spline{children: children, combiner: Sum}, nil
}

type flattener struct {
	basis []*BasisPolynomial
}

func (f *flattener) add(e Evaluable) error {
	switch e := e.(type) {
	case *BSpline:
		return f.add(e.spline)
	case *Spline:
		for _, child := range e.children {
			if err := f.add(child); err != nil {
				return err
			}
		}
		return nil
	case *BasisPolynomial:
		for _, b := range f.basis {
			if b.support.Equal(e.support) {
				// b is a copy owned by f
				p, err := b.poly.Add(e.poly)
				if err != nil {
					return err
				}
				b.poly = p
				return nil
			}
		}
		f.basis = append(f.basis, NewBasisPolynomial(e.poly, e.support))
		return nil
	default:
		return fmt.Errorf("flattening %T: %w", e, ErrInvalidChild)
	}
}

// Derivative returns the derivative of a polynomial, basis polynomial or
// spline. Basis polynomials keep their support ranges, so the result is only
// meaningful away from the boundaries of the support ranges.
func Derivative(e Evaluable) (Evaluable, error) {
	switch e := e.(type) {
	case Polynomial:
		return e.Derivative(), nil
	case *BasisPolynomial:
		return NewBasisPolynomial(e.poly.Derivative(), e.support), nil
	case *Spline:
		out := &Spline{
			children: make([]Evaluable, len(e.children)),
			combiner: e.combiner,
		}
		for i, child := range e.children {
			d, err := Derivative(child)
			if err != nil {
				return nil, err
			}
			out.children[i] = d
		}
		return out, nil
	case *BSpline:
		return Derivative(e.spline)
	default:
		return nil, fmt.Errorf("differentiating %T: %w", e, ErrInvalidChild)
	}
}
