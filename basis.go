package bspline

// BasisPolynomial is a polynomial that is only supported on a range. Outside
// of its support range it evaluates to zero.
type BasisPolynomial struct {
	poly    Polynomial
	support Range
}

var _ Evaluable = (*BasisPolynomial)(nil)

// NewBasisPolynomial returns p restricted to support.
func NewBasisPolynomial(p Polynomial, support Range) *BasisPolynomial {
	return &BasisPolynomial{poly: p, support: support}
}

// Polynomial returns the polynomial evaluated inside the support range.
func (b *BasisPolynomial) Polynomial() Polynomial { return b.poly }

// Support returns the range outside of which b is zero.
func (b *BasisPolynomial) Support() Range { return b.support }

// Evaluate returns the scalar zero if x lies outside the support range and
// the value of the polynomial otherwise.
func (b *BasisPolynomial) Evaluate(x float64) (Value, error) {
	if !b.support.Contains(x) {
		return Zero, nil
	}
	return b.poly.Evaluate(x)
}

// Scale returns b with its polynomial multiplied by k.
func (b *BasisPolynomial) Scale(k Value) (*BasisPolynomial, error) {
	p, err := b.poly.Scale(k)
	if err != nil {
		return nil, err
	}
	return NewBasisPolynomial(p, b.support), nil
}

// Mul returns b with its polynomial multiplied by p. The support range is
// unchanged.
func (b *BasisPolynomial) Mul(p Polynomial) (*BasisPolynomial, error) {
	q, err := b.poly.Mul(p)
	if err != nil {
		return nil, err
	}
	return NewBasisPolynomial(q, b.support), nil
}

func (b *BasisPolynomial) String() string {
	return b.poly.String() + ", x ∈ " + b.support.String()
}
