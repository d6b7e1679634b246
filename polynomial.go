package bspline

import (
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// Evaluable describes anything that maps a real number to a [Value].
type Evaluable interface {
	Evaluate(x float64) (Value, error)
}

var _ Evaluable = Polynomial{}

// Polynomial is a polynomial in one variable whose coefficients are [Value]s.
// All coefficients are scalars, or all are vectors of one dimensionality; the
// scalar zero may appear in either kind.
//
// Polynomials are immutable. The zero value is the zero polynomial.
type Polynomial struct {
	// coefficients from the highest power to the constant term, without
	// leading zeros.
	coefs []Value
	dims  int
}

// NewPolynomial returns the polynomial with the given coefficients, ordered
// from the highest power to the constant term. Leading zero coefficients are
// dropped. It returns [ErrDimensionMismatch] if the coefficients don't share
// a dimensionality.
func NewPolynomial(coefs ...Value) (Polynomial, error) {
	dims, err := CommonDimensions(coefs...)
	if err != nil {
		return Polynomial{}, err
	}
	for len(coefs) > 0 && isZeroCoef(coefs[0]) {
		coefs = coefs[1:]
	}
	if len(coefs) == 0 {
		return Polynomial{dims: dims}, nil
	}
	return Polynomial{
		coefs: append([]Value(nil), coefs...),
		dims:  dims,
	}, nil
}

// Poly returns the polynomial with the given scalar coefficients, ordered
// from the highest power to the constant term.
func Poly(coefs ...float64) Polynomial {
	vs := make([]Value, len(coefs))
	for i, c := range coefs {
		vs[i] = Scalar(c)
	}
	p, err := NewPolynomial(vs...)
	if err != nil {
		panic("unreachable")
	}
	return p
}

func isZeroCoef(v Value) bool {
	if v.IsVector() {
		return v.v.IsZero()
	}
	return v.IsZero()
}

// Degree returns the highest power with a non-zero coefficient. The zero
// polynomial has degree -1.
func (p Polynomial) Degree() int {
	return len(p.coefs) - 1
}

// Dimensions returns the dimensionality of the coefficients, or 0 if all
// coefficients are the scalar zero.
func (p Polynomial) Dimensions() int {
	return p.dims
}

// Coef returns the coefficient of x^power. Powers outside of [0, degree] have
// the coefficient zero.
func (p Polynomial) Coef(power int) Value {
	idx := len(p.coefs) - 1 - power
	if power < 0 || idx < 0 {
		return Zero
	}
	return p.coefs[idx]
}

// Coefficients returns a copy of the coefficients, from the highest power to
// the constant term.
func (p Polynomial) Coefficients() []Value {
	return append([]Value(nil), p.coefs...)
}

// Evaluate evaluates the polynomial at x using Horner's method.
func (p Polynomial) Evaluate(x float64) (Value, error) {
	var acc Value
	for _, c := range p.coefs {
		var err error
		acc, err = Product(acc, Scalar(x))
		if err != nil {
			return Value{}, err
		}
		acc, err = Add(acc, c)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// AddConstant adds v to the constant term.
func (p Polynomial) AddConstant(v Value) (Polynomial, error) {
	if len(p.coefs) == 0 {
		return NewPolynomial(v)
	}
	coefs := p.Coefficients()
	c, err := Add(coefs[len(coefs)-1], v)
	if err != nil {
		return Polynomial{}, err
	}
	coefs[len(coefs)-1] = c
	return NewPolynomial(coefs...)
}

// Add returns p + o.
func (p Polynomial) Add(o Polynomial) (Polynomial, error) {
	n := max(p.Degree(), o.Degree()) + 1
	coefs := make([]Value, n)
	for i := range coefs {
		power := n - 1 - i
		c, err := Add(p.Coef(power), o.Coef(power))
		if err != nil {
			return Polynomial{}, err
		}
		coefs[i] = c
	}
	return NewPolynomial(coefs...)
}

// Scale multiplies every coefficient by k, using [Product]. Scaling
// vector-valued coefficients by a vector yields a scalar polynomial.
func (p Polynomial) Scale(k Value) (Polynomial, error) {
	coefs := make([]Value, len(p.coefs))
	for i, c := range p.coefs {
		v, err := Product(c, k)
		if err != nil {
			return Polynomial{}, err
		}
		coefs[i] = v
	}
	return NewPolynomial(coefs...)
}

// Mul returns p · o.
func (p Polynomial) Mul(o Polynomial) (Polynomial, error) {
	if len(p.coefs) == 0 || len(o.coefs) == 0 {
		return Polynomial{}, nil
	}
	n := p.Degree() + o.Degree() + 1
	coefs := make([]Value, n)
	for i := range coefs {
		power := n - 1 - i
		var c Value
		for tp := 0; tp <= power; tp++ {
			prod, err := Product(p.Coef(tp), o.Coef(power-tp))
			if err != nil {
				return Polynomial{}, err
			}
			c, err = Add(c, prod)
			if err != nil {
				return Polynomial{}, err
			}
		}
		coefs[i] = c
	}
	return NewPolynomial(coefs...)
}

// Derivative returns the first derivative of p.
func (p Polynomial) Derivative() Polynomial {
	if len(p.coefs) <= 1 {
		return Polynomial{dims: p.dims}
	}
	deg := p.Degree()
	coefs := make([]Value, deg)
	for i := range coefs {
		coefs[i] = p.coefs[i].Scale(float64(deg - i))
	}
	return Polynomial{coefs: coefs, dims: p.dims}
}

// Roots returns the real roots of a scalar polynomial of degree 1 to 3. It
// returns false for vector-valued polynomials, constants and polynomials of
// higher degree.
func (p Polynomial) Roots() ([]float64, bool) {
	if p.dims > 1 {
		return nil, false
	}
	c := func(power int) float64 { return p.Coef(power).Float() }
	switch p.Degree() {
	case 1:
		return []float64{-c(0) / c(1)}, true
	case 2:
		roots, n := curve.SolveQuadratic(c(0), c(1), c(2))
		return roots[:n], true
	case 3:
		roots, n := curve.SolveCubic(c(0), c(1), c(2), c(3))
		return roots[:n], true
	default:
		return nil, false
	}
}

func (p Polynomial) String() string {
	if len(p.coefs) == 0 {
		return "0"
	}
	var terms []string
	for i, c := range p.coefs {
		if isZeroCoef(c) {
			continue
		}
		power := len(p.coefs) - 1 - i
		var term string
		switch {
		case power == 0:
			term = c.String()
		case !c.IsVector() && c.s == 1:
			term = "x"
		case !c.IsVector() && c.s == -1:
			term = "-x"
		default:
			term = c.String() + "x"
		}
		if power > 1 {
			term += "^" + strconv.Itoa(power)
		}
		terms = append(terms, term)
	}
	return strings.ReplaceAll(strings.Join(terms, " + "), "+ -", "- ")
}
