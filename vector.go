package bspline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is an immutable tuple of a fixed number of components. The number of
// components is the vector's dimensionality.
//
// The zero value is a vector with no components.
type Vector struct {
	c []float64
}

// Vec returns the vector ⟨c₀, c₁, …⟩. The components are copied.
func Vec(c ...float64) Vector {
	if len(c) == 0 {
		return Vector{}
	}
	return Vector{c: append([]float64(nil), c...)}
}

// zeroVec returns the n-dimensional zero vector.
func zeroVec(n int) Vector {
	return Vector{c: make([]float64, n)}
}

// Dimensions returns the number of components of v.
func (v Vector) Dimensions() int {
	return len(v.c)
}

// At returns the i-th component, or 0 if v has fewer than i+1 components.
func (v Vector) At(i int) float64 {
	if i < 0 || i >= len(v.c) {
		return 0
	}
	return v.c[i]
}

func (v Vector) X() float64 { return v.At(0) }
func (v Vector) Y() float64 { return v.At(1) }
func (v Vector) Z() float64 { return v.At(2) }

// Components returns a copy of the vector's components.
func (v Vector) Components() []float64 {
	return append([]float64(nil), v.c...)
}

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteString("⟨")
	for i, c := range v.c {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	}
	sb.WriteString("⟩")
	return sb.String()
}

// Equal reports whether v and o have the same dimensionality and components.
func (v Vector) Equal(o Vector) bool {
	if len(v.c) != len(o.c) {
		return false
	}
	for i := range v.c {
		if v.c[i] != o.c[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether all components are zero.
func (v Vector) IsZero() bool {
	for _, c := range v.c {
		if c != 0 {
			return false
		}
	}
	return true
}

// IsNaN reports whether at least one component is NaN.
func (v Vector) IsNaN() bool {
	for _, c := range v.c {
		if math.IsNaN(c) {
			return true
		}
	}
	return false
}

// Add adds two vectors of equal dimensionality.
func (v Vector) Add(o Vector) (Vector, error) {
	if len(v.c) != len(o.c) {
		return Vector{}, ErrDimensionMismatch
	}
	out := make([]float64, len(v.c))
	for i := range out {
		out[i] = v.c[i] + o.c[i]
	}
	return Vector{c: out}, nil
}

// Scale multiplies every component by k.
func (v Vector) Scale(k float64) Vector {
	out := make([]float64, len(v.c))
	for i := range out {
		out[i] = v.c[i] * k
	}
	return Vector{c: out}
}

// Dot returns the dot product of v and o, which must have equal
// dimensionality.
func (v Vector) Dot(o Vector) (float64, error) {
	if len(v.c) != len(o.c) {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range v.c {
		sum += v.c[i] * o.c[i]
	}
	return sum, nil
}

// Resize returns a vector with n components, padding v with zeros or
// truncating it as necessary.
func (v Vector) Resize(n int) (Vector, error) {
	if n <= 0 {
		return Vector{}, ErrNonPositiveDimensions
	}
	if n == len(v.c) {
		return v, nil
	}
	out := make([]float64, n)
	copy(out, v.c)
	return Vector{c: out}, nil
}

// Value is either a real number or a [Vector]. Coefficients of polynomials,
// control points and the results of evaluations are Values.
//
// The zero value is the scalar 0, which doubles as the additive identity of
// every dimensionality: adding it to a vector yields that vector, and
// multiplying anything by it yields it again. It is available as [Zero].
type Value struct {
	s      float64
	v      Vector
	vector bool
}

// Zero is the scalar zero.
var Zero = Value{}

// Scalar returns f as a Value.
func Scalar(f float64) Value {
	return Value{s: f}
}

// Tuple returns v as a Value.
func Tuple(v Vector) Value {
	return Value{v: v, vector: true}
}

// IsVector reports whether the value holds a vector.
func (v Value) IsVector() bool {
	return v.vector
}

// IsZero reports whether v is the scalar zero.
func (v Value) IsZero() bool {
	return !v.vector && v.s == 0
}

// Vector returns the vector held by v. If v is a scalar, it returns the
// one-dimensional vector ⟨v⟩ and false.
func (v Value) Vector() (Vector, bool) {
	if v.vector {
		return v.v, true
	}
	return Vec(v.s), false
}

// Float returns the scalar held by v, or the first component of a vector.
func (v Value) Float() float64 {
	if v.vector {
		return v.v.At(0)
	}
	return v.s
}

// Dimensions returns 1 for scalars and the vector's dimensionality otherwise.
func (v Value) Dimensions() int {
	if v.vector {
		return v.v.Dimensions()
	}
	return 1
}

// Scale multiplies v by k. Scaling the scalar zero yields the scalar zero.
func (v Value) Scale(k float64) Value {
	if v.IsZero() {
		return Zero
	}
	if v.vector {
		return Tuple(v.v.Scale(k))
	}
	return Scalar(v.s * k)
}

// Equal reports whether v and o are of the same kind and hold equal numbers.
func (v Value) Equal(o Value) bool {
	if v.vector != o.vector {
		return false
	}
	if v.vector {
		return v.v.Equal(o.v)
	}
	return v.s == o.s
}

func (v Value) String() string {
	if v.vector {
		return v.v.String()
	}
	return strconv.FormatFloat(v.s, 'g', -1, 64)
}

// Add adds two values.
//
// If either operand is the scalar zero, the other operand is returned. Two
// scalars add numerically, as do a scalar and a one-dimensional vector. Two
// vectors must have the same dimensionality. All other combinations return
// [ErrDimensionMismatch].
func Add(a, b Value) (Value, error) {
	switch {
	case a.IsZero():
		return b, nil
	case b.IsZero():
		return a, nil
	case a.vector && b.vector:
		v, err := a.v.Add(b.v)
		if err != nil {
			return Value{}, err
		}
		return Tuple(v), nil
	case a.vector || b.vector:
		if a.Dimensions() != 1 || b.Dimensions() != 1 {
			return Value{}, ErrDimensionMismatch
		}
		return Scalar(a.Float() + b.Float()), nil
	default:
		return Scalar(a.s + b.s), nil
	}
}

// Sum adds all values. The sum of no values is the scalar zero.
func Sum(values ...Value) (Value, error) {
	var acc Value
	for _, v := range values {
		var err error
		acc, err = Add(acc, v)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// Dot returns the dot product of two values. The dot product with the scalar
// zero is 0, and scalars act as one-dimensional vectors.
func Dot(a, b Value) (float64, error) {
	if a.IsZero() || b.IsZero() {
		return 0, nil
	}
	va, _ := a.Vector()
	vb, _ := b.Vector()
	return va.Dot(vb)
}

// Product multiplies two values: the dot product for two vectors, a scaled
// vector for a vector and a scalar, and the numeric product for two scalars.
// If either operand is the scalar zero, the result is the scalar zero.
func Product(a, b Value) (Value, error) {
	switch {
	case a.IsZero() || b.IsZero():
		return Zero, nil
	case a.vector && b.vector:
		d, err := a.v.Dot(b.v)
		if err != nil {
			return Value{}, err
		}
		return Scalar(d), nil
	case a.vector:
		return Tuple(a.v.Scale(b.s)), nil
	case b.vector:
		return Tuple(b.v.Scale(a.s)), nil
	default:
		return Scalar(a.s * b.s), nil
	}
}

// Promote returns v as an n-dimensional vector. The scalar zero becomes the
// zero vector, a scalar becomes ⟨v, 0, …⟩, and vectors are padded or
// truncated.
func Promote(v Value, n int) (Vector, error) {
	if n <= 0 {
		return Vector{}, ErrNonPositiveDimensions
	}
	switch {
	case v.IsZero():
		return zeroVec(n), nil
	case v.vector:
		return v.v.Resize(n)
	default:
		return Vec(v.s).Resize(n)
	}
}

// WithComponent returns a copy of v with component i set to f. Scalars are
// promoted to n-dimensional vectors first; the original value isn't modified.
func WithComponent(v Value, i int, f float64, n int) (Value, error) {
	dims := n
	if v.vector {
		dims = max(v.v.Dimensions(), i+1)
	}
	vec, err := Promote(v, dims)
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= vec.Dimensions() {
		return Value{}, fmt.Errorf("component %d of %d-dimensional vector: %w", i, vec.Dimensions(), ErrDimensionMismatch)
	}
	c := vec.Components()
	c[i] = f
	return Tuple(Vector{c: c}), nil
}

// CommonDimensions returns the dimensionality shared by all values, ignoring
// the scalar zero. It returns 0 if there are no such values, and
// [ErrDimensionMismatch] if the values disagree.
func CommonDimensions(values ...Value) (int, error) {
	dims := 0
	for _, v := range values {
		if v.IsZero() {
			continue
		}
		d := v.Dimensions()
		if dims == 0 {
			dims = d
		} else if d != dims {
			return 0, ErrDimensionMismatch
		}
	}
	return dims, nil
}
