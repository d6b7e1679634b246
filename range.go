package bspline

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Range is a subset of the real numbers, described by a membership
// predicate.
//
// Ranges can be compared with Equal, but the comparison is shallow: two ranges
// built the same way compare equal, while two ranges that merely describe the
// same set may not.
type Range interface {
	// Contains reports whether p lies in the range.
	Contains(p float64) bool
	// Equal reports whether o was constructed like the receiver.
	Equal(o Range) bool
	String() string
}

var _ Range = SimpleRange{}
var _ Range = (*CompositeRange)(nil)

// SimpleRange is one continuous interval of real numbers, or, if Complement
// is set, everything outside of it.
type SimpleRange struct {
	Low, High     float64
	InclusiveLow  bool
	InclusiveHigh bool
	Complement    bool
}

// Closed returns the range [lo, hi].
func Closed(lo, hi float64) SimpleRange {
	return SimpleRange{Low: lo, High: hi, InclusiveLow: true, InclusiveHigh: true}
}

// ClosedOpen returns the range [lo, hi).
func ClosedOpen(lo, hi float64) SimpleRange {
	return SimpleRange{Low: lo, High: hi, InclusiveLow: true}
}

func (r SimpleRange) Contains(p float64) bool {
	in := (p > r.Low && p < r.High) ||
		(r.InclusiveLow && p == r.Low) ||
		(r.InclusiveHigh && p == r.High)
	return in != r.Complement
}

// Equal reports whether o is a SimpleRange with the same boundaries and
// flags.
func (r SimpleRange) Equal(o Range) bool {
	or, ok := o.(SimpleRange)
	return ok && r == or
}

// Width returns High - Low.
func (r SimpleRange) Width() float64 {
	return r.High - r.Low
}

func (r SimpleRange) String() string {
	var sb strings.Builder
	if r.InclusiveLow {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	sb.WriteString(strconv.FormatFloat(r.Low, 'g', -1, 64))
	sb.WriteString(", ")
	sb.WriteString(strconv.FormatFloat(r.High, 'g', -1, 64))
	if r.InclusiveHigh {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	if r.Complement {
		sb.WriteByte('\'')
	}
	return sb.String()
}

// Operator combines the children of a [CompositeRange].
type Operator uint8

const (
	Union Operator = iota
	Intersection
)

func (op Operator) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	default:
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
}

func (op Operator) symbol() string {
	if op == Intersection {
		return " ∩ "
	}
	return " ∪ "
}

// CompositeRange joins child ranges with an [Operator]. The zero value is an
// empty union, which contains nothing.
type CompositeRange struct {
	children   []Range
	op         Operator
	complement bool
}

// NewCompositeRange returns the union or intersection of children. If
// complement is set, the range contains exactly the points the union or
// intersection doesn't.
func NewCompositeRange(children []Range, op Operator, complement bool) (*CompositeRange, error) {
	if op != Union && op != Intersection {
		return nil, fmt.Errorf("%v: %w", op, ErrUnsupportedOperator)
	}
	return &CompositeRange{
		children:   append([]Range(nil), children...),
		op:         op,
		complement: complement,
	}, nil
}

// Children returns a copy of the child ranges.
func (r *CompositeRange) Children() []Range {
	return append([]Range(nil), r.children...)
}

func (r *CompositeRange) Operator() Operator { return r.op }
func (r *CompositeRange) Complement() bool   { return r.complement }

func (r *CompositeRange) Contains(p float64) bool {
	// Union is seeded with false, intersection with true.
	in := r.op == Intersection
	for _, child := range r.children {
		switch r.op {
		case Union:
			in = in || child.Contains(p)
		case Intersection:
			in = in && child.Contains(p)
		default:
			panic(fmt.Sprintf("invalid range operator %v", r.op))
		}
	}
	return in != r.complement
}

// Equal reports whether o is a CompositeRange with the same operator and
// complement flag, whose children are the very same ranges as r's, in any
// order. Children are matched one-to-one and aren't compared recursively.
// Children whose types aren't comparable with == only match themselves
// through r and o being the same range.
func (r *CompositeRange) Equal(o Range) bool {
	or, ok := o.(*CompositeRange)
	if !ok || or == nil {
		return false
	}
	if r == or {
		return true
	}
	if r.op != or.op || r.complement != or.complement || len(r.children) != len(or.children) {
		return false
	}
	used := make([]bool, len(or.children))
	for _, child := range r.children {
		found := false
		for i, oc := range or.children {
			if !used[i] && sameRange(child, oc) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameRange reports whether a and b are identical, without panicking on
// ranges of uncomparable types.
func sameRange(a, b Range) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

func (r *CompositeRange) String() string {
	parts := make([]string, len(r.children))
	for i, child := range r.children {
		parts[i] = child.String()
	}
	s := "(" + strings.Join(parts, r.op.symbol()) + ")"
	if r.complement {
		s += "'"
	}
	return s
}

// UniformSplit splits [lo, hi] into n adjacent ranges of equal width. All
// ranges but the last are of the form [a, b), the last is [a, hi], so every
// point in [lo, hi] belongs to exactly one of them. It returns nil if n < 1.
func UniformSplit(lo, hi float64, n int) []SimpleRange {
	if n < 1 {
		return nil
	}
	bounds := make([]float64, n+1)
	bounds[0] = lo
	for i := 1; i < n; i++ {
		bounds[i] = (lo*float64(n-i) + hi*float64(i)) / float64(n)
	}
	bounds[n] = hi

	out := make([]SimpleRange, n)
	for i := range out {
		out[i] = ClosedOpen(bounds[i], bounds[i+1])
	}
	out[n-1].InclusiveHigh = true
	return out
}
