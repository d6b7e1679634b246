package bspline

import (
	"fmt"
	"slices"
	"testing"
)

func TestSimpleRangeContains(t *testing.T) {
	tt := []struct {
		r    SimpleRange
		p    float64
		want bool
	}{
		{Closed(0, 1), 0, true},
		{Closed(0, 1), 1, true},
		{Closed(0, 1), 0.5, true},
		{Closed(0, 1), -0.1, false},
		{Closed(0, 1), 1.1, false},
		{ClosedOpen(0, 1), 0, true},
		{ClosedOpen(0, 1), 1, false},
		{SimpleRange{Low: 0, High: 1}, 0, false},
		{SimpleRange{Low: 0, High: 1}, 1, false},
		{SimpleRange{Low: 0, High: 1}, 0.5, true},
		{SimpleRange{Low: 0, High: 1, InclusiveHigh: true}, 1, true},
		{SimpleRange{Low: 0, High: 1, Complement: true}, 0.5, false},
		{SimpleRange{Low: 0, High: 1, Complement: true}, 0, true},
		{SimpleRange{Low: 0, High: 1, Complement: true}, 2, true},
		{SimpleRange{Low: 0, High: 1, InclusiveLow: true, Complement: true}, 0, false},
		// degenerate ranges
		{Closed(1, 1), 1, true},
		{ClosedOpen(1, 1), 1, true},
		{SimpleRange{Low: 1, High: 1}, 1, false},
		{Closed(2, 1), 1.5, false},
	}
	for _, tc := range tt {
		if got := tc.r.Contains(tc.p); got != tc.want {
			t.Errorf("%v.Contains(%g) = %t, want %t", tc.r, tc.p, got, tc.want)
		}
	}
}

func TestSimpleRangeString(t *testing.T) {
	tt := []struct {
		r    SimpleRange
		want string
	}{
		{ClosedOpen(0, 0.5), "[0, 0.5)"},
		{Closed(-1, 2), "[-1, 2]"},
		{SimpleRange{Low: 0, High: 1}, "(0, 1)"},
		{SimpleRange{Low: 0, High: 1, InclusiveHigh: true, Complement: true}, "(0, 1]'"},
	}
	for _, tc := range tt {
		diff(t, tc.want, tc.r.String())
	}
}

func TestSimpleRangeEqual(t *testing.T) {
	if !ClosedOpen(0, 1).Equal(ClosedOpen(0, 1)) {
		t.Error("identical ranges aren't equal")
	}
	if ClosedOpen(0, 1).Equal(Closed(0, 1)) {
		t.Error("ranges with different inclusivity are equal")
	}
	if ClosedOpen(0, 1).Equal(SimpleRange{Low: 0, High: 1, InclusiveLow: true, Complement: true}) {
		t.Error("range equals its complement")
	}
	c, err := NewCompositeRange([]Range{ClosedOpen(0, 1)}, Union, false)
	if err != nil {
		t.Fatal(err)
	}
	if ClosedOpen(0, 1).Equal(c) {
		t.Error("simple range equals composite range")
	}
}

func TestUniformSplit(t *testing.T) {
	if got := UniformSplit(0, 1, 0); got != nil {
		t.Errorf("got %v for n = 0, want nil", got)
	}

	diff(t, []SimpleRange{Closed(2, 5)}, UniformSplit(2, 5, 1))
	diff(t, []SimpleRange{
		ClosedOpen(0, 0.25),
		ClosedOpen(0.25, 0.5),
		ClosedOpen(0.5, 0.75),
		Closed(0.75, 1),
	}, UniformSplit(0, 1, 4))

	for _, n := range []int{1, 3, 7, 10} {
		ranges := UniformSplit(-1, 2, n)
		diff(t, n, len(ranges))
		for x := range Params(-1, 2, 97) {
			count := 0
			for _, r := range ranges {
				if r.Contains(x) {
					count++
				}
			}
			if count != 1 {
				t.Errorf("n = %d: %g is in %d ranges, want 1", n, x, count)
			}
		}
		for i := 1; i < len(ranges); i++ {
			if ranges[i].Low != ranges[i-1].High {
				t.Errorf("n = %d: gap between %v and %v", n, ranges[i-1], ranges[i])
			}
		}
	}
}

func TestCompositeRangeContains(t *testing.T) {
	a := ClosedOpen(0, 0.5)
	b := Closed(0.5, 1)

	union, err := NewCompositeRange([]Range{a, b}, Union, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		if !union.Contains(p) {
			t.Errorf("%v doesn't contain %g", union, p)
		}
	}
	for _, p := range []float64{-0.5, 1.5} {
		if union.Contains(p) {
			t.Errorf("%v contains %g", union, p)
		}
	}

	inter, err := NewCompositeRange([]Range{a, b}, Intersection, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		if inter.Contains(p) {
			t.Errorf("%v contains %g", inter, p)
		}
	}

	inter2, err := NewCompositeRange([]Range{Closed(0, 2), Closed(1, 3)}, Intersection, false)
	if err != nil {
		t.Fatal(err)
	}
	if !inter2.Contains(1.5) || inter2.Contains(0.5) || inter2.Contains(2.5) {
		t.Errorf("%v has wrong membership", inter2)
	}

	compl, err := NewCompositeRange([]Range{a, b}, Union, true)
	if err != nil {
		t.Fatal(err)
	}
	if compl.Contains(0.5) || !compl.Contains(2) {
		t.Errorf("%v has wrong membership", compl)
	}

	nested, err := NewCompositeRange([]Range{union, Closed(5, 6)}, Union, false)
	if err != nil {
		t.Fatal(err)
	}
	if !nested.Contains(0.75) || !nested.Contains(5.5) || nested.Contains(3) {
		t.Errorf("%v has wrong membership", nested)
	}

	empty, err := NewCompositeRange(nil, Union, false)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Contains(0) {
		t.Error("empty union contains 0")
	}
	all, err := NewCompositeRange(nil, Intersection, false)
	if err != nil {
		t.Fatal(err)
	}
	if !all.Contains(0) {
		t.Error("empty intersection doesn't contain 0")
	}
}

func TestCompositeRangeUnsupportedOperator(t *testing.T) {
	_, err := NewCompositeRange([]Range{Closed(0, 1)}, Operator(7), false)
	wantErr(t, err, ErrUnsupportedOperator)
}

func TestCompositeRangeEqual(t *testing.T) {
	a := ClosedOpen(0, 0.5)
	b := Closed(0.5, 1)
	mk := func(children []Range, op Operator, complement bool) *CompositeRange {
		t.Helper()
		r, err := NewCompositeRange(children, op, complement)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}

	r1 := mk([]Range{a, b}, Union, false)
	if !r1.Equal(mk([]Range{a, b}, Union, false)) {
		t.Error("identically constructed unions aren't equal")
	}
	if !r1.Equal(mk([]Range{b, a}, Union, false)) {
		t.Error("child order affects equality")
	}
	if r1.Equal(mk([]Range{a, b}, Intersection, false)) {
		t.Error("union equals intersection")
	}
	if r1.Equal(mk([]Range{a, b}, Union, true)) {
		t.Error("union equals its complement")
	}
	if r1.Equal(mk([]Range{a}, Union, false)) {
		t.Error("ranges with different numbers of children are equal")
	}
	if r1.Equal(a) {
		t.Error("composite range equals simple range")
	}
	if mk([]Range{a, a}, Union, false).Equal(mk([]Range{a, b}, Union, false)) {
		t.Error("repeated child matched two distinct children")
	}
	if mk([]Range{a, b}, Union, false).Equal(mk([]Range{a, a}, Union, false)) {
		t.Error("distinct children matched a repeated child")
	}
	if !mk([]Range{a, a, b}, Union, false).Equal(mk([]Range{a, b, a}, Union, false)) {
		t.Error("equal multisets of children aren't equal")
	}

	set := listRange{0.25, 0.75}
	withSet := mk([]Range{set, a}, Union, false)
	if withSet.Equal(mk([]Range{set, a}, Union, false)) {
		t.Error("uncomparable children compared equal")
	}
	if !withSet.Equal(withSet) {
		t.Error("range isn't equal to itself")
	}

	// Equality is shallow: equivalent nested composites are distinct
	// children.
	n1 := mk([]Range{mk([]Range{a}, Union, false)}, Union, false)
	n2 := mk([]Range{mk([]Range{a}, Union, false)}, Union, false)
	if n1.Equal(n2) {
		t.Error("nested composites compared deeply")
	}
	inner := mk([]Range{a}, Union, false)
	if !mk([]Range{inner}, Union, false).Equal(mk([]Range{inner}, Union, false)) {
		t.Error("composites sharing a child aren't equal")
	}
}

func TestCompositeRangeString(t *testing.T) {
	r, err := NewCompositeRange([]Range{ClosedOpen(0, 0.5), Closed(0.5, 1)}, Union, false)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "([0, 0.5) ∪ [0.5, 1])", r.String())

	r, err = NewCompositeRange([]Range{Closed(0, 1), Closed(1, 2)}, Intersection, true)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "([0, 1] ∩ [1, 2])'", r.String())
}

// listRange contains exactly the listed numbers. It isn't comparable with ==.
type listRange []float64

func (r listRange) Contains(p float64) bool { return slices.Contains(r, p) }
func (r listRange) Equal(o Range) bool { return false }
func (r listRange) String() string { return fmt.Sprint([]float64(r)) }
