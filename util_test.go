package bspline

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("got error %v, want %v", err, target)
	}
}

func eval(t *testing.T, e Evaluable, x float64) Value {
	t.Helper()
	v, err := e.Evaluate(x)
	if err != nil {
		t.Fatalf("evaluating %v at %g: %s", e, x, err)
	}
	return v
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// approxValue reports whether two values are within tol of each other,
// component-wise. The scalar zero equals zero vectors of any dimensionality.
func approxValue(a, b Value, tol float64) bool {
	if a.IsZero() && b.IsZero() {
		return true
	}
	dims := max(a.Dimensions(), b.Dimensions())
	if a.IsVector() && b.IsVector() && a.Dimensions() != b.Dimensions() {
		return false
	}
	va, err := Promote(a, dims)
	if err != nil {
		return false
	}
	vb, err := Promote(b, dims)
	if err != nil {
		return false
	}
	for i := range dims {
		if !approxEqual(va.At(i), vb.At(i), tol) {
			return false
		}
	}
	return true
}

var approxFloats = cmpopts.EquateApprox(0, 1e-9)
