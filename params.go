package bspline

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"
)

// lerp interpolates linearly between a and b. lerp(a, b, 1) is exactly b.
func lerp[T constraints.Float](a, b, t T) T {
	return (1-t)*a + t*b
}

// Params returns an iterator over n+1 evenly spaced parameters from lo to hi,
// both inclusive. It yields nothing if n < 1.
func Params(lo, hi float64, n int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if n < 1 {
			return
		}
		for i := 0; i <= n; i++ {
			// interpolate rather than accumulate, so that hi is hit exactly
			if !yield(lerp(lo, hi, float64(i)/float64(n))) {
				return
			}
		}
	}
}

// stepPrecision is the number of decimal places StepParams rounds to.
const stepPrecision = 4

// StepParams returns an iterator over lo, lo+step, lo+2·step, … up to and
// including hi. Every parameter is rounded to four decimal places so that
// accumulated floating point error doesn't skip hi. It yields nothing if step
// isn't positive.
func StepParams(lo, hi, step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if !(step > 0) {
			return
		}
		scale := math.Pow(10, stepPrecision)
		for x := lo; x <= hi; x = math.Round((x+step)*scale) / scale {
			if !yield(x) {
				return
			}
		}
	}
}
