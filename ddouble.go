package cutgen

import "math"

// Accum is a compensated (double-double, Neumaier/Kahan) running sum used
// wherever callers require rhs, coverweight, lambda, or a lifting
// partial-sum to be exact enough that the *sign* of a difference like mu-lambda
// never flips because of a stray ULP. Two plain float64s (hi, lo) represent
// the value hi+lo, with lo always much smaller in magnitude than hi.
type Accum struct {
	hi float64
	lo float64
}

// NewAccum starts a compensated accumulator at v.
func NewAccum(v float64) Accum {
	return Accum{hi: v}
}

// Value returns the accumulator's best double approximation.
func (a Accum) Value() float64 {
	return a.hi + a.lo
}

// Add performs a compensated addition of v, per Neumaier's variant of
// Kahan summation: the correction term absorbs whichever operand was
// smaller in magnitude rather than assuming hi is always larger.
func (a Accum) Add(v float64) Accum {
	t := a.hi + v
	if math.Abs(a.hi) >= math.Abs(v) {
		a.lo += (a.hi - t) + v
	} else {
		a.lo += (v - t) + a.hi
	}
	a.hi = t
	return a.renormalize()
}

// Sub is Add of the negation.
func (a Accum) Sub(v float64) Accum {
	return a.Add(-v)
}

// AddAccum folds another accumulator's hi and lo parts in, preserving
// compensation across both operands.
func (a Accum) AddAccum(b Accum) Accum {
	return a.Add(b.hi).Add(b.lo)
}

// Scale multiplies the accumulated value by a plain double. This is exact
// only up to the usual double-double product error, which is acceptable
// here since the scale factors in this engine are either powers of two
// (exact) or already-rounded cut coefficients.
func (a Accum) Scale(f float64) Accum {
	return NewAccum(a.hi*f + a.lo*f).renormalize()
}

// Div divides by a plain double.
func (a Accum) Div(f float64) Accum {
	return NewAccum(a.hi/f + a.lo/f).renormalize()
}

// renormalize re-splits hi/lo via a single two-sum pass so that repeated
// arithmetic does not let the correction term grow unbounded.
func (a Accum) renormalize() Accum {
	t := a.hi + a.lo
	var newLo float64
	if math.Abs(a.hi) >= math.Abs(a.lo) {
		newLo = (a.hi - t) + a.lo
	} else {
		newLo = (a.lo - t) + a.hi
	}
	return Accum{hi: t, lo: newLo}
}

// Cmp compares the accumulator's value against a plain double, using both
// limbs so that a near-zero lo term can still break a hi-tie in the right
// direction. Returns -1, 0, or 1.
func (a Accum) Cmp(v float64) int {
	d := a.hi - v + a.lo
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// Floor, Round and Ceil materialize the accumulator at integer-rounding
// boundaries by rounding Value(), i.e. hi+lo collapsed to one double. A lo
// smaller than half an ulp of hi is lost in that sum, so (n, tiny negative
// lo) floors to n rather than n-1.
func (a Accum) Floor() float64 { return math.Floor(a.Value()) }
func (a Accum) Round() float64 { return math.Round(a.Value()) }
func (a Accum) Ceil() float64  { return math.Ceil(a.Value()) }

// frexpScale returns 2^(-e) where e is the binary exponent of maxAbs, i.e.
// the factor that rescales maxAbs into [0.5, 1). Mirrors the host's use of
// frexp/ldexp for exact binary rescaling (no rounding error is introduced
// since the scale is always a power of two).
func frexpScale(maxAbs float64) (scale float64, exp int) {
	if maxAbs == 0 {
		return 1, 0
	}
	_, exp = math.Frexp(maxAbs)
	return math.Ldexp(1, -exp), exp
}
