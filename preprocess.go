package cutgen

import (
	"math"
	"sort"
)

// maxRowLen returns the length cap named in the preprocessing algorithm:
// 100 plus 15% of the number of columns in the LP.
func maxRowLen(numCols int) int {
	return 100 + int(math.Floor(0.15*float64(numCols)))
}

// preprocessBaseInequality rescales, cleans, and classifies the working
// row in place. It reports the structural flags the router needs and
// whether the row is still meaningful (maxact > rhs); ok is false when the
// row must be rejected outright.
func preprocessBaseInequality(r *Row, cfg Config, numCols int) (flags rowFlags, ok bool, err error) {
	n := r.Len()
	if n == 0 {
		return rowFlags{}, false, ErrRowRedundant
	}

	// Step 1: centre the coefficients by rescaling with the exact binary
	// exponent of the largest magnitude, so maxAbs lands in [0.5, 1).
	maxAbs := 0.0
	for i := 0; i < n; i++ {
		if a := math.Abs(r.Vals[i]); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs > 0 {
		scale, _ := frexpScale(maxAbs)
		for i := 0; i < n; i++ {
			r.Vals[i] *= scale
		}
		r.Rhs = r.Rhs.Scale(scale)
	}

	// Step 2: drop coefficients below feastol, bound-substituting negative
	// ones into rhs (requires a finite upper bound).
	drop := make([]bool, n)
	for i := 0; i < n; i++ {
		if math.Abs(r.Vals[i]) <= cfg.Feastol {
			if r.Vals[i] < 0 {
				if math.IsInf(r.Upper[i], 1) {
					return rowFlags{}, false, ErrUnboundedCancel
				}
				r.Rhs = r.Rhs.Sub(r.Vals[i] * r.Upper[i])
			}
			drop[i] = true
		}
	}
	r.compact(drop)
	n = r.Len()

	// Step 3: classify variables and accumulate maxact.
	maxact := NewAccum(0)
	maxactInf := false
	for i := 0; i < n; i++ {
		if !r.Integer[i] {
			flags.hasContinuous = true
		} else {
			if math.IsInf(r.Upper[i], 1) {
				flags.hasUnboundedInts = true
				flags.hasGeneralInts = true
			} else if r.Upper[i] != 1 {
				flags.hasGeneralInts = true
			}
		}
		if r.Vals[i] > 0 {
			if math.IsInf(r.Upper[i], 1) {
				maxactInf = true
			} else {
				maxact = maxact.Add(r.Vals[i] * r.Upper[i])
			}
		}
	}

	// Step 4: if the row is still too long, cancel the smallest-magnitude
	// entries whose slack to their own bound is within feastol.
	maxLen := maxRowLen(numCols)
	n = r.Len()
	if n > maxLen {
		k := n - maxLen

		type cand struct {
			i    int
			abs  float64
		}
		var cancellable []cand
		for i := 0; i < n; i++ {
			var slack float64
			if r.Vals[i] > 0 {
				slack = r.Solval[i]
			} else {
				if math.IsInf(r.Upper[i], 1) {
					continue // cannot be cancelled, excluded from candidates
				}
				slack = r.Upper[i] - r.Solval[i]
			}
			if slack <= cfg.Feastol {
				cancellable = append(cancellable, cand{i: i, abs: math.Abs(r.Vals[i])})
			}
		}
		if len(cancellable) < k {
			return rowFlags{}, false, ErrRowTooLong
		}
		sort.Slice(cancellable, func(a, b int) bool { return cancellable[a].abs < cancellable[b].abs })

		drop = make([]bool, n)
		for _, c := range cancellable[:k] {
			i := c.i
			if r.Vals[i] < 0 {
				if math.IsInf(r.Upper[i], 1) {
					return rowFlags{}, false, ErrUnboundedCancel
				}
				r.Rhs = r.Rhs.Sub(r.Vals[i] * r.Upper[i])
			} else if !math.IsInf(r.Upper[i], 1) {
				maxact = maxact.Sub(r.Vals[i] * r.Upper[i])
			}
			drop[i] = true
		}
		r.compact(drop)
	}

	flags.hasContinuous = false
	flags.hasGeneralInts = false
	flags.hasUnboundedInts = false
	n = r.Len()
	for i := 0; i < n; i++ {
		if !r.Integer[i] {
			flags.hasContinuous = true
			continue
		}
		if math.IsInf(r.Upper[i], 1) {
			flags.hasUnboundedInts = true
			flags.hasGeneralInts = true
		} else if r.Upper[i] != 1 {
			flags.hasGeneralInts = true
		}
	}

	if maxactInf {
		return flags, true, nil
	}
	return flags, maxact.Cmp(r.Rhs.Value()) > 0, nil
}
