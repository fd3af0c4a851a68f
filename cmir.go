package cutgen

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// mirCandidate is one fully-formed c-MIR inequality together with the
// efficacy it attains at the current reference point, used to compare
// divisor and complementation choices.
type mirCandidate struct {
	vals     []float64
	rhs      float64
	f0       float64
	integral bool
	efficacy float64
}

// buildMIR derives the MIR inequality for a given divisor from the row's
// current (possibly complemented) coefficients, without mutating r.
func buildMIR(r *Row, delta float64, cfg Config) (mirCandidate, bool) {
	rhsVal := r.Rhs.Value()
	q := rhsVal / delta
	f0 := q - math.Floor(q)
	if f0 < 0.01 || f0 > 0.99 {
		return mirCandidate{}, false
	}
	if 1/((1-f0)*delta) > cfg.MIRDynamismBound {
		return mirCandidate{}, false
	}

	n := r.Len()
	vals := make([]float64, n)
	integral := true
	for i := 0; i < n; i++ {
		v := r.Vals[i]
		if r.Integer[i] {
			q2 := v / delta
			fl := math.Floor(q2)
			fj := q2 - fl
			vals[i] = fl + math.Max(0, fj-f0)/(1-f0)
		} else if v < 0 {
			// Negative continuous coefficients become v/((1-f0)*delta),
			// on the same 1/delta scale as the integer terms. Zeroing them
			// would raise the LHS and can invalidate the cut, unlike
			// dropping a positive coefficient.
			vals[i] = v / ((1 - f0) * delta)
			integral = false
		} else {
			vals[i] = 0
		}
	}
	rhs := math.Floor(q)

	violation := 0.0
	for i := 0; i < n; i++ {
		violation += vals[i] * r.Solval[i]
	}
	violation -= rhs

	norm := floats.Norm(vals, 2)
	efficacy := math.Inf(-1)
	if norm > 0 {
		efficacy = violation / norm
	}

	return mirCandidate{vals: vals, rhs: rhs, f0: f0, integral: integral, efficacy: efficacy}, true
}

// candidateDeltas builds the deduplicated divisor search set of section 4.6
// step 2: every |coefficient| of an integer variable with a solution value
// above Feastol and magnitude in [MIRDeltaMin, MIRDeltaMax], plus
// maxAbs+1 (if in range) and 1.0.
func candidateDeltas(r *Row, cfg Config) []float64 {
	maxAbs := 0.0
	var deltas []float64
	for i := 0; i < r.Len(); i++ {
		a := math.Abs(r.Vals[i])
		if a > maxAbs {
			maxAbs = a
		}
		if r.Integer[i] && r.Solval[i] > cfg.Feastol && a >= cfg.MIRDeltaMin && a <= cfg.MIRDeltaMax {
			deltas = append(deltas, a)
		}
	}
	if v := maxAbs + 1; v >= cfg.MIRDeltaMin && v <= cfg.MIRDeltaMax {
		deltas = append(deltas, v)
	}
	deltas = append(deltas, 1.0)

	sort.Float64s(deltas)
	out := deltas[:0]
	for _, d := range deltas {
		if len(out) == 0 || d-out[len(out)-1] > cfg.Feastol {
			out = append(out, d)
		}
	}
	return out
}

// cMIRHeuristic implements section 4.6 end to end: pre-complementation,
// divisor search (with doubling refinement), and a final per-variable
// complementation-flip improvement pass. It mutates r in place on success.
func cMIRHeuristic(r *Row, cfg Config) (ok bool, integralSupport bool, err error) {
	n := r.Len()
	if n == 0 {
		return false, false, ErrRowTooShortRHS
	}

	// Step 1: complement bounded integers that sit closer to their upper
	// bound than to their lower bound in the LP point.
	for i := 0; i < n; i++ {
		if r.Integer[i] && !math.IsInf(r.Upper[i], 1) && r.Upper[i] < 2*r.Solval[i] {
			r.complementAt(i)
		}
	}

	deltas := candidateDeltas(r, cfg)
	if len(deltas) == 0 {
		return false, false, ErrNoDelta
	}

	var best mirCandidate
	bestDelta := 0.0
	found := false
	for _, d := range deltas {
		cand, okc := buildMIR(r, d, cfg)
		if !okc {
			continue
		}
		if !found || cand.efficacy > best.efficacy {
			best = cand
			bestDelta = d
			found = true
		}
	}
	if !found {
		return false, false, ErrNoDelta
	}

	// Step 4: try doublings of the best divisor.
	for _, mult := range []float64{2, 4, 8} {
		d := bestDelta * mult
		if d > cfg.MIRDeltaMax {
			continue
		}
		if cand, okc := buildMIR(r, d, cfg); okc && cand.efficacy > best.efficacy {
			best = cand
			bestDelta = d
		}
	}

	// Step 5: try flipping the complementation of each bounded integer,
	// keeping only strict efficacy improvements.
	for i := 0; i < n; i++ {
		if !r.Integer[i] || math.IsInf(r.Upper[i], 1) {
			continue
		}
		r.complementAt(i)
		if cand, okc := buildMIR(r, bestDelta, cfg); okc && cand.efficacy > best.efficacy {
			best = cand
		} else {
			r.complementAt(i) // revert, not an improvement
		}
	}

	// Recompute against the (possibly re-flipped) final row state so the
	// emitted coefficients match the complementation actually kept.
	final, okf := buildMIR(r, bestDelta, cfg)
	if !okf {
		return false, false, ErrNoDelta
	}

	copy(r.Vals, final.vals)
	r.Rhs = NewAccum(final.rhs)

	return true, final.integral, nil
}
