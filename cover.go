package cutgen

import (
	"math"
	"sort"
)

// determineCover selects the knapsack cover from an already-preprocessed
// row. lpSol distinguishes the LP-separation path (true, which seeds the
// cover with at-upper-bound variables first) from the conflict path
// (false). It populates cov in place and reports whether a valid cover
// (lambda strictly above minLambda) was found.
func determineCover(r *Row, cov *coverState, cfg Config, lpSol bool, poolSize int) (ok bool, err error) {
	cov.reset()

	rhsVal := r.Rhs.Value()
	if rhsVal <= 10*cfg.Feastol {
		return false, ErrRowTooShortRHS
	}

	type candidate struct {
		i          int
		atUpper    bool
		activity   float64
	}

	var candidates []candidate
	n := r.Len()
	for i := 0; i < n; i++ {
		if !r.Integer[i] || r.Solval[i] <= cfg.Feastol {
			continue
		}
		atUpper := r.Solval[i] >= r.Upper[i]-cfg.Feastol
		candidates = append(candidates, candidate{i: i, atUpper: atUpper, activity: r.Solval[i] * r.Vals[i]})
	}

	var prefix, rest []candidate
	if lpSol {
		for _, c := range candidates {
			if c.atUpper {
				prefix = append(prefix, c)
			} else {
				rest = append(rest, c)
			}
		}
	} else {
		rest = candidates
	}

	sort.SliceStable(rest, func(a, b int) bool {
		ca, cb := rest[a], rest[b]
		if ca.activity != cb.activity {
			return ca.activity > cb.activity
		}
		if r.Vals[ca.i] != r.Vals[cb.i] {
			return r.Vals[ca.i] > r.Vals[cb.i]
		}
		return tiebreakHash(r.Inds[ca.i], poolSize) > tiebreakHash(r.Inds[cb.i], poolSize)
	})

	// The prefix (at-upper-bound columns, on the LP-separation path only)
	// seeds coverweight unconditionally; only the sorted remainder is
	// subject to the greedy "stop once lambda clears minLambda" rule.
	for _, c := range prefix {
		cov.idx = append(cov.idx, c.i)
		cov.coverweight = cov.coverweight.Add(r.Vals[c.i] * r.Upper[c.i])
	}
	cov.lambda = cov.coverweight.Sub(rhsVal)

	minLambda := math.Max(10*cfg.Feastol, cfg.Feastol*math.Abs(rhsVal))

	for _, c := range rest {
		cov.idx = append(cov.idx, c.i)
		cov.coverweight = cov.coverweight.Add(r.Vals[c.i] * r.Upper[c.i])
		cov.lambda = cov.coverweight.Sub(rhsVal)

		if cov.lambda.Value() > minLambda {
			return true, nil
		}
	}

	// With no remainder left to add, a prefix that already clears
	// minLambda on its own is the cover.
	if len(cov.idx) > 0 && cov.lambda.Value() > minLambda {
		return true, nil
	}
	return false, ErrNoCover
}
