package cutgen

import (
	"math"
	"sort"
)

// liftedCoverPureInteger implements the pure 0/1-knapsack lifted cover
// inequality (section 4.3): applicable when the row has no continuous
// variables and no general integers, i.e. every non-cover variable is
// binary. The row is rewritten in place; IntegralSupport and
// IntegralCoefficients both hold unconditionally for this route.
func liftedCoverPureInteger(r *Row, cov *coverState, cfg Config) (ok bool, err error) {
	m := len(cov.idx)
	if m == 0 {
		return false, ErrNoCover
	}

	// Sort the cover by descending coefficient.
	sorted := append([]int(nil), cov.idx...)
	sort.Slice(sorted, func(a, b int) bool { return r.Vals[sorted[a]] > r.Vals[sorted[b]] })

	v0 := r.Vals[sorted[0]]
	sigma := cov.lambda.Value()

	abar := r.Rhs.Value() / float64(m)
	found := false
	for i := 1; i < m; i++ {
		if float64(i)*(v0-r.Vals[sorted[i]]) < sigma {
			continue
		}
		abar = r.Vals[sorted[i-1]] - sigma/float64(i)
		found = true
		break
	}
	_ = found // fallback value already set above when the loop is exhausted

	// Partial sums S[i] = sum_{k<=i} min(abar, vals[cover[k]]).
	s := make([]float64, m)
	running := 0.0
	cplus := 0
	for i, idx := range sorted {
		running += math.Min(abar, r.Vals[idx])
		s[i] = running
		if r.Vals[idx] > abar+cfg.Feastol {
			cplus++
		}
	}

	g := func(z float64) (coef float64, half bool) {
		h := int(math.Floor(z/abar + 0.5))
		if h >= 1 && h <= cplus-1 {
			// boundary straddling a half-multiple of abar: the step
			// function would otherwise be ambiguous between h-1 and h,
			// so this cover needs a genuine half-integral coefficient.
			mid := (float64(h) - 0.5) * abar
			if math.Abs(z-mid) <= cfg.Epsilon*math.Max(1, abar) {
				coef = 0.5
				half = true
			}
		}
		h = h - 1
		if h < 0 {
			h = 0
		}
		for h < m-1 && z > s[h]+cfg.Feastol {
			h++
		}
		return coef + float64(h), half
	}

	inCover := make(map[int]bool, m)
	for _, idx := range sorted {
		inCover[idx] = true
	}

	newVals := make([]float64, r.Len())
	anyHalf := false
	for i := 0; i < r.Len(); i++ {
		if inCover[i] {
			newVals[i] = 1
			continue
		}
		coef, half := g(r.Vals[i])
		newVals[i] = coef
		if half {
			anyHalf = true
		}
	}

	newRhs := float64(m - 1)
	if anyHalf {
		newRhs *= 2
		for i := range newVals {
			newVals[i] *= 2
		}
	}
	copy(r.Vals, newVals)
	r.Rhs = NewAccum(newRhs)

	return true, nil
}
