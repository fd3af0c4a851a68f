package cutgen

import "sort"

// liftedCoverMixedBinary implements section 4.4: continuous variables are
// present but no general integers, so the cover is binary and the
// lifting function for the (necessarily binary) non-cover integers is the
// three-piece step function phi.
func liftedCoverMixedBinary(r *Row, cov *coverState, cfg Config) (ok bool, integralSupport bool, err error) {
	m := len(cov.idx)
	if m == 0 {
		return false, false, ErrNoCover
	}

	sorted := append([]int(nil), cov.idx...)
	sort.Slice(sorted, func(a, b int) bool { return r.Vals[sorted[a]] > r.Vals[sorted[b]] })

	lambda := cov.lambda.Value()

	p := -1
	for i, idx := range sorted {
		if r.Vals[idx]-lambda <= cfg.Epsilon {
			p = i
			break
		}
	}
	if p <= 0 {
		return false, false, ErrNoPivot
	}

	s := make([]float64, p)
	running := 0.0
	for i := 0; i < p; i++ {
		running += r.Vals[sorted[i]]
		s[i] = running
	}

	phi := func(a float64) float64 {
		for i := 0; i < p; i++ {
			if a <= s[i]-lambda {
				return float64(i) * lambda
			}
			if a <= s[i] {
				return float64(i+1)*lambda + (a - s[i])
			}
		}
		return float64(p)*lambda + (a - s[p-1])
	}

	inCover := make(map[int]bool, m)
	for _, idx := range sorted {
		inCover[idx] = true
	}

	rhs := NewAccum(-lambda)
	integralSupport = true

	newVals := make([]float64, r.Len())
	drop := make([]bool, r.Len())
	for i := 0; i < r.Len(); i++ {
		switch {
		case inCover[i]:
			v := r.Vals[i]
			if lambda < v {
				v = lambda
			}
			newVals[i] = v
			rhs = rhs.Add(v)
		case !r.Integer[i]:
			if r.Vals[i] < 0 {
				integralSupport = false
				newVals[i] = r.Vals[i]
			} else {
				newVals[i] = 0
				drop[i] = true
			}
		default:
			newVals[i] = phi(r.Vals[i])
		}
	}

	copy(r.Vals, newVals)
	r.Rhs = rhs
	r.compact(drop)

	return true, integralSupport, nil
}
