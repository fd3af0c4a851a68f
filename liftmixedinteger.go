package cutgen

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// mirPivot bundles the per-pivot geometry the step functions in section
// 4.5 need: the chosen cover element ell, the interval width it induces,
// and the cumulative cover prefix used to walk gammaL.
type mirPivot struct {
	valL  float64
	upperL float64
	eta   float64
	r     float64
	kmin  int
	kmax  int

	// cover (minus ell), sorted descending, truncated to cplusend, with
	// cumulative upper-bound sums u and weighted sums m of length
	// len(cover)+1 (sentinel totals at the end).
	coverIdx []int
	u        []float64
	m        []float64
}

// liftedCoverMixedInteger implements section 4.5, the superadditive MIR
// lifting rooted at one designated cover element. It is the most
// structurally involved of the three lifting routes; see DESIGN.md for the
// grounding notes on the two step functions phiL/gammaL.
func liftedCoverMixedInteger(r *Row, cov *coverState, cfg Config) (ok bool, integralSupport bool, err error) {
	m := len(cov.idx)
	if m == 0 {
		return false, false, ErrNoCover
	}

	sorted := append([]int(nil), cov.idx...)
	sort.Slice(sorted, func(a, b int) bool { return r.Vals[sorted[a]] > r.Vals[sorted[b]] })

	lambda := cov.lambda.Value()

	// Cumulative upper-bound and weighted-upper-bound sums over the
	// sorted cover, u[c]/m[c] = sum over the first c cover entries.
	upperSrc := make([]float64, m)
	weightedSrc := make([]float64, m)
	for i, idx := range sorted {
		upperSrc[i] = r.Upper[idx]
		weightedSrc[i] = r.Upper[idx] * r.Vals[idx]
	}
	u := make([]float64, m+1)
	weighted := make([]float64, m+1)
	floats.CumSum(u[1:], upperSrc)
	floats.CumSum(weighted[1:], weightedSrc)

	type candidate struct {
		pos      int
		eta      float64
		tau      float64
		cplusend int
		score    float64
		atUpper  bool
	}

	var best *candidate
	for pos, idx := range sorted {
		valJ := r.Vals[idx]
		upperJ := r.Upper[idx]
		muJ := upperJ*valJ - lambda
		if muJ <= 10*cfg.Feastol || math.Abs(valJ) < 1000*cfg.Feastol {
			continue
		}
		ratio := muJ / valJ
		if math.Abs(ratio-math.Round(ratio)) <= cfg.Feastol {
			continue
		}
		eta := math.Ceil(ratio)
		tau := (upperJ - eta + 1) * valJ

		cplusend := 0
		for _, idx2 := range sorted {
			if r.Vals[idx2] > tau {
				cplusend++
			}
		}

		score := weighted[cplusend]
		if pos < cplusend {
			score -= upperJ * valJ
		}
		score += eta * valJ

		atUpper := r.Solval[idx] >= upperJ-cfg.Feastol

		c := candidate{pos: pos, eta: eta, tau: tau, cplusend: cplusend, score: score, atUpper: atUpper}
		if best == nil {
			best = &c
			continue
		}
		// Prefer not-at-upper-bound candidates; among equals, largest score.
		if best.atUpper && !c.atUpper {
			best = &c
		} else if best.atUpper == c.atUpper && c.score > best.score {
			best = &c
		}
	}
	if best == nil {
		return false, false, ErrNoPivot
	}

	ellIdx := sorted[best.pos]
	valL := r.Vals[ellIdx]
	upperL := r.Upper[ellIdx]
	muL := upperL*valL - lambda
	eta := best.eta

	rParam := muL - math.Floor(muL/valL)*valL
	if rParam < 0 {
		rParam = 0
	}
	kmin := int(math.Floor(eta - upperL - 0.5))
	kmax := int(math.Floor(upperL - eta + 0.5))
	_ = kmax // kmax bounds the k range that gammaL scans below

	// Truncate to cplusend and drop ell, adjusting cumulative sums for
	// whatever followed it in sort order.
	truncated := append([]int(nil), sorted[:best.cplusend]...)
	var coverIdx []int
	uAdj := make([]float64, 0, len(truncated)+1)
	mAdj := make([]float64, 0, len(truncated)+1)
	uAdj = append(uAdj, 0)
	mAdj = append(mAdj, 0)
	runningU, runningM := 0.0, 0.0
	for _, idx := range truncated {
		if idx == ellIdx {
			continue
		}
		coverIdx = append(coverIdx, idx)
		runningU += r.Upper[idx]
		runningM += r.Upper[idx] * r.Vals[idx]
		uAdj = append(uAdj, runningU)
		mAdj = append(mAdj, runningM)
	}

	piv := mirPivot{
		valL: valL, upperL: upperL, eta: eta, r: rParam,
		kmin: kmin, kmax: kmax,
		coverIdx: coverIdx, u: uAdj, m: mAdj,
	}

	phiL := func(a float64) float64 {
		k := int(math.Ceil(a/valL)) - 1
		if k > -1 {
			k = -1
		}
		if k < piv.kmin {
			return float64(piv.kmin) * (valL - rParam)
		}
		lo := float64(k) * valL
		if a < lo+rParam {
			return float64(k) * (valL - rParam)
		}
		return a - float64(k+1)*rParam
	}

	gammaL := func(z float64) float64 {
		best := math.Inf(-1)
		n := len(piv.coverIdx)
		for i := 0; i <= n; i++ {
			var upperI float64
			if i < n {
				upperI = r.Upper[piv.coverIdx[i]]
			}
			valI := 0.0
			if i < n {
				valI = r.Vals[piv.coverIdx[i]]
			}
			maxH := 0
			if i < n {
				maxH = int(upperI)
			}
			for h := 0; h <= maxH; h++ {
				M := piv.m[i] + float64(h)*valI
				U := piv.u[i] + float64(h)
				for k := piv.kmin; k <= piv.kmax; k++ {
					flatStart := M + float64(k)*valL
					flatEnd := flatStart + rParam
					affineEnd := M + float64(k+1)*valL
					flatVal := (U*(upperL-eta+1) + float64(k)) * (valL - rParam)
					if z >= flatStart && z < flatEnd {
						if flatVal > best {
							best = flatVal
						}
					} else if z >= flatEnd && z < affineEnd {
						affineVal := flatVal + (z - flatEnd)
						if affineVal > best {
							best = affineVal
						}
					}
				}
				if i == n {
					break
				}
			}
		}
		if math.IsInf(best, -1) {
			return 0
		}
		return best
	}

	newRhs := NewAccum((upperL - eta) * rParam).Sub(lambda)
	integralSupport = true

	newVals := make([]float64, r.Len())
	drop := make([]bool, r.Len())
	coverSet := make(map[int]bool, len(piv.coverIdx)+1)
	for _, idx := range piv.coverIdx {
		coverSet[idx] = true
	}
	coverSet[ellIdx] = true

	for i := 0; i < r.Len(); i++ {
		switch {
		case coverSet[i]:
			v := -phiL(-r.Vals[i])
			newVals[i] = v
			newRhs = newRhs.Add(v * r.Upper[i])
		case !r.Integer[i]:
			if r.Vals[i] < 0 {
				integralSupport = false
				newVals[i] = r.Vals[i]
			} else {
				newVals[i] = 0
				drop[i] = true
			}
		default:
			newVals[i] = gammaL(r.Vals[i])
		}
	}

	copy(r.Vals, newVals)
	r.Rhs = newRhs
	r.compact(drop)

	return true, integralSupport, nil
}
