package cutgen

import "math"

// postprocessCut implements section 4.7: it tries to rescale a cut with
// integral support to genuinely integral coefficients, falling back to a
// binary-exponent normalization when no small integral scale exists.
// integralCoefficients is only ever true for the integral-support path.
func postprocessCut(r *Row, cfg Config, integralSupport bool) (ok bool, integralCoefficients bool, err error) {
	n := r.Len()
	if n == 0 {
		return true, integralSupport, nil
	}

	maxAbs := 0.0
	for i := 0; i < n; i++ {
		if a := math.Abs(r.Vals[i]); a > maxAbs {
			maxAbs = a
		}
	}

	dropThreshold := math.Max(maxAbs*100*cfg.Feastol, cfg.Epsilon)
	if integralSupport {
		drop := make([]bool, n)
		for i := 0; i < n; i++ {
			if math.Abs(r.Vals[i]) < dropThreshold {
				if r.Vals[i] < 0 {
					if math.IsInf(r.Upper[i], 1) {
						return false, false, ErrPostprocessUnbounded
					}
					r.Rhs = r.Rhs.Sub(r.Vals[i] * r.Upper[i])
				}
				drop[i] = true
			}
		}
		r.compact(drop)
		n = r.Len()
		if n == 0 {
			return true, true, nil
		}

		maxAbs = 0.0
		for i := 0; i < n; i++ {
			if a := math.Abs(r.Vals[i]); a > maxAbs {
				maxAbs = a
			}
		}

		if scale, okScale := findIntegralScale(r.Vals, cfg, maxAbs); okScale {
			for i := 0; i < n; i++ {
				rounded := math.Round(scale * r.Vals[i])
				delta := rounded - scale*r.Vals[i]
				if delta < 0 {
					if math.IsInf(r.Upper[i], 1) {
						return false, false, ErrPostprocessUnbounded
					}
					r.Rhs = r.Rhs.Sub(delta * r.Upper[i] / scale)
				}
				r.Vals[i] = rounded
			}
			r.Rhs = r.Rhs.Scale(scale)
			r.Rhs = NewAccum(math.Floor(r.Rhs.Value() + cfg.Epsilon))
			integralCoefficients = scale*maxAbs*cfg.Feastol <= 1
			return true, integralCoefficients, nil
		}

		scale, _ := frexpScale(maxAbsMinNonzero(r.Vals))
		for i := 0; i < n; i++ {
			r.Vals[i] *= scale
		}
		r.Rhs = r.Rhs.Scale(scale)
		return true, false, nil
	}

	// Non-integral support: just normalize and drop tiny coefficients.
	scale, _ := frexpScale(maxAbs)
	r.Rhs = r.Rhs.Scale(scale)
	drop := make([]bool, n)
	for i := 0; i < n; i++ {
		r.Vals[i] *= scale
		if math.Abs(r.Vals[i]) < dropThreshold*scale {
			if r.Vals[i] < 0 {
				if math.IsInf(r.Upper[i], 1) {
					return false, false, ErrPostprocessUnbounded
				}
				r.Rhs = r.Rhs.Sub(r.Vals[i] * r.Upper[i])
			}
			drop[i] = true
		}
	}
	r.compact(drop)

	return true, false, nil
}

// findIntegralScale searches for a scale s such that s*vals[i] are all
// within feastol of an integer and s*max(1,maxAbs) stays exactly
// representable in a float64 mantissa (<= 2^53).
func findIntegralScale(vals []float64, cfg Config, maxAbs float64) (float64, bool) {
	const maxScale = 1 << 20 // practical cap; 2^53 bound is checked explicitly below

	for s := 1; s <= maxScale; s <<= 1 {
		scale := float64(s)
		if scale*math.Max(1, maxAbs) > (1 << 53) {
			break
		}
		allIntegral := true
		for _, v := range vals {
			scaled := scale * v
			if math.Abs(scaled-math.Round(scaled)) > cfg.Feastol {
				allIntegral = false
				break
			}
		}
		if allIntegral {
			return scale, true
		}
	}
	return 0, false
}

func maxAbsMinNonzero(vals []float64) float64 {
	min := math.Inf(1)
	for _, v := range vals {
		if v == 0 {
			continue
		}
		if a := math.Abs(v); a < min {
			min = a
		}
	}
	if math.IsInf(min, 1) {
		return 1
	}
	return min
}
