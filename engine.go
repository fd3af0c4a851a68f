package cutgen

import (
	"context"
	"math"
)

// CutEngine is the stateful separator attached to one LP relaxation and
// one cut pool, per the lifecycle described in the data model: created
// once per MIP solve, reused call after call, with only per-call working
// state (never persisted between GenerateCut/GenerateConflict calls).
type CutEngine struct {
	lp    LPRelaxation
	pool  CutPool
	cfg   Config
	mid   EngineMiddleware
	stats Stats

	row scratchRow
	cov coverState
}

// scratchRow is the engine-owned growable Row reused across calls, per the
// scratch-buffer design note.
type scratchRow = Row

// NewCutEngine builds an engine bound to one LP relaxation and cut pool for
// the lifetime of a MIP solve. middleware may be nil, in which case a
// NoopMiddleware is used.
func NewCutEngine(lp LPRelaxation, pool CutPool, cfg Config, middleware EngineMiddleware) *CutEngine {
	if middleware == nil {
		middleware = NoopMiddleware{}
	}
	return &CutEngine{lp: lp, pool: pool, cfg: cfg, mid: middleware, stats: newStats()}
}

// Stats returns a snapshot of per-route attempt/acceptance counters.
func (e *CutEngine) Stats() Stats { return e.stats }

func (e *CutEngine) stage(name string, fn func() (bool, error)) (bool, error) {
	e.mid.BeforeStage(name)
	ok, err := fn()
	e.mid.AfterStage(name, ok)
	if !ok {
		e.stats.recordRejection(name)
	}
	return ok, err
}

// GenerateCut separates the LP-violated row (inds, vals, <= rhs) against
// the current LP relaxation point, returning the strengthened cut and
// whether it entered the pool. ctx is honored only between calls (see the
// concurrency section); the pipeline itself runs to completion once started.
func (e *CutEngine) GenerateCut(ctx context.Context, transform TransformedLP, inds []int, vals []float64, rhs float64) (outInds []int, outVals []float64, outRhs float64, accepted bool) {
	if err := ctx.Err(); err != nil {
		return nil, nil, 0, false
	}

	integer := make([]bool, len(inds))
	for i, col := range inds {
		integer[i] = e.lp.IsColIntegral(col)
	}
	upper := make([]float64, len(inds))
	solval := make([]float64, len(inds))
	e.row.load(inds, vals, upper, solval, integer, rhs)

	var intsPositive bool
	if ok, _ := e.stage("transform", func() (bool, error) {
		var tok bool
		intsPositive, tok = transform.Transform(&e.row)
		if !tok {
			return false, ErrTransformFailed
		}
		return true, nil
	}); !ok {
		return nil, nil, 0, false
	}

	var flags rowFlags
	if ok, _ := e.stage("preprocess", func() (bool, error) {
		f, fok, err := preprocessBaseInequality(&e.row, e.cfg, e.lp.NumCols())
		flags = f
		return fok, err
	}); !ok {
		return nil, nil, 0, false
	}

	if !flags.hasUnboundedInts && !intsPositive {
		for i := 0; i < e.row.Len(); i++ {
			if e.row.Integer[i] && e.row.Vals[i] < 0 {
				e.row.complementAt(i)
			}
		}
	}

	integralSupport, route, ok := e.routeAndLift(flags)
	if !ok {
		return nil, nil, 0, false
	}

	var integralCoefficients bool
	if ok, _ := e.stage("postprocess", func() (bool, error) {
		pok, ic, err := postprocessCut(&e.row, e.cfg, integralSupport)
		integralCoefficients = ic
		return pok, err
	}); !ok {
		return nil, nil, 0, false
	}

	for i := 0; i < e.row.Len(); i++ {
		if e.row.Complement[i] {
			e.row.complementAt(i)
		}
	}

	if ok, _ := e.stage("untransform", func() (bool, error) {
		if !transform.Untransform(&e.row, integralCoefficients) {
			return false, ErrUntransformFailed
		}
		return true, nil
	}); !ok {
		return nil, nil, 0, false
	}

	violated := false
	if ok, _ := e.stage("violation-check", func() (bool, error) {
		violation := -e.row.Rhs.Value()
		for i := 0; i < e.row.Len(); i++ {
			violation += e.row.Vals[i] * e.lp.ColValue(e.row.Inds[i])
		}
		violated = violation > 10*e.cfg.Feastol
		if !violated {
			return false, ErrNotViolated
		}
		return true, nil
	}); !ok {
		return nil, nil, 0, false
	}

	finalInds := append([]int(nil), e.row.Inds...)
	finalVals := append([]float64(nil), e.row.Vals...)
	finalRhs := e.row.Rhs.Value()

	mip := e.lp.MIPSolver()
	if mip != nil && mip.Domain != nil {
		if tv, tr, tok := mip.Domain.TightenCoefficients(finalInds, finalVals, finalRhs); tok {
			finalVals, finalRhs = tv, tr
		}
	}

	idx := -1
	if ok, _ := e.stage("pool-submit", func() (bool, error) {
		idx = e.pool.AddCut(mip, finalInds, finalVals, finalRhs, integralCoefficients)
		if idx < 0 {
			return false, ErrDuplicateCut
		}
		return true, nil
	}); !ok {
		return nil, nil, 0, false
	}

	if mip != nil && mip.DebugSolution != nil {
		mip.DebugSolution.CheckCut(finalInds, finalVals, finalRhs)
	}

	e.stats.recordAccepted(route)
	return finalInds, finalVals, finalRhs, true
}

// routeAndLift implements step 3 of the pipeline glue: branching to c-MIR
// when any integer is unbounded, otherwise determining a cover and
// dispatching to the lifting routine matching the row's structure.
func (e *CutEngine) routeAndLift(flags rowFlags) (integralSupport bool, route string, ok bool) {
	if flags.hasUnboundedInts {
		var is bool
		accepted, _ := e.stage("cmir", func() (bool, error) {
			a, i, err := cMIRHeuristic(&e.row, e.cfg)
			is = i
			return a, err
		})
		return is, routeCMIR, accepted
	}

	coverOK, _ := e.stage("determine-cover", func() (bool, error) {
		return determineCover(&e.row, &e.cov, e.cfg, true, e.pool.NumCuts())
	})
	if !coverOK {
		return false, "", false
	}

	switch {
	case flags.hasGeneralInts:
		var is bool
		accepted, _ := e.stage("lift-mixed-integer", func() (bool, error) {
			a, i, err := liftedCoverMixedInteger(&e.row, &e.cov, e.cfg)
			is = i
			return a, err
		})
		return is, routeMixedInteger, accepted
	case flags.hasContinuous:
		var is bool
		accepted, _ := e.stage("lift-mixed-binary", func() (bool, error) {
			a, i, err := liftedCoverMixedBinary(&e.row, &e.cov, e.cfg)
			is = i
			return a, err
		})
		return is, routeMixedBinary, accepted
	default:
		accepted, _ := e.stage("lift-pure-integer", func() (bool, error) {
			return liftedCoverPureInteger(&e.row, &e.cov, e.cfg)
		})
		return true, routePureInteger, accepted
	}
}

// GenerateConflict strengthens a domain-propagation proof. Unlike
// GenerateCut, the transform is inlined here using the global bounds
// rather than delegated to a TransformedLP collaborator, and the
// reference point is the local (tightened) domain rather than the LP
// solution.
func (e *CutEngine) GenerateConflict(ctx context.Context, global Domain, local LocalDomain, proofInds []int, proofVals []float64, proofRhs float64) (outInds []int, outVals []float64, outRhs float64, accepted bool) {
	if err := ctx.Err(); err != nil {
		return nil, nil, 0, false
	}

	n := len(proofInds)
	integer := make([]bool, n)
	upper := make([]float64, n)
	solval := make([]float64, n)
	vals := append([]float64(nil), proofVals...)

	rhs := proofRhs
	complemented := make(map[int]bool, n)
	for i, col := range proofInds {
		integer[i] = e.lp.IsColIntegral(col)
		lo := global.ColLower(col)
		hi := global.ColUpper(col)

		if vals[i] < 0 && !math.IsInf(hi, 1) {
			// Complement against the global upper bound: x = hi - x'.
			rhs -= vals[i] * hi
			vals[i] = -vals[i]
			upper[i] = hi - lo
			solval[i] = hi - local.ColLower(col)
			complemented[col] = true
		} else {
			// Shift to make the lower bound the new origin.
			rhs -= proofVals[i] * lo
			upper[i] = hi - lo
			if math.IsInf(hi, 1) {
				upper[i] = math.Inf(1)
			}
			solval[i] = local.ColUpper(col) - lo
		}
	}
	e.row.load(proofInds, vals, upper, solval, integer, rhs)

	var flags rowFlags
	if ok, _ := e.stage("preprocess", func() (bool, error) {
		f, fok, err := preprocessBaseInequality(&e.row, e.cfg, e.lp.NumCols())
		flags = f
		return fok, err
	}); !ok {
		return nil, nil, 0, false
	}

	if !flags.hasUnboundedInts {
		for i := 0; i < e.row.Len(); i++ {
			if e.row.Integer[i] && e.row.Vals[i] < 0 {
				e.row.complementAt(i)
			}
		}
	}

	integralSupport, route, ok := e.routeAndLiftConflict(flags)
	if !ok {
		return nil, nil, 0, false
	}

	var integralCoefficients bool
	if ok, _ := e.stage("postprocess", func() (bool, error) {
		pok, ic, err := postprocessCut(&e.row, e.cfg, integralSupport)
		integralCoefficients = ic
		return pok, err
	}); !ok {
		return nil, nil, 0, false
	}

	for i := 0; i < e.row.Len(); i++ {
		if e.row.Complement[i] {
			e.row.complementAt(i)
		}
	}

	// Undo the inline bound substitution so the cut is stated over the
	// original columns.
	for i, col := range e.row.Inds {
		if complemented[col] {
			e.row.Rhs = e.row.Rhs.Sub(e.row.Vals[i] * global.ColUpper(col))
			e.row.Vals[i] = -e.row.Vals[i]
		} else {
			e.row.Rhs = e.row.Rhs.Add(e.row.Vals[i] * global.ColLower(col))
		}
	}

	finalInds := append([]int(nil), e.row.Inds...)
	finalVals := append([]float64(nil), e.row.Vals...)
	finalRhs := e.row.Rhs.Value()

	mip := e.lp.MIPSolver()
	if tv, tr, tok := global.TightenCoefficients(finalInds, finalVals, finalRhs); tok {
		finalVals, finalRhs = tv, tr
	}

	idx := -1
	if ok, _ := e.stage("pool-submit", func() (bool, error) {
		idx = e.pool.AddCut(mip, finalInds, finalVals, finalRhs, integralCoefficients)
		if idx < 0 {
			return false, ErrDuplicateCut
		}
		return true, nil
	}); !ok {
		return nil, nil, 0, false
	}

	if mip != nil && mip.DebugSolution != nil {
		mip.DebugSolution.CheckCut(finalInds, finalVals, finalRhs)
	}

	e.stats.recordAccepted(route)
	return finalInds, finalVals, finalRhs, true
}

func (e *CutEngine) routeAndLiftConflict(flags rowFlags) (integralSupport bool, route string, ok bool) {
	if flags.hasUnboundedInts {
		var is bool
		accepted, _ := e.stage("cmir", func() (bool, error) {
			a, i, err := cMIRHeuristic(&e.row, e.cfg)
			is = i
			return a, err
		})
		return is, routeCMIR, accepted
	}

	coverOK, _ := e.stage("determine-cover", func() (bool, error) {
		return determineCover(&e.row, &e.cov, e.cfg, false, e.pool.NumCuts())
	})
	if !coverOK {
		return false, "", false
	}

	switch {
	case flags.hasGeneralInts:
		var is bool
		accepted, _ := e.stage("lift-mixed-integer", func() (bool, error) {
			a, i, err := liftedCoverMixedInteger(&e.row, &e.cov, e.cfg)
			is = i
			return a, err
		})
		return is, routeMixedInteger, accepted
	case flags.hasContinuous:
		var is bool
		accepted, _ := e.stage("lift-mixed-binary", func() (bool, error) {
			a, i, err := liftedCoverMixedBinary(&e.row, &e.cov, e.cfg)
			is = i
			return a, err
		})
		return is, routeMixedBinary, accepted
	default:
		accepted, _ := e.stage("lift-pure-integer", func() (bool, error) {
			return liftedCoverPureInteger(&e.row, &e.cov, e.cfg)
		})
		return true, routePureInteger, accepted
	}
}
