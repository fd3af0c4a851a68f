package cutgen

// LPRelaxation is the out-of-scope LP solver collaborator: the engine only
// ever reads the current relaxation solution and column integrality from
// it.
type LPRelaxation interface {
	IsColIntegral(col int) bool
	NumCols() int
	ColValue(col int) float64
	MIPSolver() *MIPSolver
}

// Domain is the out-of-scope global/local variable bound store (bound
// propagation). GenerateCut consults the global bounds through MIPSolver's
// Domain; GenerateConflict additionally takes a LocalDomain snapshot of
// the infeasible point being strengthened.
type Domain interface {
	ColLower(col int) float64
	ColUpper(col int) float64
	TightenCoefficients(inds []int, vals []float64, rhs float64) (outVals []float64, outRhs float64, ok bool)
}

// LocalDomain supplies the local (tightened) bounds used as the reference
// point for the conflict path; see supplemented feature in SPEC_FULL.md
// section 13 distinguishing it from the global Domain.
type LocalDomain interface {
	ColLower(col int) float64
	ColUpper(col int) float64
}

// DebugSolution is the out-of-scope solution checker; CheckCut is a no-op
// when debugging is disabled, matching the "effectively disabled"
// checkNumerics design note.
type DebugSolution interface {
	CheckCut(inds []int, vals []float64, rhs float64)
}

// MIPSolver bundles the tolerances, domain, and debug-solution
// collaborators the engine needs, mirroring the host's mipdata_ struct.
type MIPSolver struct {
	Feastol       float64
	Epsilon       float64
	Domain        Domain
	DebugSolution DebugSolution
}

// TransformedLP is the out-of-scope LP-to-cut variable transform: bound
// substitution and implicit slack elimination into the complemented
// non-negative space GenerateCut's pipeline operates in.
type TransformedLP interface {
	// Transform rewrites the base inequality in place into the
	// complemented non-negative working space, filling upper and solval,
	// and reports whether every integer coefficient came out non-negative.
	Transform(r *Row) (intsPositive bool, ok bool)

	// Untransform undoes the transform, rewriting r's Inds/Vals/Rhs back
	// into the caller's original variable space.
	Untransform(r *Row, integral bool) bool
}

// CutPool is the out-of-scope cut container: deduplication and cut aging
// are entirely its responsibility.
type CutPool interface {
	AddCut(mip *MIPSolver, inds []int, vals []float64, rhs float64, integral bool) int
	NumCuts() int
}
