package cutgen

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// The fixture builder below plays the role a Problem/Variable builder plays
// for a branch-and-bound solver: a small, fluent way to assemble a
// numerical test instance without hand-writing parallel slices at every
// call site. It is adapted here to build the collaborator fakes
// GenerateCut needs instead of a milpProblem.
type fixtureVar struct {
	lower, upper, solval float64
	integer              bool
}

type fixtureProblem struct {
	vars []fixtureVar
}

func newFixtureProblem() *fixtureProblem {
	return &fixtureProblem{}
}

// addVar appends a column and returns its index, mirroring the host's
// Problem.AddVariable/getVariableIndex pair collapsed into one call.
func (p *fixtureProblem) addVar(lower, upper, solval float64, integer bool) int {
	idx := len(p.vars)
	p.vars = append(p.vars, fixtureVar{lower: lower, upper: upper, solval: solval, integer: integer})
	return idx
}

func (p *fixtureProblem) build() (*fakeLPRelaxation, *fakeDomain, *fakeTransformedLP, *fakeCutPool) {
	n := len(p.vars)
	integral := make([]bool, n)
	solval := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i, v := range p.vars {
		integral[i] = v.integer
		solval[i] = v.solval
		lower[i] = v.lower
		upper[i] = v.upper
	}

	dom := &fakeDomain{lower: lower, upper: upper}
	mip := &MIPSolver{Feastol: 1e-6, Epsilon: 1e-9, Domain: dom}
	rows := mat.NewDense(1, n, make([]float64, n))
	lp := &fakeLPRelaxation{rows: rows, integral: integral, solval: solval, mip: mip}
	transform := &fakeTransformedLP{domain: dom, lp: lp}
	pool := &fakeCutPool{}
	return lp, dom, transform, pool
}

// fakeLPRelaxation is the out-of-scope LP collaborator stand-in: a fixed
// snapshot of column values and integrality, no actual simplex behind it.
// rows holds the constraint-row matrix the way a real LPRelaxation would
// (mirroring the host's mat.Dense-backed subproblem), though nothing here
// reads the row coefficients back out; NumCols is derived from its shape
// rather than tracked separately.
type fakeLPRelaxation struct {
	rows     *mat.Dense
	integral []bool
	solval   []float64
	mip      *MIPSolver
}

func (f *fakeLPRelaxation) IsColIntegral(col int) bool { return f.integral[col] }
func (f *fakeLPRelaxation) NumCols() int               { _, cols := f.rows.Dims(); return cols }
func (f *fakeLPRelaxation) ColValue(col int) float64   { return f.solval[col] }
func (f *fakeLPRelaxation) MIPSolver() *MIPSolver      { return f.mip }

// fakeDomain is a flat global bound store; TightenCoefficients is a no-op
// pass-through since coefficient tightening against bounds is itself an
// out-of-scope collaborator concern.
type fakeDomain struct {
	lower, upper []float64
}

func (d *fakeDomain) ColLower(col int) float64 { return d.lower[col] }
func (d *fakeDomain) ColUpper(col int) float64 { return d.upper[col] }
func (d *fakeDomain) TightenCoefficients(inds []int, vals []float64, rhs float64) ([]float64, float64, bool) {
	return vals, rhs, true
}

// fakeLocalDomain is the tightened local-bound snapshot used by the
// conflict path; distinct from fakeDomain only in that both bounds are
// free to be independently narrowed per-column without touching globals.
type fakeLocalDomain struct {
	lower, upper []float64
}

func (d *fakeLocalDomain) ColLower(col int) float64 { return d.lower[col] }
func (d *fakeLocalDomain) ColUpper(col int) float64 { return d.upper[col] }

// fakeTransformedLP implements the bound-substitution half of section 3:
// shift by the lower bound, or complement against the upper bound when a
// coefficient is negative, exactly the rule the pipeline glue otherwise
// assumes some host LP layer performs.
type fakeTransformedLP struct {
	domain *fakeDomain
	lp     *fakeLPRelaxation
}

func (t *fakeTransformedLP) Transform(r *Row) (intsPositive bool, ok bool) {
	intsPositive = true
	for i, col := range r.Inds {
		lo := t.domain.ColLower(col)
		hi := t.domain.ColUpper(col)
		if r.Vals[i] < 0 {
			if math.IsInf(hi, 1) {
				return false, false
			}
			r.Rhs = r.Rhs.Sub(r.Vals[i] * hi)
			r.Vals[i] = -r.Vals[i]
			r.Upper[i] = hi - lo
			r.Solval[i] = hi - t.lp.ColValue(col)
			r.Complement[i] = true
		} else {
			r.Rhs = r.Rhs.Sub(r.Vals[i] * lo)
			if math.IsInf(hi, 1) {
				r.Upper[i] = math.Inf(1)
			} else {
				r.Upper[i] = hi - lo
			}
			r.Solval[i] = t.lp.ColValue(col) - lo
		}
	}
	return intsPositive, true
}

func (t *fakeTransformedLP) Untransform(r *Row, integral bool) bool {
	for i, col := range r.Inds {
		lo := t.domain.ColLower(col)
		r.Rhs = r.Rhs.Add(r.Vals[i] * lo)
	}
	return true
}

// fakeCutPool records every accepted cut and rejects exact-duplicate
// (inds, rhs) resubmissions, enough to exercise AddCut/NumCuts without a
// real pool's aging policy.
type fakeCutPool struct {
	cuts []fakeCut
}

type fakeCut struct {
	inds []int
	vals []float64
	rhs  float64
}

func (p *fakeCutPool) AddCut(mip *MIPSolver, inds []int, vals []float64, rhs float64, integral bool) int {
	for _, c := range p.cuts {
		if sameInds(c.inds, inds) && math.Abs(c.rhs-rhs) < 1e-9 {
			return -1
		}
	}
	p.cuts = append(p.cuts, fakeCut{inds: inds, vals: vals, rhs: rhs})
	return len(p.cuts) - 1
}

func (p *fakeCutPool) NumCuts() int { return len(p.cuts) }

func sameInds(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
