package cutgen

import "math"

// Row is the mutable working inequality described by the data model: a
// sparse sum a_i x_i <= rhs over indices Inds, carried through
// transform/preprocess/lift/postprocess/untransform without being
// reallocated between pipeline stages. CutEngine owns one scratch Row per
// call and resets it at call entry rather than allocating fresh slices
// (see the scratch-buffer design note).
type Row struct {
	Inds   []int
	Vals   []float64
	Upper  []float64 // may be +Inf
	Solval []float64
	Integer []bool
	Complement []bool

	Rhs Accum
}

// NewRow starts an empty working row with the given initial right-hand
// side. This is the low-level builder mentioned in the supplemented
// features: a convenience wrapper for assembling a Row term by term when a
// caller does not already have parallel slices in hand. It carries no
// algorithmic weight of its own.
func NewRow(rhs float64) *Row {
	return &Row{Rhs: NewAccum(rhs)}
}

// AddTerm appends one column to the row being built.
func (r *Row) AddTerm(col int, coef, upper, solval float64, integer bool) *Row {
	r.Inds = append(r.Inds, col)
	r.Vals = append(r.Vals, coef)
	r.Upper = append(r.Upper, upper)
	r.Solval = append(r.Solval, solval)
	r.Integer = append(r.Integer, integer)
	r.Complement = append(r.Complement, false)
	return r
}

// Len reports the current (post-compaction) length of the row.
func (r *Row) Len() int { return len(r.Inds) }

// reset truncates all scratch slices to zero length while keeping their
// backing arrays, so a CutEngine can reuse the same Row across calls
// without reallocating.
func (r *Row) reset(rhs float64) {
	r.Inds = r.Inds[:0]
	r.Vals = r.Vals[:0]
	r.Upper = r.Upper[:0]
	r.Solval = r.Solval[:0]
	r.Integer = r.Integer[:0]
	r.Complement = r.Complement[:0]
	r.Rhs = NewAccum(rhs)
}

// load repopulates the row from caller-supplied parallel slices, growing
// the backing arrays only if necessary.
func (r *Row) load(inds []int, vals, upper, solval []float64, integer []bool, rhs float64) {
	r.reset(rhs)
	r.Inds = append(r.Inds, inds...)
	r.Vals = append(r.Vals, vals...)
	r.Upper = append(r.Upper, upper...)
	r.Solval = append(r.Solval, solval...)
	r.Integer = append(r.Integer, integer...)
	for range inds {
		r.Complement = append(r.Complement, false)
	}
}

// complementAt replaces x_j by upper_j - x_j in place: negates the
// coefficient, flips the solution value, and folds vals[j]*upper[j] into
// rhs. Requires a finite upper bound. Running this twice on the same
// index is an exact involution (modulo Accum renormalization), which is
// the property tests in property 3 check.
func (r *Row) complementAt(i int) bool {
	if math.IsInf(r.Upper[i], 1) {
		return false
	}
	u := r.Upper[i]
	r.Rhs = r.Rhs.Sub(r.Vals[i] * u)
	r.Vals[i] = -r.Vals[i]
	r.Solval[i] = u - r.Solval[i]
	r.Complement[i] = !r.Complement[i]
	return true
}

// compact removes the positions flagged in drop (by index into the
// current slices) while preserving the relative order of survivors, and
// without disturbing r.Rhs (callers must have already folded any dropped
// term's contribution into Rhs before calling compact).
func (r *Row) compact(drop []bool) {
	n := r.Len()
	w := 0
	for i := 0; i < n; i++ {
		if drop[i] {
			continue
		}
		if w != i {
			r.Inds[w] = r.Inds[i]
			r.Vals[w] = r.Vals[i]
			r.Upper[w] = r.Upper[i]
			r.Solval[w] = r.Solval[i]
			r.Integer[w] = r.Integer[i]
			r.Complement[w] = r.Complement[i]
		}
		w++
	}
	r.Inds = r.Inds[:w]
	r.Vals = r.Vals[:w]
	r.Upper = r.Upper[:w]
	r.Solval = r.Solval[:w]
	r.Integer = r.Integer[:w]
	r.Complement = r.Complement[:w]
}

// clone makes an independent deep copy, used by tests that want to compare
// a row before and after an in-place mutating stage (e.g. the
// complementation involution test).
func (r *Row) clone() *Row {
	c := &Row{
		Inds:    append([]int(nil), r.Inds...),
		Vals:    append([]float64(nil), r.Vals...),
		Upper:   append([]float64(nil), r.Upper...),
		Solval:  append([]float64(nil), r.Solval...),
		Integer: append([]bool(nil), r.Integer...),
		Complement: append([]bool(nil), r.Complement...),
		Rhs:     r.Rhs,
	}
	return c
}

// rowFlags are the structural classification booleans preprocessBaseInequality
// advertises to the router.
type rowFlags struct {
	hasUnboundedInts bool
	hasGeneralInts   bool
	hasContinuous    bool
}

// coverState is the auxiliary cover bookkeeping from the data model:
// positions (into the Row slices) forming the chosen cover, their total
// upper-bound-weighted contribution, and the resulting excess lambda.
type coverState struct {
	idx        []int
	coverweight Accum
	lambda      Accum
}

func (c *coverState) reset() {
	c.idx = c.idx[:0]
	c.coverweight = NewAccum(0)
	c.lambda = NewAccum(0)
}
