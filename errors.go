package cutgen

import "errors"

// Expected, data-dependent rejections. Every pipeline stage that can refuse
// to produce a cut returns one of these so callers (and tests) can tell
// apart *which* stage gave up via errors.Is, even though the public
// GenerateCut/GenerateConflict surface collapses all of them to a bool.
var (
	ErrRowTooShortRHS       = errors.New("cutgen: right-hand side below rejection threshold")
	ErrUnboundedCancel      = errors.New("cutgen: cannot cancel coefficient without a finite bound")
	ErrRowTooLong           = errors.New("cutgen: row exceeds maximum length and cannot be shortened")
	ErrRowRedundant         = errors.New("cutgen: base inequality already redundant in working space")
	ErrNoCover              = errors.New("cutgen: no valid knapsack cover")
	ErrNoPivot              = errors.New("cutgen: no admissible mixed-integer lifting pivot")
	ErrNoDelta              = errors.New("cutgen: no acceptable c-MIR divisor")
	ErrPostprocessUnbounded = errors.New("cutgen: postprocessing requires an infinite bound")
	ErrNotViolated          = errors.New("cutgen: candidate cut is not violated at the reference point")
	ErrDuplicateCut         = errors.New("cutgen: cut pool rejected duplicate")
	ErrTransformFailed      = errors.New("cutgen: transform collaborator rejected the row")
	ErrUntransformFailed    = errors.New("cutgen: untransform collaborator rejected the row")
)
