package cutgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiftedCoverMixedInteger_RejectsEmptyCover(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5)
	r.AddTerm(0, 3, 2, 1, true)
	cov := &coverState{}

	ok, _, err := liftedCoverMixedInteger(r, cov, cfg)
	assert.False(t, ok)
	assert.Error(t, err)
}

// When every cover element's slack mu_j sits at or below the rejection
// threshold, no pivot qualifies and the routine must fail rather than
// silently picking an inadmissible one.
func TestLiftedCoverMixedInteger_RejectsWhenNoPivotClearsTheThreshold(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5)
	r.AddTerm(0, 2, 2, 2, true)

	cov := &coverState{idx: []int{0}, coverweight: NewAccum(4), lambda: NewAccum(4)}

	// muJ = upper*val - lambda = 2*2 - 4 = 0, not above the 10*feastol
	// threshold: no candidate pivot qualifies.
	ok, _, err := liftedCoverMixedInteger(r, cov, cfg)
	assert.False(t, ok)
	assert.Error(t, err)
}
