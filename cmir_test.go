package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateDeltas_AlwaysIncludesOne(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5)
	r.AddTerm(0, 2.5, math.Inf(1), 1, true)

	deltas := candidateDeltas(r, cfg)
	found := false
	for _, d := range deltas {
		if d == 1.0 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCandidateDeltas_IsSortedAndDeduplicated(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5)
	r.AddTerm(0, 3, math.Inf(1), 1, true)
	r.AddTerm(1, 3, math.Inf(1), 1, true)

	deltas := candidateDeltas(r, cfg)
	for i := 1; i < len(deltas); i++ {
		assert.Greater(t, deltas[i], deltas[i-1])
	}
}

func TestBuildMIR_RejectsF0OutOfRange(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(10) // 10/1 has f0 == 0, outside (0.01, 0.99)
	r.AddTerm(0, 1, math.Inf(1), 1, true)

	_, ok := buildMIR(r, 1, cfg)
	assert.False(t, ok)
}

func TestBuildMIR_IntegerCoefficientsAreNonNegative(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5.5)
	r.AddTerm(0, 2, math.Inf(1), 1, true)
	r.AddTerm(1, 0.5, math.Inf(1), 1, true)

	cand, ok := buildMIR(r, 1, cfg)
	require.True(t, ok)
	for _, v := range cand.vals {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestCMIRHeuristic_ReportsAnErrorWhenItDeclines(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5.5)
	r.AddTerm(0, 2, 3, 1, true)

	// cMIRHeuristic does not itself check for unbounded integers (routing
	// does that); on a bounded row it may still find a divisor. Whenever it
	// declines, it must say why.
	ok, _, err := cMIRHeuristic(r, cfg)
	if !ok {
		assert.Error(t, err)
	}
}

func TestCMIRHeuristic_ProducesAViolatedInequalityWhenItSucceeds(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(5.5)
	r.AddTerm(0, 2, math.Inf(1), 3, true)
	r.AddTerm(1, 0.7, math.Inf(1), 1, true)

	ok, _, err := cMIRHeuristic(r, cfg)
	require.NoError(t, err)
	require.True(t, ok)

	activity := 0.0
	for i := 0; i < r.Len(); i++ {
		activity += r.Vals[i] * r.Solval[i]
	}
	assert.Greater(t, activity, r.Rhs.Value())
}
