package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxRowLen_MatchesTheNamedFormula(t *testing.T) {
	assert.Equal(t, 100, maxRowLen(0))
	assert.Equal(t, 115, maxRowLen(100))
}

func TestPreprocessBaseInequality_RejectsEmptyRow(t *testing.T) {
	r := NewRow(5)
	cfg := NewConfig(1e-6, 1e-9)
	_, ok, err := preprocessBaseInequality(r, cfg, 10)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestPreprocessBaseInequality_DropsTinyCoefficients(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(1)
	r.AddTerm(0, 1e-10, 5, 1, true)
	r.AddTerm(1, 2, 5, 1, true)

	_, ok, err := preprocessBaseInequality(r, cfg, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []int{1}, r.Inds)
}

func TestPreprocessBaseInequality_ClassifiesStructure(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)

	r := NewRow(1)
	r.AddTerm(0, 1, 1, 0.5, true)  // binary
	r.AddTerm(1, 1, 4, 0.5, true)  // general integer
	r.AddTerm(2, 1, 3, 0.5, false) // continuous

	flags, ok, err := preprocessBaseInequality(r, cfg, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, flags.hasGeneralInts)
	assert.True(t, flags.hasContinuous)
	assert.False(t, flags.hasUnboundedInts)
}

func TestPreprocessBaseInequality_FlagsUnboundedIntegers(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(10)
	r.AddTerm(0, 1, math.Inf(1), 0.5, true)

	flags, ok, err := preprocessBaseInequality(r, cfg, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, flags.hasUnboundedInts)
	assert.True(t, flags.hasGeneralInts)
}

func TestPreprocessBaseInequality_RejectsRowAlreadyRedundant(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(100)
	r.AddTerm(0, 1, 1, 0.5, true)

	_, ok, err := preprocessBaseInequality(r, cfg, 10)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPreprocessBaseInequality_RescalesToUnitRange(t *testing.T) {
	cfg := NewConfig(1e-6, 1e-9)
	r := NewRow(1000)
	r.AddTerm(0, 800, 2, 1, true)
	r.AddTerm(1, 400, 3, 1, true)

	_, ok, err := preprocessBaseInequality(r, cfg, 10)
	require.NoError(t, err)
	require.True(t, ok)

	maxAbs := 0.0
	for _, v := range r.Vals {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	assert.True(t, maxAbs >= 0.5 && maxAbs < 1)
}
