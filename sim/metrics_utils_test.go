package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMean(t *testing.T) {
	assert.Zero(t, CalculateMean([]int64{}))
	assert.InDelta(t, 2.5, CalculateMean([]int{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 0.5, CalculateMean([]float64{0.25, 0.75}), 1e-12)
}

func TestJainFairnessIndex_AllZero_IsOne(t *testing.T) {
	for n := 1; n <= 5; n++ {
		assert.Equal(t, 1.0, JainFairnessIndex(make([]int64, n)), "n=%d", n)
	}
}

func TestJainFairnessIndex(t *testing.T) {
	// Equal shares are perfectly fair; one value hogging everything gives 1/n.
	assert.InDelta(t, 1.0, JainFairnessIndex([]int64{4, 4, 4}), 1e-12)
	assert.InDelta(t, 0.25, JainFairnessIndex([]int64{0, 0, 0, 9}), 1e-12)
	// (0+4+6)^2 / (3*(0+16+36)) = 100/156
	assert.InDelta(t, 100.0/156.0, JainFairnessIndex([]int64{0, 4, 6}), 1e-12)
	assert.Zero(t, JainFairnessIndex([]int64{}))
}
