package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacement_ShortReference_FIFOAndLRUAgree(t *testing.T) {
	// GIVEN the reference string 1,2,3,1,4,5 and three frames
	refs := []int{1, 2, 3, 1, 4, 5}

	// WHEN FIFO and LRU run over it
	fifo := NewReplacementPolicy("fifo").Run(refs, 3)
	lru := NewReplacementPolicy("lru").Run(refs, 3)

	// THEN both incur 5 faults and 1 hit
	assert.Equal(t, 5, fifo.PageFaults)
	assert.Equal(t, 1, fifo.PageHits)
	assert.Equal(t, 5, lru.PageFaults)
	assert.Equal(t, 1, lru.PageHits)
	assert.InDelta(t, 5.0/6.0, fifo.FaultRatio, 1e-9)
}

func TestReplacement_ClassicString(t *testing.T) {
	// Textbook reference string with 3 frames: FIFO 15, LRU 12, Optimal 9 faults.
	refs := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}

	tests := []struct {
		policy     string
		wantFaults int
	}{
		{"fifo", 15},
		{"lru", 12},
		{"optimal", 9},
	}
	for _, tc := range tests {
		t.Run(tc.policy, func(t *testing.T) {
			res := NewReplacementPolicy(tc.policy).Run(refs, 3)
			assert.Equal(t, tc.wantFaults, res.PageFaults)
			assert.Equal(t, len(refs)-tc.wantFaults, res.PageHits)
			assert.Equal(t, tc.policy, res.Policy)
		})
	}
}

func TestReplacement_LRU_DiffersFromFIFO_OnRecency(t *testing.T) {
	// GIVEN page 1 is reused before the set fills up
	refs := []int{1, 2, 1, 3, 1}

	// WHEN two frames are available
	fifo := FIFOReplacement{}.Run(refs, 2)
	lru := LRUReplacement{}.Run(refs, 2)

	// THEN LRU keeps page 1 resident while FIFO evicts it
	assert.Equal(t, 4, fifo.PageFaults)
	assert.Equal(t, 3, lru.PageFaults)
}

func TestReplacement_EdgeCases(t *testing.T) {
	for name := range ValidReplacementPolicies {
		t.Run(name, func(t *testing.T) {
			p := NewReplacementPolicy(name)

			empty := p.Run(nil, 3)
			assert.Zero(t, empty.PageFaults)
			assert.Zero(t, empty.FaultRatio)

			noFrames := p.Run([]int{1, 1, 1}, 0)
			assert.Equal(t, 3, noFrames.PageFaults)
			assert.Zero(t, noFrames.PageHits)
		})
	}
}

func TestNewReplacementPolicy_UnknownName_Panics(t *testing.T) {
	assert.False(t, IsValidReplacementPolicy("clock"))
	assert.Panics(t, func() { NewReplacementPolicy("clock") })
}
