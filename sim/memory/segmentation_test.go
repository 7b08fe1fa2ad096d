package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentation_AllocateSegments_LaysOutContiguously(t *testing.T) {
	// GIVEN 64 KiB of memory
	s := NewSegmentation(65536, nil)

	// WHEN pid 1 requests code, data and stack segments
	ok := s.AllocateSegments(1, []int64{1000, 2000, 500})

	// THEN segments are packed from address 0 and the free pointer advances
	require.True(t, ok)
	assert.Equal(t, []SegmentEntry{{0, 1000}, {1000, 2000}, {3000, 500}}, s.SegmentTables[1])
	assert.Equal(t, int64(3500), s.FreePointer)
}

func TestSegmentation_Translate(t *testing.T) {
	s := NewSegmentation(65536, nil)
	require.True(t, s.AllocateSegments(1, []int64{1000, 2000, 500}))

	phys, ok := s.Translate(1, 1, 50)
	require.True(t, ok)
	assert.Equal(t, int64(1050), phys)

	tests := []struct {
		name      string
		pid, seg  int
		offset    int64
		wantFault int
	}{
		{"offset at limit", 1, 0, 1000, 1},
		{"offset beyond limit", 1, 0, 1001, 2},
		{"negative offset", 1, 2, -1, 3},
		{"segment out of range", 1, 3, 0, 4},
		{"negative segment", 1, -1, 0, 5},
		{"unknown pid", 2, 0, 0, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := s.Translate(tc.pid, tc.seg, tc.offset)
			assert.False(t, ok)
			assert.Equal(t, tc.wantFault, s.Faults)
		})
	}
}

func TestSegmentation_Allocate_ExceedsRemaining_Fails(t *testing.T) {
	s := NewSegmentation(1000, nil)
	require.True(t, s.AllocateSegments(1, []int64{600}))

	assert.False(t, s.AllocateSegments(2, []int64{300, 101}))
	assert.Equal(t, int64(600), s.FreePointer)
}

func TestSegmentation_FreedSpace_IsNotReused(t *testing.T) {
	// GIVEN memory fully consumed by pid 1
	s := NewSegmentation(1000, nil)
	require.True(t, s.Allocate(1, 1000))

	// WHEN pid 1 is deallocated
	s.Deallocate(1)

	// THEN its space is still unavailable (monotonic free pointer)
	assert.False(t, s.Allocate(2, 1))
	assert.Equal(t, int64(1000), s.Status(2).UsedMemory)
}

func TestSegmentation_NegativeSize_Refused(t *testing.T) {
	s := NewSegmentation(1000, nil)

	assert.False(t, s.AllocateSegments(1, []int64{100, -5}))
	assert.Zero(t, s.FreePointer)
}

func TestSegmentation_Status_AndReset(t *testing.T) {
	s := NewSegmentation(1000, nil)
	require.True(t, s.AllocateSegments(3, []int64{10, 20}))

	st := s.Status(3)
	assert.Equal(t, 3, st.PID)
	assert.Len(t, st.Segments, 2)
	assert.Equal(t, int64(1000), st.TotalMemory)
	assert.Equal(t, int64(30), st.UsedMemory)

	s.Reset()
	assert.Zero(t, s.FreePointer)
	assert.Empty(t, s.Status(3).Segments)
}
