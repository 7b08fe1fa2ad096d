package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProcess_StartsNewWithFullBurst(t *testing.T) {
	p := NewProcess(4, "editor", 2, 7, 1, 1024)

	assert.Equal(t, StateNew, p.State)
	assert.Equal(t, int64(7), p.RemainingTime)
	assert.False(t, p.IsCompleted())
}

func TestProcess_ExecuteOneUnit_TerminatesAtZero(t *testing.T) {
	p := NewProcess(1, "a", 0, 2, 0, 0)

	p.ExecuteOneUnit()
	assert.Equal(t, StateNew, p.State)
	p.ExecuteOneUnit()
	p.ExecuteOneUnit() // no-op once complete

	assert.True(t, p.IsCompleted())
	assert.Equal(t, StateTerminated, p.State)
	assert.Zero(t, p.RemainingTime)
}

func TestProcess_Finish_DerivesMetrics(t *testing.T) {
	p := NewProcess(1, "a", 3, 4, 0, 0)

	p.finish(12)

	assert.Equal(t, int64(9), p.TurnaroundTime)
	assert.Equal(t, int64(5), p.WaitingTime)
	assert.True(t, p.Completed)
}

func TestProcess_Snapshot_DropsRuntimeState(t *testing.T) {
	p := NewProcess(1, "a", 3, 4, 2, 64)
	p.finish(12)

	s := p.Snapshot()

	assert.NotSame(t, p, s)
	assert.Equal(t, *NewProcess(1, "a", 3, 4, 2, 64), *s)
}

func TestProcess_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    *Process
		ok   bool
	}{
		{"valid", NewProcess(0, "a", 0, 1, 0, 0), true},
		{"negative pid", NewProcess(-1, "a", 0, 1, 0, 0), false},
		{"negative arrival", NewProcess(1, "a", -1, 1, 0, 0), false},
		{"zero burst", NewProcess(1, "a", 0, 0, 0, 0), false},
		{"negative memory", NewProcess(1, "a", 0, 1, 0, -5), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidProcess)
			}
		})
	}
}

func TestProcess_String(t *testing.T) {
	assert.Equal(t, "Process: (PID: 2, Name: db, State: NEW, Remaining: 5, Wait: 0)",
		NewProcess(2, "db", 0, 5, 0, 0).String())
}
