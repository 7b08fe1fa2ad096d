package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyQueue_FIFO(t *testing.T) {
	// GIVEN three queued processes
	q := &ReadyQueue{}
	for pid := 1; pid <= 3; pid++ {
		q.Enqueue(NewProcess(pid, "p", 0, 1, 0, 0))
	}

	// THEN they leave in insertion order
	assert.Equal(t, "[1 2 3]", q.String())
	assert.Equal(t, 1, q.Peek().PID)
	assert.Equal(t, 1, q.Dequeue().PID)
	assert.Equal(t, 2, q.Dequeue().PID)
	assert.Equal(t, 1, q.Len())
	assert.Len(t, q.Items(), 1)
}

func TestReadyQueue_Empty(t *testing.T) {
	q := &ReadyQueue{}

	assert.Nil(t, q.Dequeue())
	assert.Nil(t, q.Peek())
	assert.Equal(t, "[]", q.String())
}

func TestReadyQueue_Clear(t *testing.T) {
	q := &ReadyQueue{}
	q.Enqueue(NewProcess(1, "p", 0, 1, 0, 0))

	q.Clear()

	assert.Zero(t, q.Len())
}

func TestReadyQueue_EnqueueNil_Panics(t *testing.T) {
	assert.Panics(t, func() { (&ReadyQueue{}).Enqueue(nil) })
}
