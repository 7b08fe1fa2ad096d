// Package concurrency holds the simulator's only genuinely concurrent code:
// a counting semaphore and the synchronization demos built on it
// (bounded-buffer producer/consumer, dining philosophers, resource pool).
// Ordering between workers is non-deterministic; the reports expose the
// invariants the semaphores enforce.
package concurrency

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// CountingSemaphore blocks Wait while the count is not positive.
// Signal increments the count and wakes exactly one waiter.
type CountingSemaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	value int

	log logrus.FieldLogger
}

// NewCountingSemaphore creates a semaphore with the given initial count.
// A count of 1 makes it a mutex.
func NewCountingSemaphore(initial int, logger logrus.FieldLogger) *CountingSemaphore {
	if initial < 0 {
		panic(fmt.Sprintf("NewCountingSemaphore: initial value must be >= 0, got %d", initial))
	}
	s := &CountingSemaphore{value: initial, log: logging.Component(logger, "semaphore")}
	s.cond = sync.NewCond(&s.mu)
	s.log.Debugf("Counting semaphore initialized with value %d", initial)
	return s
}

// Wait is the P operation.
func (s *CountingSemaphore) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.value <= 0 {
		s.cond.Wait()
	}
	s.value--
}

// TryWait decrements the count if it is positive and reports whether it did.
func (s *CountingSemaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value <= 0 {
		return false
	}
	s.value--
	return true
}

// Signal is the V operation.
func (s *CountingSemaphore) Signal() {
	s.mu.Lock()
	s.value++
	s.mu.Unlock()
	s.cond.Signal()
}

// Value returns the current count.
func (s *CountingSemaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// WithPermit runs fn between Wait and Signal. The permit is returned even if fn panics.
func (s *CountingSemaphore) WithPermit(fn func()) {
	s.Wait()
	defer s.Signal()
	fn()
}
