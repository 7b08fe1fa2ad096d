package sim

import "errors"

var (
	// ErrNoScheduler is returned by Kernel.Dispatch when no scheduler has been set.
	ErrNoScheduler = errors.New("no scheduler set")

	// ErrInvalidProcess marks a process that cannot be admitted or scheduled.
	ErrInvalidProcess = errors.New("invalid process")

	// ErrInvalidQuantum is returned by RoundRobinScheduler for a non-positive quantum.
	ErrInvalidQuantum = errors.New("round robin quantum must be positive")
)
