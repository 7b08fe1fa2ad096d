// Defines the Process struct that models a simulated task in the OS simulator.
// Tracks arrival time, CPU demand, remaining work, and the completion metrics
// written by schedulers when the process finishes.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew        ProcessState = "NEW"
	StateReady      ProcessState = "READY"
	StateRunning    ProcessState = "RUNNING"
	StateWaiting    ProcessState = "WAITING"
	StateTerminated ProcessState = "TERMINATED"
)

// Process models a single simulated task.
// Static fields are set by the caller; runtime fields are written only by
// the Kernel and by schedulers during a run.
type Process struct {
	PID            int    // Unique, caller-assigned identifier
	Name           string // Human-readable name
	ArrivalTime    int64  // Tick at which the process enters the system (>= 0)
	BurstTime      int64  // Total CPU demand in ticks (> 0)
	Priority       int    // Higher = more urgent
	MemoryRequired int64  // Bytes of memory requested at admission (>= 0)

	State          ProcessState // NEW, READY, RUNNING, WAITING, TERMINATED
	RemainingTime  int64        // Burst left to execute
	CompletionTime int64        // Tick at which the process terminated
	Completed      bool         // Tracks whether CompletionTime has been set
	WaitingTime    int64        // TurnaroundTime - BurstTime
	TurnaroundTime int64        // CompletionTime - ArrivalTime
}

// NewProcess creates a process in the NEW state with RemainingTime = burst.
func NewProcess(pid int, name string, arrival, burst int64, priority int, memory int64) *Process {
	return &Process{
		PID:            pid,
		Name:           name,
		ArrivalTime:    arrival,
		BurstTime:      burst,
		Priority:       priority,
		MemoryRequired: memory,
		State:          StateNew,
		RemainingTime:  burst,
	}
}

// Snapshot returns a fresh copy carrying only the static fields.
// Runs that must not share mutable state (see Comparator) start from snapshots.
func (p *Process) Snapshot() *Process {
	return NewProcess(p.PID, p.Name, p.ArrivalTime, p.BurstTime, p.Priority, p.MemoryRequired)
}

// Validate reports why a process cannot be admitted, or nil if it can.
func (p *Process) Validate() error {
	switch {
	case p.PID < 0:
		return fmt.Errorf("%w: pid %d is negative", ErrInvalidProcess, p.PID)
	case p.ArrivalTime < 0:
		return fmt.Errorf("%w: pid %d has negative arrival time %d", ErrInvalidProcess, p.PID, p.ArrivalTime)
	case p.BurstTime <= 0:
		return fmt.Errorf("%w: pid %d has non-positive burst time %d", ErrInvalidProcess, p.PID, p.BurstTime)
	case p.MemoryRequired < 0:
		return fmt.Errorf("%w: pid %d has negative memory requirement %d", ErrInvalidProcess, p.PID, p.MemoryRequired)
	}
	return nil
}

// ExecuteOneUnit runs the process for a single tick.
// The process transitions to TERMINATED when its remaining time reaches zero.
func (p *Process) ExecuteOneUnit() {
	if p.RemainingTime <= 0 {
		return
	}
	p.RemainingTime--
	if p.RemainingTime == 0 {
		p.State = StateTerminated
	}
}

// IsCompleted reports whether the process has no remaining work.
func (p *Process) IsCompleted() bool {
	return p.RemainingTime == 0
}

// finish records completion at tick now and derives turnaround and waiting time.
func (p *Process) finish(now int64) {
	p.RemainingTime = 0
	p.State = StateTerminated
	p.CompletionTime = now
	p.Completed = true
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
}

// reset restores the process to NEW with zeroed metrics.
func (p *Process) reset() {
	p.State = StateNew
	p.RemainingTime = p.BurstTime
	p.CompletionTime = 0
	p.Completed = false
	p.WaitingTime = 0
	p.TurnaroundTime = 0
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, Name: %s, State: %s, Remaining: %d, Wait: %d)",
		p.PID, p.Name, p.State, p.RemainingTime, p.WaitingTime)
}
