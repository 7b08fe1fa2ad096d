// Package trace provides decision-trace recording for kernel runs.
// This package has no dependencies on sim/; it stores plain data types.
package trace

// AdmissionRecord captures a single admission decision.
type AdmissionRecord struct {
	PID      int
	Clock    int64
	Admitted bool
	Reason   string
}

// ContextSwitchRecord captures one context switch inserted during dispatch.
type ContextSwitchRecord struct {
	FromPID int
	ToPID   int
	Start   int64
	End     int64
}

// Overhead returns the ticks spent on the switch.
func (r ContextSwitchRecord) Overhead() int64 {
	return r.End - r.Start
}
