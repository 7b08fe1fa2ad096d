package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions   int
	AdmittedCount    int
	RejectedCount    int
	RejectionReasons map[string]int // reason → count of rejected admissions
	ContextSwitches  int
	OverheadTicks    int64
	SwitchesInto     map[int]int // pid → count of switches landing on it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RejectionReasons: make(map[string]int),
		SwitchesInto:     make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
			summary.RejectionReasons[a.Reason]++
		}
	}

	summary.ContextSwitches = len(st.ContextSwitches)
	for _, cs := range st.ContextSwitches {
		summary.OverheadTicks += cs.Overhead()
		summary.SwitchesInto[cs.ToPID]++
	}

	return summary
}
