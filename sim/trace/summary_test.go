package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 0 || summary.RejectedCount != 0 {
		t.Error("expected 0 admitted and rejected")
	}
	if summary.ContextSwitches != 0 || summary.OverheadTicks != 0 {
		t.Error("expected no context switch overhead")
	}
	if len(summary.SwitchesInto) != 0 {
		t.Error("expected empty switch distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.RejectionReasons == nil {
		t.Error("expected zero summary with initialized maps")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed admissions and switches
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAdmission(AdmissionRecord{PID: 1, Admitted: true, Reason: "ok"})
	st.RecordAdmission(AdmissionRecord{PID: 2, Admitted: false, Reason: "insufficient memory"})
	st.RecordAdmission(AdmissionRecord{PID: 3, Admitted: false, Reason: "insufficient memory"})
	st.RecordContextSwitch(ContextSwitchRecord{FromPID: 1, ToPID: 2, Start: 2, End: 4})
	st.RecordContextSwitch(ContextSwitchRecord{FromPID: 2, ToPID: 1, Start: 6, End: 8})
	st.RecordContextSwitch(ContextSwitchRecord{FromPID: 3, ToPID: 1, Start: 9, End: 11})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDecisions != 3 {
		t.Errorf("expected 3 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 1 || summary.RejectedCount != 2 {
		t.Errorf("expected 1 admitted / 2 rejected, got %d / %d", summary.AdmittedCount, summary.RejectedCount)
	}
	if summary.RejectionReasons["insufficient memory"] != 2 {
		t.Errorf("expected 2 memory rejections, got %d", summary.RejectionReasons["insufficient memory"])
	}
	if summary.ContextSwitches != 3 || summary.OverheadTicks != 6 {
		t.Errorf("expected 3 switches / 6 ticks, got %d / %d", summary.ContextSwitches, summary.OverheadTicks)
	}
	if summary.SwitchesInto[1] != 2 || summary.SwitchesInto[2] != 1 {
		t.Errorf("unexpected switch distribution %v", summary.SwitchesInto)
	}
}
