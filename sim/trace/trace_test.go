package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	st.RecordAdmission(AdmissionRecord{
		PID:      1,
		Clock:    0,
		Admitted: true,
		Reason:   "memory allocated",
	})

	// THEN the trace contains one admission record with correct data
	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].PID != 1 {
		t.Errorf("expected pid 1, got %d", st.Admissions[0].PID)
	}
	if !st.Admissions[0].Admitted {
		t.Error("expected admitted=true")
	}
}

func TestSimulationTrace_RecordContextSwitch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a context switch is recorded
	st.RecordContextSwitch(ContextSwitchRecord{FromPID: 1, ToPID: 2, Start: 5, End: 6})

	// THEN the record is kept with its overhead
	if len(st.ContextSwitches) != 1 {
		t.Fatalf("expected 1 context switch, got %d", len(st.ContextSwitches))
	}
	if got := st.ContextSwitches[0].Overhead(); got != 1 {
		t.Errorf("expected overhead 1, got %d", got)
	}
}

func TestSimulationTrace_ResetSwitches_KeepsAdmissions(t *testing.T) {
	// GIVEN a trace with both record kinds
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAdmission(AdmissionRecord{PID: 1, Admitted: true})
	st.RecordContextSwitch(ContextSwitchRecord{FromPID: 1, ToPID: 2, Start: 0, End: 1})

	// WHEN switches are reset
	st.ResetSwitches()

	// THEN admissions survive
	if len(st.ContextSwitches) != 0 {
		t.Errorf("expected no context switches, got %d", len(st.ContextSwitches))
	}
	if len(st.Admissions) != 1 {
		t.Errorf("expected 1 admission, got %d", len(st.Admissions))
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAdmission(AdmissionRecord{PID: 1, Admitted: true, Reason: "ok"})
	st.RecordAdmission(AdmissionRecord{PID: 2, Admitted: false, Reason: "insufficient memory"})

	// THEN order is preserved
	if len(st.Admissions) != 2 {
		t.Fatalf("expected 2 admissions, got %d", len(st.Admissions))
	}
	if st.Admissions[0].PID != 1 || st.Admissions[1].PID != 2 {
		t.Error("admission order not preserved")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{}).Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions level must be enabled")
	}
}
