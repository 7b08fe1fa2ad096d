package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures admission decisions and context switches.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects decision records during a kernel's lifetime.
type SimulationTrace struct {
	Config          TraceConfig
	Admissions      []AdmissionRecord
	ContextSwitches []ContextSwitchRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:          config,
		Admissions:      make([]AdmissionRecord, 0),
		ContextSwitches: make([]ContextSwitchRecord, 0),
	}
}

// RecordAdmission appends an admission decision record.
func (st *SimulationTrace) RecordAdmission(record AdmissionRecord) {
	st.Admissions = append(st.Admissions, record)
}

// RecordContextSwitch appends a context switch record.
func (st *SimulationTrace) RecordContextSwitch(record ContextSwitchRecord) {
	st.ContextSwitches = append(st.ContextSwitches, record)
}

// ResetSwitches drops context switch records; admissions survive a kernel reset.
func (st *SimulationTrace) ResetSwitches() {
	st.ContextSwitches = st.ContextSwitches[:0]
}
