// Package workload loads simulation inputs from YAML: process workloads with
// their scheduler, memory and context-switch settings, seeded synthetic
// workloads, and resource matrices for the deadlock algorithms.
package workload

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/os-sim/sim"
	"github.com/inference-sim/os-sim/sim/trace"
)

// ErrInvalidSpec marks a spec that parsed but failed validation.
var ErrInvalidSpec = errors.New("invalid workload spec")

// MaxHorizon bounds the simulated time a workload may span: the latest
// arrival plus the sum of all bursts. It also caps context_switch_time.
const MaxHorizon int64 = 1_000_000

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version           string                `yaml:"version"`
	Seed              int64                 `yaml:"seed"`
	Scheduler         sim.SchedulerConfig   `yaml:"scheduler"`
	Schedulers        []sim.SchedulerConfig `yaml:"schedulers,omitempty"` // comparison set; empty = DefaultComparisonSet
	ContextSwitchTime int64                 `yaml:"context_switch_time"`
	Memory            sim.MemoryConfig      `yaml:"memory"`
	TraceLevel        string                `yaml:"trace_level,omitempty"`
	Processes         []ProcessSpec         `yaml:"processes"`
	Generate          *GeneratorSpec        `yaml:"generate,omitempty"`
}

// ProcessSpec describes one explicit process.
type ProcessSpec struct {
	PID      int    `yaml:"pid"`
	Name     string `yaml:"name"`
	Arrival  int64  `yaml:"arrival"`
	Burst    int64  `yaml:"burst"`
	Priority int    `yaml:"priority"`
	Memory   int64  `yaml:"memory"`
}

// ToProcess builds a fresh NEW process. An empty name becomes "P<pid>".
func (p ProcessSpec) ToProcess() *sim.Process {
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("P%d", p.PID)
	}
	return sim.NewProcess(p.PID, name, p.Arrival, p.Burst, p.Priority, p.Memory)
}

// LoadWorkloadSpec reads and parses a YAML workload file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	if err := decodeStrictFile(path, &spec); err != nil {
		return nil, fmt.Errorf("workload spec: %w", err)
	}
	return &spec, nil
}

// ParseWorkloadSpec parses YAML bytes with the same strictness as LoadWorkloadSpec.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	if err := decodeStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("workload spec: %w", err)
	}
	return &spec, nil
}

func decodeStrictFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeStrict(data, out)
}

func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	return nil
}

// Validate checks that all fields in the workload are valid.
// Every returned error wraps ErrInvalidSpec.
func (s *WorkloadSpec) Validate() error {
	if err := s.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return nil
}

func (s *WorkloadSpec) validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported version %q; valid: 1", s.Version)
	}
	if err := validateScheduler("scheduler", s.Scheduler); err != nil {
		return err
	}
	for i, sc := range s.Schedulers {
		if err := validateScheduler(fmt.Sprintf("schedulers[%d]", i), sc); err != nil {
			return err
		}
	}
	if s.ContextSwitchTime < 0 || s.ContextSwitchTime > MaxHorizon {
		return fmt.Errorf("context_switch_time must be in [0, %d], got %d", MaxHorizon, s.ContextSwitchTime)
	}
	if !sim.IsValidMemoryModel(s.Memory.Model) {
		return fmt.Errorf("unknown memory model %q; valid: paging, segmentation", s.Memory.Model)
	}
	if s.Memory.TotalMemory < 0 || s.Memory.FrameSize < 0 {
		return fmt.Errorf("memory sizes must be non-negative, got total=%d frame=%d", s.Memory.TotalMemory, s.Memory.FrameSize)
	}
	if !trace.IsValidTraceLevel(s.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q; valid: none, decisions", s.TraceLevel)
	}
	seen := make(map[int]bool, len(s.Processes))
	for i, ps := range s.Processes {
		if err := ps.ToProcess().Validate(); err != nil {
			return fmt.Errorf("processes[%d]: %v", i, err)
		}
		if seen[ps.PID] {
			return fmt.Errorf("processes[%d]: duplicate pid %d", i, ps.PID)
		}
		seen[ps.PID] = true
	}
	if s.Generate != nil {
		if err := s.Generate.validate(); err != nil {
			return fmt.Errorf("generate: %v", err)
		}
	}
	if len(s.Processes) == 0 && (s.Generate == nil || s.Generate.Count == 0) {
		return fmt.Errorf("at least one process or a positive generate.count is required")
	}
	if h := s.horizon(); h > MaxHorizon {
		return fmt.Errorf("latest arrival plus total burst must be <= %d, got %d", MaxHorizon, h)
	}
	return nil
}

// horizon is the latest possible arrival plus the largest possible total
// burst, saturating at math.MaxInt64. Generator bounds must already be valid.
func (s *WorkloadSpec) horizon() int64 {
	var latest, work int64
	for _, ps := range s.Processes {
		latest = max(latest, ps.Arrival)
		work = addSaturating(work, ps.Burst)
	}
	if g := s.Generate; g != nil {
		latest = max(latest, g.Arrival.Max)
		work = addSaturating(work, int64(g.Count)*g.Burst.Max)
	}
	return addSaturating(latest, work)
}

// addSaturating adds two non-negative values, clamping at math.MaxInt64.
func addSaturating(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func validateScheduler(field string, sc sim.SchedulerConfig) error {
	if !sim.IsValidScheduler(sc.Name) {
		return fmt.Errorf("%s: unknown scheduler %q; valid: fcfs, round-robin (rr), priority, sjf", field, sc.Name)
	}
	if (sc.Name == "rr" || sc.Name == "round-robin") && sc.Quantum <= 0 {
		return fmt.Errorf("%s: round robin quantum must be positive, got %d", field, sc.Quantum)
	}
	return nil
}

// BuildProcesses returns fresh processes: the explicit ones in file order,
// followed by generated ones whose pids continue after the largest explicit pid.
// Deterministic given the same spec.
func (s *WorkloadSpec) BuildProcesses() ([]*sim.Process, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	procs := make([]*sim.Process, 0, len(s.Processes))
	nextPID := 1
	for _, ps := range s.Processes {
		procs = append(procs, ps.ToProcess())
		nextPID = max(nextPID, ps.PID+1)
	}
	if s.Generate != nil {
		procs = append(procs, Generate(*s.Generate, s.Seed, nextPID)...)
	}
	return procs, nil
}

// KernelConfig returns the Kernel settings the workload describes.
func (s *WorkloadSpec) KernelConfig() sim.KernelConfig {
	return sim.KernelConfig{
		ContextSwitchTime: s.ContextSwitchTime,
		Trace:             trace.TraceConfig{Level: trace.TraceLevel(s.TraceLevel)},
	}
}

// ComparisonSet returns the configured schedulers, or DefaultComparisonSet
// using the workload's round robin quantum (2 when unset).
func (s *WorkloadSpec) ComparisonSet() []sim.SchedulerConfig {
	if len(s.Schedulers) > 0 {
		return s.Schedulers
	}
	quantum := s.Scheduler.Quantum
	if quantum <= 0 {
		quantum = 2
	}
	return DefaultComparisonSet(quantum)
}

// DefaultComparisonSet is FCFS, Round Robin with quantum, Priority and SJF.
func DefaultComparisonSet(quantum int64) []sim.SchedulerConfig {
	return []sim.SchedulerConfig{
		{Name: "fcfs"},
		{Name: "rr", Quantum: quantum},
		{Name: "priority"},
		{Name: "sjf"},
	}
}
