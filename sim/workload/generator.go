package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/os-sim/sim"
)

// Range is an inclusive integer interval [Min, Max].
type Range struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

func (r Range) sample(rng *rand.Rand) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Int63n(r.Max-r.Min+1)
}

func (r Range) validate(field string, floor, ceiling int64) error {
	if r.Min < floor {
		return fmt.Errorf("%s.min must be >= %d, got %d", field, floor, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s.max (%d) must be >= %s.min (%d)", field, r.Max, field, r.Min)
	}
	if r.Max > ceiling {
		return fmt.Errorf("%s.max must be <= %d, got %d", field, ceiling, r.Max)
	}
	// sample draws from Max-Min+1 values, which must fit in an int64.
	if uint64(r.Max)-uint64(r.Min) >= math.MaxInt64 {
		return fmt.Errorf("%s range [%d, %d] is too wide", field, r.Min, r.Max)
	}
	return nil
}

// MaxGeneratedProcesses caps generate.count.
const MaxGeneratedProcesses = 10000

// GeneratorSpec describes a synthetic workload: Count processes whose
// attributes are drawn uniformly from the given ranges.
type GeneratorSpec struct {
	Count    int   `yaml:"count"`
	Arrival  Range `yaml:"arrival"`
	Burst    Range `yaml:"burst"`
	Priority Range `yaml:"priority"`
	Memory   Range `yaml:"memory"`
}

func (g *GeneratorSpec) validate() error {
	if g.Count < 0 || g.Count > MaxGeneratedProcesses {
		return fmt.Errorf("count must be in [0, %d], got %d", MaxGeneratedProcesses, g.Count)
	}
	checks := []struct {
		field          string
		r              Range
		floor, ceiling int64
	}{
		{"arrival", g.Arrival, 0, MaxHorizon},
		{"burst", g.Burst, 1, MaxHorizon},
		{"priority", g.Priority, math.MinInt, math.MaxInt},
		{"memory", g.Memory, 0, math.MaxInt64},
	}
	for _, c := range checks {
		if err := c.r.validate(c.field, c.floor, c.ceiling); err != nil {
			return err
		}
	}
	return nil
}

// Generate draws g.Count processes with pids starting at firstPID, named
// "G<pid>". The same seed always yields the same processes.
func Generate(g GeneratorSpec, seed int64, firstPID int) []*sim.Process {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemWorkload)
	procs := make([]*sim.Process, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		pid := firstPID + i
		arrival := g.Arrival.sample(rng)
		burst := g.Burst.sample(rng)
		priority := int(g.Priority.sample(rng))
		memory := g.Memory.sample(rng)
		procs = append(procs, sim.NewProcess(pid, fmt.Sprintf("G%d", pid), arrival, burst, priority, memory))
	}
	return procs
}

// ReferenceString draws length page numbers uniformly from [0, pages).
// Used to feed the page replacement policies.
func ReferenceString(seed int64, length, pages int) []int {
	if length <= 0 || pages <= 0 {
		return []int{}
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemReferences)
	refs := make([]int, length)
	for i := range refs {
		refs[i] = rng.Intn(pages)
	}
	return refs
}
