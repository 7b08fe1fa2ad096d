package sim

import (
	"fmt"
	"sort"
)

//go:generate mockgen -destination=mock_sim_test.go -package=sim -write_package_comment=false github.com/inference-sim/os-sim/sim Scheduler,MemoryManager

// Scheduler turns a set of processes into a raw execution timeline.
// Idle gaps are implicit: a segment may start after the previous one ends.
// Implementations write completion metrics on each process as it finishes
// and leave every other static field untouched.
type Scheduler interface {
	Name() string
	Schedule(processes []*Process) (Timeline, error)
}

// SchedulerConfig selects and parameterizes a scheduler.
type SchedulerConfig struct {
	Name    string `yaml:"name" json:"name"`
	Quantum int64  `yaml:"quantum,omitempty" json:"quantum,omitempty"` // round-robin only
}

// ValidSchedulers is the set of recognized scheduler names.
// Empty string defaults to FCFS.
var ValidSchedulers = map[string]bool{"": true, "fcfs": true, "round-robin": true, "rr": true, "priority": true, "sjf": true}

// IsValidScheduler returns true if name is a recognized scheduler.
func IsValidScheduler(name string) bool {
	return ValidSchedulers[name]
}

// NewScheduler creates a Scheduler from its config.
// Panics on unrecognized names; callers validate with IsValidScheduler first.
func NewScheduler(cfg SchedulerConfig) Scheduler {
	if !IsValidScheduler(cfg.Name) {
		panic(fmt.Sprintf("unknown scheduler %q", cfg.Name))
	}
	switch cfg.Name {
	case "", "fcfs":
		return &FCFSScheduler{}
	case "round-robin", "rr":
		return &RoundRobinScheduler{Quantum: cfg.Quantum}
	case "priority":
		return &PriorityScheduler{}
	case "sjf":
		return &SJFScheduler{}
	default:
		panic(fmt.Sprintf("unhandled scheduler %q", cfg.Name))
	}
}

// FCFSScheduler serves processes in arrival order without preemption.
type FCFSScheduler struct{}

func (f *FCFSScheduler) Name() string { return "FCFS" }

func (f *FCFSScheduler) Schedule(processes []*Process) (Timeline, error) {
	if err := checkSchedulable(processes); err != nil {
		return nil, err
	}
	timeline := make(Timeline, 0, len(processes))
	var now int64
	for _, p := range arrivalOrder(processes) {
		if now < p.ArrivalTime {
			now = p.ArrivalTime
		}
		timeline, now = runToCompletion(timeline, p, now)
	}
	return timeline, nil
}

// RoundRobinScheduler time-slices the CPU among arrived processes in FIFO order.
// A process preempted at the end of its quantum re-enters the ready queue
// behind any process that arrived during that quantum.
type RoundRobinScheduler struct {
	Quantum int64
}

func (r *RoundRobinScheduler) Name() string { return "RoundRobin" }

func (r *RoundRobinScheduler) Schedule(processes []*Process) (Timeline, error) {
	if r.Quantum <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantum, r.Quantum)
	}
	if err := checkSchedulable(processes); err != nil {
		return nil, err
	}
	incoming := arrivalOrder(processes)
	ready := &ReadyQueue{}
	timeline := make(Timeline, 0, len(processes))

	var now int64
	next, done := 0, 0
	admit := func() {
		for next < len(incoming) && incoming[next].ArrivalTime <= now {
			incoming[next].State = StateReady
			ready.Enqueue(incoming[next])
			next++
		}
	}

	for done < len(incoming) {
		admit()
		if ready.Len() == 0 {
			// CPU idle until the next arrival
			now = incoming[next].ArrivalTime
			continue
		}
		p := ready.Dequeue()
		slice := min(p.RemainingTime, r.Quantum)
		p.State = StateRunning
		timeline = append(timeline, Segment{PID: p.PID, Start: now, End: now + slice})
		now += slice
		p.RemainingTime -= slice

		admit()
		if p.RemainingTime > 0 {
			p.State = StateReady
			ready.Enqueue(p)
		} else {
			p.finish(now)
			done++
		}
	}
	return timeline, nil
}

// PriorityScheduler runs the arrived process with the numerically highest
// priority to completion. Ties go to the earlier arrival, then input order.
type PriorityScheduler struct{}

func (ps *PriorityScheduler) Name() string { return "Priority" }

func (ps *PriorityScheduler) Schedule(processes []*Process) (Timeline, error) {
	return scheduleNonPreemptive(processes, func(a, b *Process) bool {
		return a.Priority > b.Priority
	})
}

// SJFScheduler runs the arrived process with the shortest remaining burst to
// completion. Ties go to the earlier arrival, then input order.
// Warning: SJF can starve long processes under sustained arrivals.
type SJFScheduler struct{}

func (s *SJFScheduler) Name() string { return "SJF" }

func (s *SJFScheduler) Schedule(processes []*Process) (Timeline, error) {
	return scheduleNonPreemptive(processes, func(a, b *Process) bool {
		return a.RemainingTime < b.RemainingTime
	})
}

// scheduleNonPreemptive repeatedly picks the best arrived process according to
// better and runs it to completion. better must be a strict ordering; equal
// candidates fall back to arrival time and then to input order.
func scheduleNonPreemptive(processes []*Process, better func(a, b *Process) bool) (Timeline, error) {
	if err := checkSchedulable(processes); err != nil {
		return nil, err
	}
	pending := make([]*Process, len(processes))
	copy(pending, processes)
	timeline := make(Timeline, 0, len(processes))

	var now int64
	for len(pending) > 0 {
		best := -1
		for i, p := range pending {
			if p.ArrivalTime > now {
				continue
			}
			if best < 0 || better(p, pending[best]) ||
				(!better(pending[best], p) && p.ArrivalTime < pending[best].ArrivalTime) {
				best = i
			}
		}
		if best < 0 {
			now = earliestArrival(pending)
			continue
		}
		p := pending[best]
		pending = append(pending[:best], pending[best+1:]...)
		timeline, now = runToCompletion(timeline, p, now)
	}
	return timeline, nil
}

// runToCompletion appends a single segment covering p's remaining burst.
func runToCompletion(timeline Timeline, p *Process, now int64) (Timeline, int64) {
	p.State = StateRunning
	end := now + p.RemainingTime
	timeline = append(timeline, Segment{PID: p.PID, Start: now, End: end})
	p.finish(end)
	return timeline, end
}

// arrivalOrder returns a copy of processes stably sorted by arrival time.
func arrivalOrder(processes []*Process) []*Process {
	ordered := make([]*Process, len(processes))
	copy(ordered, processes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ArrivalTime < ordered[j].ArrivalTime
	})
	return ordered
}

func earliestArrival(processes []*Process) int64 {
	earliest := processes[0].ArrivalTime
	for _, p := range processes[1:] {
		if p.ArrivalTime < earliest {
			earliest = p.ArrivalTime
		}
	}
	return earliest
}

func checkSchedulable(processes []*Process) error {
	for _, p := range processes {
		if p == nil {
			return fmt.Errorf("%w: nil process", ErrInvalidProcess)
		}
		if p.RemainingTime <= 0 {
			return fmt.Errorf("%w: pid %d has no remaining burst", ErrInvalidProcess, p.PID)
		}
	}
	return nil
}
