// Implements the Kernel: the process table, admission through the memory
// manager, and the dispatch loop that turns a scheduler's raw timeline into
// the final timeline with idle gaps and context-switch overhead.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
	"github.com/inference-sim/os-sim/sim/trace"
)

// KernelConfig groups the Kernel's tunables.
type KernelConfig struct {
	ContextSwitchTime int64             // overhead ticks inserted when the running pid changes (>= 0)
	Trace             trace.TraceConfig // decision tracing; zero value disables it
}

// Kernel owns the process table, the clock and the memory manager of one simulation.
// Not safe for concurrent use.
type Kernel struct {
	processes      []*Process
	pids           map[int]bool
	readyQueue     *ReadyQueue
	scheduler      Scheduler
	memory         MemoryManager
	contextSwitch  int64
	clock          *SystemClock
	executionOrder Timeline
	trace          *trace.SimulationTrace // nil when tracing is off

	log logrus.FieldLogger
}

// NewKernel creates a Kernel. A nil memory manager defaults to paging with
// the default memory size; a nil logger discards output.
func NewKernel(cfg KernelConfig, mm MemoryManager, logger logrus.FieldLogger) *Kernel {
	if cfg.ContextSwitchTime < 0 {
		panic(fmt.Sprintf("NewKernel: ContextSwitchTime must be >= 0, got %d", cfg.ContextSwitchTime))
	}
	if mm == nil {
		mm = NewMemoryManager(MemoryConfig{}, logger)
	}
	k := &Kernel{
		pids:          make(map[int]bool),
		readyQueue:    &ReadyQueue{},
		memory:        mm,
		contextSwitch: cfg.ContextSwitchTime,
		clock:         NewSystemClock(),
		log:           logging.Component(logger, "kernel"),
	}
	if cfg.Trace.Enabled() {
		k.trace = trace.NewSimulationTrace(cfg.Trace)
	}
	k.log.Infof("Kernel initialized (CS overhead: %d)", k.contextSwitch)
	return k
}

// AddProcess admits p: it must be valid, its pid unused, and its memory
// allocatable. On success p is READY and queued; on failure p is not added.
func (k *Kernel) AddProcess(p *Process) bool {
	if p == nil {
		k.log.Error("Refusing to add nil process")
		return false
	}
	entry := k.log.WithField("pid", p.PID)
	if err := p.Validate(); err != nil {
		entry.Errorf("Failed to add process: %v", err)
		k.recordAdmission(p.PID, false, "invalid")
		return false
	}
	if k.pids[p.PID] {
		entry.Error("Failed to add process: duplicate pid")
		k.recordAdmission(p.PID, false, "duplicate pid")
		return false
	}
	if !k.memory.Allocate(p.PID, p.MemoryRequired) {
		entry.Errorf("Failed to add process: insufficient memory for %d bytes", p.MemoryRequired)
		k.recordAdmission(p.PID, false, "insufficient memory")
		return false
	}
	k.processes = append(k.processes, p)
	k.pids[p.PID] = true
	p.State = StateReady
	k.readyQueue.Enqueue(p)
	k.recordAdmission(p.PID, true, "memory allocated")
	entry.Infof("Process %s added to process table and memory allocated", p.Name)
	return true
}

// SetScheduler swaps the active scheduling strategy.
func (k *Kernel) SetScheduler(s Scheduler) {
	k.scheduler = s
	if s != nil {
		k.log.Infof("Scheduler switched to %s", s.Name())
	}
}

// Dispatch schedules every non-terminated process and rewrites the raw
// timeline: gaps tick the clock idle, a change of pid inserts a
// context-switch segment ticked busy, and process segments tick busy once
// per unit. The first segment never triggers a context switch.
func (k *Kernel) Dispatch() (Timeline, error) {
	if k.scheduler == nil {
		k.log.Error("Attempted to dispatch without a scheduler set")
		return nil, ErrNoScheduler
	}
	k.log.WithField("scheduler", k.scheduler.Name()).Info("Dispatching processes to scheduler")

	active := make([]*Process, 0, len(k.processes))
	for _, p := range k.processes {
		if p.State == StateTerminated {
			continue
		}
		if p.State == StateNew {
			p.State = StateReady
			k.readyQueue.Enqueue(p)
		}
		active = append(active, p)
	}

	raw, err := k.scheduler.Schedule(active)
	if err != nil {
		return nil, fmt.Errorf("scheduler %s: %w", k.scheduler.Name(), err)
	}

	final := make(Timeline, 0, len(raw))
	var now int64
	lastPID, started := 0, false
	for _, seg := range raw {
		if seg.Start > now {
			k.clock.Advance(seg.Start-now, false)
			now = seg.Start
		}
		if started && seg.PID != lastPID && k.contextSwitch > 0 {
			cs := ContextSwitch(now, now+k.contextSwitch)
			final = append(final, cs)
			k.clock.Advance(k.contextSwitch, true)
			if k.trace != nil {
				k.trace.RecordContextSwitch(trace.ContextSwitchRecord{FromPID: lastPID, ToPID: seg.PID, Start: cs.Start, End: cs.End})
			}
			now = cs.End
		}
		d := seg.Duration()
		final = append(final, Segment{PID: seg.PID, Start: now, End: now + d})
		k.clock.Advance(d, true)
		now += d
		lastPID, started = seg.PID, true
	}

	k.executionOrder = final
	k.log.Infof("Dispatch completed: %d segments (including overhead)", len(final))
	return final, nil
}

// Run is Dispatch with a fail-soft contract: any error or panic is logged
// and yields an empty timeline.
func (k *Kernel) Run() (timeline Timeline) {
	k.log.Info("Starting simulation run")
	defer func() {
		if r := recover(); r != nil {
			k.log.Errorf("Simulation failed: %v", r)
			timeline = Timeline{}
		}
	}()
	timeline, err := k.Dispatch()
	if err != nil {
		k.log.Errorf("Simulation failed: %v", err)
		return Timeline{}
	}
	return timeline
}

// Reset restores the Kernel to its post-admission state: clock, ready queue
// and timeline are cleared, every process returns to NEW, and memory is
// reallocated in table order. A failed reallocation is logged and ignored.
func (k *Kernel) Reset() {
	k.clock.Reset()
	k.executionOrder = nil
	k.readyQueue.Clear()
	k.memory.Reset()
	if k.trace != nil {
		k.trace.ResetSwitches()
	}
	for _, p := range k.processes {
		p.reset()
		if !k.memory.Allocate(p.PID, p.MemoryRequired) {
			k.log.WithField("pid", p.PID).Warn("Memory reallocation failed during reset")
		}
	}
	k.log.Info("Kernel state and memory reset")
}

// Processes returns the process table in admission order.
func (k *Kernel) Processes() []*Process {
	out := make([]*Process, len(k.processes))
	copy(out, k.processes)
	return out
}

// Process looks up an admitted process by pid.
func (k *Kernel) Process(pid int) (*Process, bool) {
	for _, p := range k.processes {
		if p.PID == pid {
			return p, true
		}
	}
	return nil, false
}

// Clock returns the Kernel's clock.
func (k *Kernel) Clock() *SystemClock { return k.clock }

// ExecutionOrder returns the last timeline produced by Dispatch.
func (k *Kernel) ExecutionOrder() Timeline { return k.executionOrder }

// ReadyQueue returns the admission queue.
func (k *Kernel) ReadyQueue() *ReadyQueue { return k.readyQueue }

// Scheduler returns the active scheduler, or nil.
func (k *Kernel) Scheduler() Scheduler { return k.scheduler }

// Memory returns the Kernel's memory manager.
func (k *Kernel) Memory() MemoryManager { return k.memory }

// Trace returns the decision trace, or nil when tracing is disabled.
func (k *Kernel) Trace() *trace.SimulationTrace { return k.trace }

func (k *Kernel) String() string {
	name := "None"
	if k.scheduler != nil {
		name = k.scheduler.Name()
	}
	return fmt.Sprintf("Kernel(processes=%d, scheduler=%s)", len(k.processes), name)
}

func (k *Kernel) recordAdmission(pid int, admitted bool, reason string) {
	if k.trace == nil {
		return
	}
	k.trace.RecordAdmission(trace.AdmissionRecord{
		PID:      pid,
		Clock:    k.clock.GlobalTime,
		Admitted: admitted,
		Reason:   reason,
	})
}
