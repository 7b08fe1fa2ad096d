// Package deadlock implements deadlock avoidance (Banker's Algorithm) and
// detection (wait-for graph cycles) over plain resource vectors.
// Nothing here depends on the Kernel.
package deadlock

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// Outcome is the result of a resource request.
// Every refusal is a steady-state answer, not an error.
type Outcome string

const (
	Granted        Outcome = "granted"
	ExceedsNeed    Outcome = "exceeds-need"    // request > Need: the process broke its declared ceiling
	MustWait       Outcome = "must-wait"       // request > Available
	Unsafe         Outcome = "unsafe"          // granting would leave no safe sequence
	UnknownProcess Outcome = "unknown-process" // pid was never added
	InvalidRequest Outcome = "invalid-request" // wrong vector length or negative component
)

// Granted reports whether the request was applied.
func (o Outcome) Granted() bool {
	return o == Granted
}

// Matrices is a snapshot of the Banker's state.
type Matrices struct {
	Total      []int         `json:"total"`
	Available  []int         `json:"available"`
	Allocation map[int][]int `json:"allocation"`
	Max        map[int][]int `json:"max"`
	Need       map[int][]int `json:"need"`
}

// Banker tracks Available, Allocation, Max and Need and admits only requests
// that keep the system in a safe state.
// Invariants after every accepted operation:
// Need[p] = Max[p] - Allocation[p], and Available + sum(Allocation) = Total.
type Banker struct {
	total      []int
	available  []int
	allocation map[int][]int
	max        map[int][]int
	need       map[int][]int
	pids       []int // ascending; fixes the safety scan order

	log logrus.FieldLogger
}

// NewBanker creates a Banker over the given total resource vector.
func NewBanker(total []int, logger logrus.FieldLogger) *Banker {
	b := &Banker{
		total:      slices.Clone(total),
		available:  slices.Clone(total),
		allocation: make(map[int][]int),
		max:        make(map[int][]int),
		need:       make(map[int][]int),
		log:        logging.Component(logger, "bankers"),
	}
	b.log.Infof("Banker's Algorithm initialized with resources %v", b.total)
	return b
}

// NumTypes returns the number of resource types.
func (b *Banker) NumTypes() int {
	return len(b.total)
}

// AddProcess registers pid with its maximum demand. Rejected when the vector
// has the wrong length, a negative component, or a component above the total.
func (b *Banker) AddProcess(pid int, maxDemand []int) bool {
	entry := b.log.WithField("pid", pid)
	if len(maxDemand) != len(b.total) {
		entry.Errorf("Invalid max vector size %d, expected %d", len(maxDemand), len(b.total))
		return false
	}
	for i, m := range maxDemand {
		if m < 0 || m > b.total[i] {
			entry.Errorf("Max demand %d of resource %d outside [0, %d]", m, i, b.total[i])
			return false
		}
	}
	if _, exists := b.max[pid]; exists {
		entry.Error("Process already registered")
		return false
	}
	b.max[pid] = slices.Clone(maxDemand)
	b.allocation[pid] = make([]int, len(b.total))
	b.need[pid] = slices.Clone(maxDemand)
	b.pids = append(b.pids, pid)
	slices.Sort(b.pids)
	entry.Infof("Process added with max %v", maxDemand)
	return true
}

// RequestResources is Request reduced to a boolean.
func (b *Banker) RequestResources(pid int, request []int) bool {
	return b.Request(pid, request).Granted()
}

// Request evaluates a request against Need, Available and the safety
// algorithm. A request that would leave the system unsafe is rolled back.
func (b *Banker) Request(pid int, request []int) Outcome {
	entry := b.log.WithField("pid", pid)
	need, ok := b.need[pid]
	if !ok {
		entry.Error("Process not registered")
		return UnknownProcess
	}
	if len(request) != len(b.total) || slices.ContainsFunc(request, func(v int) bool { return v < 0 }) {
		entry.Errorf("Invalid request %v", request)
		return InvalidRequest
	}
	if !lessOrEqual(request, need) {
		entry.Errorf("Request %v exceeds declared need %v", request, need)
		return ExceedsNeed
	}
	if !lessOrEqual(request, b.available) {
		entry.Infof("Request %v must wait: available %v", request, b.available)
		return MustWait
	}

	origAvailable := slices.Clone(b.available)
	origAllocation := slices.Clone(b.allocation[pid])
	origNeed := slices.Clone(need)

	for i, r := range request {
		b.available[i] -= r
		b.allocation[pid][i] += r
		b.need[pid][i] -= r
	}

	safe, sequence := b.SafeStateCheck()
	if !safe {
		b.available = origAvailable
		b.allocation[pid] = origAllocation
		b.need[pid] = origNeed
		entry.Warnf("Request %v denied: granting would lead to an unsafe state", request)
		return Unsafe
	}
	entry.Infof("Request %v granted; safe sequence %v", request, sequence)
	return Granted
}

// ReleaseResources returns resources to the pool. Each amount is clamped to
// what pid actually holds. Unknown pids and malformed vectors are ignored.
func (b *Banker) ReleaseResources(pid int, amounts []int) {
	alloc, ok := b.allocation[pid]
	if !ok || len(amounts) != len(b.total) {
		b.log.WithField("pid", pid).Warnf("Ignoring release %v", amounts)
		return
	}
	for i, amt := range amounts {
		released := min(max(amt, 0), alloc[i])
		alloc[i] -= released
		b.available[i] += released
		b.need[pid][i] = b.max[pid][i] - alloc[i]
	}
	b.log.WithField("pid", pid).Infof("Released %v; available %v", amounts, b.available)
}

// SafeStateCheck runs the safety algorithm. Each pass scans unfinished
// processes in ascending pid order; any whose Need fits in Work finishes and
// returns its allocation to Work. Safe iff every process finishes.
func (b *Banker) SafeStateCheck() (bool, []int) {
	work := slices.Clone(b.available)
	finished := make(map[int]bool, len(b.pids))
	sequence := make([]int, 0, len(b.pids))

	for len(sequence) < len(b.pids) {
		progressed := false
		for _, pid := range b.pids {
			if finished[pid] || !lessOrEqual(b.need[pid], work) {
				continue
			}
			for i, a := range b.allocation[pid] {
				work[i] += a
			}
			finished[pid] = true
			sequence = append(sequence, pid)
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return len(sequence) == len(b.pids), sequence
}

// Matrices returns a deep copy of the current state.
func (b *Banker) Matrices() Matrices {
	return Matrices{
		Total:      slices.Clone(b.total),
		Available:  slices.Clone(b.available),
		Allocation: cloneMatrix(b.allocation),
		Max:        cloneMatrix(b.max),
		Need:       cloneMatrix(b.need),
	}
}

// PIDs returns the registered pids in ascending order.
func (b *Banker) PIDs() []int {
	return slices.Clone(b.pids)
}

func lessOrEqual(a, b []int) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

func cloneMatrix(m map[int][]int) map[int][]int {
	out := make(map[int][]int, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
