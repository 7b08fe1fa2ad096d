package workload

import (
	"fmt"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/deadlock"
)

// BankerSpec describes a Banker's Algorithm scenario: a total resource
// vector, each process's maximum demand and what it already holds,
// and an optional list of requests to replay in order.
type BankerSpec struct {
	Total     []int               `yaml:"total" json:"total"`
	Processes []BankerProcessSpec `yaml:"processes" json:"processes"`
	Requests  []ResourceRequest   `yaml:"requests,omitempty" json:"requests,omitempty"`
}

// BankerProcessSpec is one process row of a BankerSpec.
type BankerProcessSpec struct {
	PID        int   `yaml:"pid" json:"pid"`
	Max        []int `yaml:"max" json:"max"`
	Allocation []int `yaml:"allocation,omitempty" json:"allocation,omitempty"`
}

// ResourceRequest asks for Amounts on behalf of PID.
type ResourceRequest struct {
	PID     int   `yaml:"pid" json:"pid"`
	Amounts []int `yaml:"amounts" json:"amounts"`
}

// LoadBankerSpec reads a BankerSpec with strict YAML parsing.
func LoadBankerSpec(path string) (*BankerSpec, error) {
	var spec BankerSpec
	if err := decodeStrictFile(path, &spec); err != nil {
		return nil, fmt.Errorf("banker spec: %w", err)
	}
	return &spec, nil
}

// Build creates a Banker, registers every process and grants its initial
// allocation. Fails if a process is rejected or an initial allocation is
// not granted.
func (s *BankerSpec) Build(logger logrus.FieldLogger) (*deadlock.Banker, error) {
	if len(s.Total) == 0 {
		return nil, fmt.Errorf("%w: total must list at least one resource type", ErrInvalidSpec)
	}
	if slices.ContainsFunc(s.Total, func(v int) bool { return v < 0 }) {
		return nil, fmt.Errorf("%w: total must be non-negative, got %v", ErrInvalidSpec, s.Total)
	}
	b := deadlock.NewBanker(s.Total, logger)
	for i, p := range s.Processes {
		if !b.AddProcess(p.PID, p.Max) {
			return nil, fmt.Errorf("%w: processes[%d]: pid %d rejected with max %v", ErrInvalidSpec, i, p.PID, p.Max)
		}
	}
	for i, p := range s.Processes {
		if len(p.Allocation) == 0 {
			continue
		}
		if out := b.Request(p.PID, p.Allocation); !out.Granted() {
			return nil, fmt.Errorf("%w: processes[%d]: initial allocation %v %s", ErrInvalidSpec, i, p.Allocation, out)
		}
	}
	return b, nil
}

// DetectionSpec holds the allocation and outstanding request vectors
// for deadlock detection, keyed by pid.
type DetectionSpec struct {
	Allocation map[int][]int `yaml:"allocation" json:"allocation"`
	Request    map[int][]int `yaml:"request" json:"request"`
}

// LoadDetectionSpec reads a DetectionSpec with strict YAML parsing.
func LoadDetectionSpec(path string) (*DetectionSpec, error) {
	var spec DetectionSpec
	if err := decodeStrictFile(path, &spec); err != nil {
		return nil, fmt.Errorf("detection spec: %w", err)
	}
	return &spec, nil
}

// Validate rejects requests from pids that hold no allocation row and
// negative entries.
func (s *DetectionSpec) Validate() error {
	pids := make([]int, 0, len(s.Request))
	for pid := range s.Request {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	for _, pid := range pids {
		if _, ok := s.Allocation[pid]; !ok {
			return fmt.Errorf("%w: request for pid %d has no allocation row", ErrInvalidSpec, pid)
		}
	}
	for name, m := range map[string]map[int][]int{"allocation": s.Allocation, "request": s.Request} {
		for pid, row := range m {
			if slices.ContainsFunc(row, func(v int) bool { return v < 0 }) {
				return fmt.Errorf("%w: %s[%d] has a negative entry", ErrInvalidSpec, name, pid)
			}
		}
	}
	return nil
}
