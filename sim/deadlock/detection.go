package deadlock

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// WaitForGraph maps each pid to the sorted pids it waits on.
type WaitForGraph map[int][]int

// BuildWaitForGraph adds an edge Pi -> Pj when Pi requests a positive amount
// of some resource type that Pj currently holds (i != j).
// A pid missing from request is treated as requesting nothing.
func BuildWaitForGraph(allocation, request map[int][]int) WaitForGraph {
	pids := sortedKeys(allocation)
	wfg := make(WaitForGraph, len(pids))
	for _, pi := range pids {
		edges := []int{}
		req := request[pi]
		for _, pj := range pids {
			if pi == pj {
				continue
			}
			held := allocation[pj]
			for r := range req {
				if req[r] > 0 && r < len(held) && held[r] > 0 {
					edges = append(edges, pj)
					break
				}
			}
		}
		wfg[pi] = edges
	}
	return wfg
}

// Detector finds deadlocked processes from allocation and request vectors.
type Detector struct {
	log logrus.FieldLogger
}

// NewDetector creates a Detector that logs through logger (nil discards).
func NewDetector(logger logrus.FieldLogger) *Detector {
	return &Detector{log: logging.Component(logger, "deadlock-detection")}
}

// Detect returns the sorted, deduplicated pids lying on a wait-for cycle.
// DFS runs from each unvisited pid in ascending order; when a neighbour is
// already on the current path, every pid from it to the path's end is deadlocked.
func (d *Detector) Detect(allocation, request map[int][]int) []int {
	wfg := BuildWaitForGraph(allocation, request)
	d.log.Debugf("Wait-for graph: %v", wfg)

	visited := make(map[int]bool, len(wfg))
	deadlocked := make(map[int]bool)
	var path []int

	var visit func(pid int)
	visit = func(pid int) {
		visited[pid] = true
		path = append(path, pid)
		for _, next := range wfg[pid] {
			if i := slices.Index(path, next); i >= 0 {
				for _, p := range path[i:] {
					deadlocked[p] = true
				}
			} else if !visited[next] {
				visit(next)
			}
		}
		path = path[:len(path)-1]
	}

	for _, pid := range sortedKeys(wfg) {
		if !visited[pid] {
			visit(pid)
		}
	}

	result := sortedKeys(deadlocked)
	if len(result) > 0 {
		d.log.Warnf("Deadlock detected among processes %v", result)
	} else {
		d.log.Info("No deadlock detected")
	}
	return result
}

// DetectDeadlock runs a Detector with a discarding logger.
func DetectDeadlock(allocation, request map[int][]int) []int {
	return NewDetector(nil).Detect(allocation, request)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
