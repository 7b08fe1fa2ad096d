package memory

import (
	"fmt"
	"slices"
)

// ReplacementResult summarizes a page-replacement run over a reference string.
type ReplacementResult struct {
	Policy     string  `json:"policy"`
	PageFaults int     `json:"page_faults"`
	PageHits   int     `json:"page_hits"`
	FaultRatio float64 `json:"fault_ratio"` // faults / references, 0 for an empty string
}

// ReplacementPolicy simulates a resident set of a fixed number of frames.
type ReplacementPolicy interface {
	Name() string
	Run(references []int, frames int) ReplacementResult
}

// ValidReplacementPolicies is the set of recognized page-replacement names.
var ValidReplacementPolicies = map[string]bool{"fifo": true, "lru": true, "optimal": true}

// IsValidReplacementPolicy returns true if name is a recognized policy.
func IsValidReplacementPolicy(name string) bool {
	return ValidReplacementPolicies[name]
}

// NewReplacementPolicy creates a ReplacementPolicy by name.
// Panics on unrecognized names.
func NewReplacementPolicy(name string) ReplacementPolicy {
	if !IsValidReplacementPolicy(name) {
		panic(fmt.Sprintf("unknown replacement policy %q", name))
	}
	switch name {
	case "fifo":
		return FIFOReplacement{}
	case "lru":
		return LRUReplacement{}
	case "optimal":
		return OptimalReplacement{}
	default:
		panic(fmt.Sprintf("unhandled replacement policy %q", name))
	}
}

// FIFOReplacement evicts the page that was loaded earliest.
type FIFOReplacement struct{}

func (FIFOReplacement) Name() string { return "fifo" }

func (f FIFOReplacement) Run(references []int, frames int) ReplacementResult {
	var resident []int
	res := ReplacementResult{Policy: f.Name()}
	for _, page := range references {
		if slices.Contains(resident, page) {
			res.PageHits++
			continue
		}
		res.PageFaults++
		resident = load(resident, page, frames, 0)
	}
	return finishResult(res, len(references))
}

// LRUReplacement evicts the page whose last use is furthest in the past.
type LRUReplacement struct{}

func (LRUReplacement) Name() string { return "lru" }

func (l LRUReplacement) Run(references []int, frames int) ReplacementResult {
	// resident is ordered from least to most recently used
	var resident []int
	res := ReplacementResult{Policy: l.Name()}
	for _, page := range references {
		if i := slices.Index(resident, page); i >= 0 {
			res.PageHits++
			resident = append(slices.Delete(resident, i, i+1), page)
			continue
		}
		res.PageFaults++
		resident = load(resident, page, frames, 0)
	}
	return finishResult(res, len(references))
}

// OptimalReplacement evicts the page whose next use lies furthest in the
// future; a page never used again is evicted first.
type OptimalReplacement struct{}

func (OptimalReplacement) Name() string { return "optimal" }

func (o OptimalReplacement) Run(references []int, frames int) ReplacementResult {
	var resident []int
	res := ReplacementResult{Policy: o.Name()}
	for i, page := range references {
		if slices.Contains(resident, page) {
			res.PageHits++
			continue
		}
		res.PageFaults++
		if frames <= 0 {
			continue
		}
		if len(resident) < frames {
			resident = append(resident, page)
			continue
		}
		resident[victimOptimal(resident, references[i+1:])] = page
	}
	return finishResult(res, len(references))
}

// victimOptimal returns the index in resident of the page to replace.
func victimOptimal(resident []int, future []int) int {
	victim, farthest := 0, -1
	for idx, page := range resident {
		next := slices.Index(future, page)
		if next < 0 {
			return idx
		}
		if next > farthest {
			farthest = next
			victim = idx
		}
	}
	return victim
}

// load appends page, evicting resident[evict] first when all frames are full.
func load(resident []int, page, frames, evict int) []int {
	if frames <= 0 {
		return resident
	}
	if len(resident) >= frames {
		resident = slices.Delete(resident, evict, evict+1)
	}
	return append(resident, page)
}

func finishResult(res ReplacementResult, total int) ReplacementResult {
	if total > 0 {
		res.FaultRatio = float64(res.PageFaults) / float64(total)
	}
	return res
}
