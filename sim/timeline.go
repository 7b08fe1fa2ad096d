package sim

import (
	"strconv"
)

const (
	// ContextSwitchLabel is the reserved label of context-switch segments.
	ContextSwitchLabel = "CS"

	// ContextSwitchPID is the PID carried by context-switch segments.
	// Admission rejects negative PIDs, so it never collides with a process.
	ContextSwitchPID = -1
)

// Segment is one half-open interval [Start, End) of CPU occupancy.
type Segment struct {
	PID   int   `json:"pid"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// ContextSwitch builds a context-switch segment.
func ContextSwitch(start, end int64) Segment {
	return Segment{PID: ContextSwitchPID, Start: start, End: end}
}

// IsContextSwitch reports whether the segment is context-switch overhead.
func (s Segment) IsContextSwitch() bool {
	return s.PID == ContextSwitchPID
}

// Label returns the PID in decimal, or ContextSwitchLabel.
func (s Segment) Label() string {
	if s.IsContextSwitch() {
		return ContextSwitchLabel
	}
	return strconv.Itoa(s.PID)
}

// Duration returns End - Start.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return "(" + s.Label() + "," + strconv.FormatInt(s.Start, 10) + "," + strconv.FormatInt(s.End, 10) + ")"
}

// Timeline is an ordered sequence of segments.
type Timeline []Segment

// BusyTime sums the durations of process (non context-switch) segments.
func (tl Timeline) BusyTime() int64 {
	var total int64
	for _, s := range tl {
		if !s.IsContextSwitch() {
			total += s.Duration()
		}
	}
	return total
}

// ContextSwitches counts context-switch segments.
func (tl Timeline) ContextSwitches() int {
	n := 0
	for _, s := range tl {
		if s.IsContextSwitch() {
			n++
		}
	}
	return n
}

// FirstStarts maps each PID to the start of its first segment.
func (tl Timeline) FirstStarts() map[int]int64 {
	starts := make(map[int]int64)
	for _, s := range tl {
		if s.IsContextSwitch() {
			continue
		}
		if _, seen := starts[s.PID]; !seen {
			starts[s.PID] = s.Start
		}
	}
	return starts
}

// End returns the end of the last segment, or 0 for an empty timeline.
func (tl Timeline) End() int64 {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1].End
}
