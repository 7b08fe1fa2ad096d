package memory

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

// SegmentEntry is one row of a segment table.
type SegmentEntry struct {
	Base  int64 `json:"base"`
	Limit int64 `json:"limit"`
}

func (e SegmentEntry) String() string {
	return fmt.Sprintf("[Base: %d, Limit: %d]", e.Base, e.Limit)
}

// SegmentationStatus reports one process's segment table against total memory.
type SegmentationStatus struct {
	PID         int            `json:"pid"`
	Segments    []SegmentEntry `json:"segments"`
	TotalMemory int64          `json:"total_memory"`
	UsedMemory  int64          `json:"used_memory"`
	Faults      int            `json:"segmentation_faults"`
}

// Segmentation carves segments contiguously from a monotonically advancing
// free pointer. Freed regions are never reused and memory is never compacted.
type Segmentation struct {
	TotalMemory   int64
	FreePointer   int64
	SegmentTables map[int][]SegmentEntry
	Faults        int

	log logrus.FieldLogger
}

// NewSegmentation creates a segmentation MMU over totalMemory bytes.
func NewSegmentation(totalMemory int64, logger logrus.FieldLogger) *Segmentation {
	if totalMemory <= 0 {
		totalMemory = DefaultTotalMemory
	}
	s := &Segmentation{
		TotalMemory:   totalMemory,
		SegmentTables: make(map[int][]SegmentEntry),
		log:           logging.Component(logger, "segmentation"),
	}
	s.log.Infof("Segmentation MMU initialized with %d bytes", totalMemory)
	return s
}

// AllocateSegments lays out one segment per requested size, contiguously from
// the free pointer. Fails when the total exceeds TotalMemory - FreePointer.
func (s *Segmentation) AllocateSegments(pid int, sizes []int64) bool {
	if _, exists := s.SegmentTables[pid]; exists {
		s.log.WithField("pid", pid).Warn("Allocation refused: pid already has a segment table")
		return false
	}
	var total int64
	for _, size := range sizes {
		if size < 0 {
			s.log.WithField("pid", pid).Errorf("Allocation refused: negative segment size %d", size)
			return false
		}
		total += size
	}
	if total > s.TotalMemory-s.FreePointer {
		s.log.WithField("pid", pid).Errorf("Allocation failed: %d bytes requested, %d contiguous bytes left",
			total, s.TotalMemory-s.FreePointer)
		return false
	}

	table := make([]SegmentEntry, 0, len(sizes))
	base := s.FreePointer
	for _, size := range sizes {
		table = append(table, SegmentEntry{Base: base, Limit: size})
		base += size
	}
	s.SegmentTables[pid] = table
	s.FreePointer = base
	s.log.WithField("pid", pid).Infof("Allocated %d segments: %v", len(table), table)
	return true
}

// Allocate gives pid a single segment of bytes, so Segmentation can back a Kernel.
func (s *Segmentation) Allocate(pid int, bytes int64) bool {
	return s.AllocateSegments(pid, []int64{bytes})
}

// Deallocate drops pid's segment table. The space it occupied stays consumed.
func (s *Segmentation) Deallocate(pid int) {
	if _, ok := s.SegmentTables[pid]; !ok {
		s.log.WithField("pid", pid).Warn("Deallocate: no segment table found")
		return
	}
	delete(s.SegmentTables, pid)
	s.log.WithField("pid", pid).Info("Segment table removed; space is not reclaimed")
}

// Translate maps (segmentID, offset) to a physical address.
// Returns ok=false and counts a segmentation fault for an unknown pid, an
// out-of-range segment, or an offset outside [0, limit).
func (s *Segmentation) Translate(pid, segmentID int, offset int64) (physical int64, ok bool) {
	table, exists := s.SegmentTables[pid]
	if !exists {
		s.Faults++
		s.log.WithField("pid", pid).Error("Segmentation fault: no segment table")
		return -1, false
	}
	if segmentID < 0 || segmentID >= len(table) {
		s.Faults++
		s.log.WithField("pid", pid).Errorf("Segmentation fault: invalid segment %d", segmentID)
		return -1, false
	}
	entry := table[segmentID]
	if offset < 0 || offset >= entry.Limit {
		s.Faults++
		s.log.WithField("pid", pid).Errorf("Segmentation fault: offset %d outside limit %d of segment %d",
			offset, entry.Limit, segmentID)
		return -1, false
	}
	return entry.Base + offset, true
}

// Status reports pid's segment table and overall usage.
func (s *Segmentation) Status(pid int) SegmentationStatus {
	return SegmentationStatus{
		PID:         pid,
		Segments:    append([]SegmentEntry(nil), s.SegmentTables[pid]...),
		TotalMemory: s.TotalMemory,
		UsedMemory:  s.FreePointer,
		Faults:      s.Faults,
	}
}

// Reset rewinds the free pointer and clears all tables and faults.
func (s *Segmentation) Reset() {
	s.FreePointer = 0
	s.SegmentTables = make(map[int][]SegmentEntry)
	s.Faults = 0
}
