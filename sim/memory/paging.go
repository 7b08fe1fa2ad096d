// Package memory implements the simulator's memory-management units:
// fixed-frame paging, contiguous segmentation, and page-replacement policies.
package memory

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/os-sim/sim/internal/logging"
)

const (
	// DefaultTotalMemory is 256 KiB of physical memory.
	DefaultTotalMemory int64 = 262144
	// DefaultFrameSize is 4 KiB per frame.
	DefaultFrameSize int64 = 4096

	freeFrame = -1
)

// PagingStatus reports frame usage and the cumulative fault count.
type PagingStatus struct {
	TotalFrames int     `json:"total_frames"`
	UsedFrames  int     `json:"used_frames"`
	FreeFrames  int     `json:"free_frames"`
	Utilization float64 `json:"utilization"` // percentage of frames in use
	PageFaults  int     `json:"page_faults"`
}

// Paging maps process pages onto fixed-size physical frames.
// A frame belongs to at most one page table at a time.
type Paging struct {
	FrameSize   int64         // Bytes per frame
	TotalFrames int           // TotalMemory / FrameSize
	Frames      []int         // Frame index -> owning PID, or -1 when free
	PageTables  map[int][]int // PID -> ordered frame indices
	PageFaults  int           // Cumulative translation faults
	UsedFrames  int           // Frames currently owned (tracked incrementally)

	log logrus.FieldLogger
}

// NewPaging creates a paging MMU with totalMemory/frameSize frames, all free.
// Non-positive arguments fall back to the defaults.
func NewPaging(totalMemory, frameSize int64, logger logrus.FieldLogger) *Paging {
	if totalMemory <= 0 {
		totalMemory = DefaultTotalMemory
	}
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	pg := &Paging{
		FrameSize:   frameSize,
		TotalFrames: int(totalMemory / frameSize),
		log:         logging.Component(logger, "paging"),
	}
	pg.Reset()
	pg.log.Infof("Paging MMU initialized: %d frames of %d bytes", pg.TotalFrames, pg.FrameSize)
	return pg
}

// PagesFor returns ceil(bytes / FrameSize).
func (pg *Paging) PagesFor(bytes int64) int {
	if bytes <= 0 {
		return 0
	}
	return int((bytes + pg.FrameSize - 1) / pg.FrameSize)
}

// FreeFrames returns the number of frames not owned by any process.
func (pg *Paging) FreeFrames() int {
	return pg.TotalFrames - pg.UsedFrames
}

// Allocate claims the first ceil(bytes/FrameSize) free frames, in ascending
// index order, for pid. All-or-nothing: on failure nothing is claimed.
func (pg *Paging) Allocate(pid int, bytes int64) bool {
	if _, exists := pg.PageTables[pid]; exists {
		pg.log.WithField("pid", pid).Warn("Allocation refused: pid already has a page table")
		return false
	}
	if bytes < 0 {
		pg.log.WithField("pid", pid).Warnf("Allocation refused: negative size %d", bytes)
		return false
	}
	pages := pg.PagesFor(bytes)
	if pages > pg.FreeFrames() {
		pg.log.WithField("pid", pid).Warnf("Allocation failed: needed %d frames, only %d free", pages, pg.FreeFrames())
		return false
	}

	table := make([]int, 0, pages)
	for idx := 0; idx < pg.TotalFrames && len(table) < pages; idx++ {
		if pg.Frames[idx] == freeFrame {
			pg.Frames[idx] = pid
			table = append(table, idx)
		}
	}
	pg.UsedFrames += len(table)
	pg.PageTables[pid] = table
	pg.log.WithField("pid", pid).Infof("Allocated %d pages (%d bytes), frames %v", pages, bytes, table)
	return true
}

// Deallocate frees every frame owned by pid. Unknown pids are a logged no-op.
func (pg *Paging) Deallocate(pid int) {
	table, ok := pg.PageTables[pid]
	if !ok {
		pg.log.WithField("pid", pid).Warn("Deallocate: no page table found")
		return
	}
	for _, idx := range table {
		pg.Frames[idx] = freeFrame
	}
	pg.UsedFrames -= len(table)
	delete(pg.PageTables, pid)
	pg.log.WithField("pid", pid).Infof("Deallocated frames %v", table)
}

// Translate maps a logical address of pid to a physical address.
// Returns ok=false and counts a page fault when pid has no page table or the
// page index lies outside it.
func (pg *Paging) Translate(pid int, logical int64) (physical int64, ok bool) {
	table, exists := pg.PageTables[pid]
	if !exists {
		pg.PageFaults++
		pg.log.WithField("pid", pid).Error("Page fault: no memory allocated")
		return -1, false
	}
	if logical < 0 {
		pg.PageFaults++
		pg.log.WithField("pid", pid).Errorf("Page fault: negative logical address %d", logical)
		return -1, false
	}
	page := logical / pg.FrameSize
	offset := logical % pg.FrameSize
	if page >= int64(len(table)) {
		pg.PageFaults++
		pg.log.WithField("pid", pid).Errorf("Page fault: logical address %d (page %d) outside %d pages", logical, page, len(table))
		return -1, false
	}
	physical = int64(table[page])*pg.FrameSize + offset
	pg.log.WithField("pid", pid).Debugf("Translated logical %d -> physical %d", logical, physical)
	return physical, true
}

// PageTable returns a copy of pid's page table.
func (pg *Paging) PageTable(pid int) ([]int, bool) {
	table, ok := pg.PageTables[pid]
	if !ok {
		return nil, false
	}
	return append([]int(nil), table...), true
}

// Status reports frame usage and faults.
func (pg *Paging) Status() PagingStatus {
	st := PagingStatus{
		TotalFrames: pg.TotalFrames,
		UsedFrames:  pg.UsedFrames,
		FreeFrames:  pg.FreeFrames(),
		PageFaults:  pg.PageFaults,
	}
	if pg.TotalFrames > 0 {
		st.Utilization = float64(pg.UsedFrames) / float64(pg.TotalFrames) * 100
	}
	return st
}

// Reset frees every frame and clears page tables and the fault counter.
func (pg *Paging) Reset() {
	pg.Frames = make([]int, pg.TotalFrames)
	for i := range pg.Frames {
		pg.Frames[i] = freeFrame
	}
	pg.PageTables = make(map[int][]int)
	pg.PageFaults = 0
	pg.UsedFrames = 0
}
