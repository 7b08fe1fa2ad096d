package recording

import (
	"fmt"

	"github.com/inference-sim/os-sim/sim"
)

// Table names used by RecordComparison.
const (
	ComparisonTable = "comparison"
	SegmentTable    = "segments"
)

// SegmentRow is one timeline segment of one algorithm's run.
// PID is -1 for a context switch.
type SegmentRow struct {
	RunID     string
	Algorithm string
	Seq       int
	PID       int
	Label     string
	Start     int64
	End       int64
}

// SegmentRows flattens timeline into rows in timeline order.
func SegmentRows(runID, algorithm string, timeline sim.Timeline) []SegmentRow {
	rows := make([]SegmentRow, 0, len(timeline))
	for i, seg := range timeline {
		rows = append(rows, SegmentRow{
			RunID:     runID,
			Algorithm: algorithm,
			Seq:       i,
			PID:       seg.PID,
			Label:     seg.Label(),
			Start:     seg.Start,
			End:       seg.End,
		})
	}
	return rows
}

// RecordComparison declares the comparison and segment tables on r and
// buffers one metrics row per algorithm plus every timeline segment.
// Callers Flush or Close r afterwards.
func RecordComparison(r Recorder, cmp *sim.Comparison) error {
	if err := ensureTables(r); err != nil {
		return err
	}
	for _, row := range cmp.Rows() {
		if err := r.InsertData(ComparisonTable, row); err != nil {
			return err
		}
	}
	for _, name := range cmp.Order {
		for _, seg := range SegmentRows(cmp.RunID, name, cmp.Timelines[name]) {
			if err := r.InsertData(SegmentTable, seg); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureTables(r Recorder) error {
	declared := make(map[string]bool)
	for _, name := range r.ListTables() {
		declared[name] = true
	}
	samples := []struct {
		name   string
		sample any
	}{
		{ComparisonTable, sim.ComparisonRow{}},
		{SegmentTable, SegmentRow{}},
	}
	for _, s := range samples {
		if declared[s.name] {
			continue
		}
		if err := r.CreateTable(s.name, s.sample); err != nil {
			return fmt.Errorf("declaring %s: %w", s.name, err)
		}
	}
	return nil
}
