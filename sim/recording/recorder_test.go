package recording

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/os-sim/sim"
)

type sample struct {
	ID   int
	Name string
	Load float64
}

func openRecorder(t *testing.T) (Recorder, string) {
	t.Helper()
	path := DefaultPath(t.TempDir())
	r, err := New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, path
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestRecorder_InsertAndFlush_RoundTrips(t *testing.T) {
	// GIVEN a table declared from a flat struct
	r, path := openRecorder(t)
	require.NoError(t, r.CreateTable("samples", sample{}))

	// WHEN two rows are inserted and flushed
	require.NoError(t, r.InsertData("samples", sample{1, "a", 0.5}))
	require.NoError(t, r.InsertData("samples", sample{2, "b", 1.5}))
	require.NoError(t, r.Flush())

	// THEN both rows are in the file with their values intact
	assert.Equal(t, 2, countRows(t, path, "samples"))
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var name string
	var load float64
	require.NoError(t, db.QueryRow("SELECT Name, Load FROM samples WHERE ID = 2").Scan(&name, &load))
	assert.Equal(t, "b", name)
	assert.Equal(t, 1.5, load)
}

func TestRecorder_Rejections(t *testing.T) {
	r, _ := openRecorder(t)
	require.NoError(t, r.CreateTable("samples", sample{}))

	type nested struct{ Inner sample }
	assert.Error(t, r.CreateTable("nested", nested{}), "non-primitive field")
	assert.Error(t, r.CreateTable("scalar", 42), "not a struct")
	assert.Error(t, r.CreateTable("samples", sample{}), "duplicate table")
	assert.Error(t, r.InsertData("missing", sample{}), "undeclared table")
	assert.Error(t, r.InsertData("samples", SegmentRow{}), "wrong row type")
	assert.Equal(t, []string{"samples"}, r.ListTables())
}

func TestNew_ExistingFile_Refused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken.sqlite3")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := New(path, nil)

	assert.Error(t, err)
}

func TestRecordComparison_WritesMetricsAndSegments(t *testing.T) {
	// GIVEN a two-algorithm comparison over two processes
	workload := []*sim.Process{
		sim.NewProcess(1, "P1", 0, 3, 1, 0),
		sim.NewProcess(2, "P2", 1, 2, 2, 0),
	}
	cmp := sim.Compare(workload, []sim.Scheduler{
		sim.NewScheduler(sim.SchedulerConfig{Name: "fcfs"}),
		sim.NewScheduler(sim.SchedulerConfig{Name: "priority"}),
	}, 1)
	r, path := openRecorder(t)

	// WHEN it is recorded and the recorder closed
	require.NoError(t, RecordComparison(r, cmp))
	require.NoError(t, r.Close())

	// THEN there is one metrics row per algorithm and one row per segment
	segments := 0
	for _, name := range cmp.Order {
		segments += len(cmp.Timelines[name])
	}
	assert.Equal(t, 2, countRows(t, path, ComparisonTable))
	assert.Equal(t, segments, countRows(t, path, SegmentTable))
}

func TestSegmentRows_LabelsContextSwitch(t *testing.T) {
	tl := sim.Timeline{{PID: 1, Start: 0, End: 2}, sim.ContextSwitch(2, 3), {PID: 2, Start: 3, End: 4}}

	rows := SegmentRows("run", "FCFS", tl)

	require.Len(t, rows, 3)
	assert.Equal(t, SegmentRow{RunID: "run", Algorithm: "FCFS", Seq: 1, PID: sim.ContextSwitchPID, Label: "CS", Start: 2, End: 3}, rows[1])
	assert.Equal(t, "2", rows[2].Label)
}
