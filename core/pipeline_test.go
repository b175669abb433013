package core

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// testReporter collects every callback for later assertions.
type testReporter struct {
	mu       sync.Mutex
	logs     []string
	progress []float64
	statuses []schema.LineStatus
}

func (r *testReporter) Log(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, msg)
}

func (r *testReporter) Progress(pct float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, pct)
}

func (r *testReporter) LineStatus(st schema.LineStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, st)
}

// terminalStates returns the last reported state per line.
func (r *testReporter) terminalStates() map[string]schema.LineStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := map[string]schema.LineStatus{}
	for _, st := range r.statuses {
		last[st.LineName] = st
	}
	return last
}

// writeWorkbook creates an xlsx with a single named sheet and the given
// cells, addressed as (row, col) pairs against the production layout.
func writeWorkbook(t *testing.T, path, sheetName string, cells map[[2]int]any) {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(sheetName)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))

	for rc, val := range cells {
		cell, err := excelize.CoordinatesToCellName(rc[1], rc[0])
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheetName, cell, val))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

// liveSheetCells gives a sheet a probe entry, one plan/fact pair and one
// downtime event against the default layout offsets.
func liveSheetCells(duration float64, category string) map[[2]int]any {
	return map[[2]int]any{
		{37, 1}:  "Ivanov",
		{21, 10}: 100,
		{21, 11}: 95,
		{47, 11}: duration,
		{47, 8}:  category,
		{47, 6}:  "jammed conveyor",
		{47, 12}: "fixed on the spot",
	}
}

func ingestConfig(paths []string) *contract.Config {
	return &contract.Config{
		FilePaths:   paths,
		Date:        schema.ShiftDate{Day: 15, Month: 3, Year: 2025},
		MinDowntime: 10,
		Workers:     4,
		EventLimit:  2,
	}
}

func TestIngestionRun(t *testing.T) {
	dir := t.TempDir()

	good1 := filepath.Join(dir, "lineA.xlsx")
	writeWorkbook(t, good1, "15", liveSheetCells(30, "Mechanical"))

	good2 := filepath.Join(dir, "lineB.xlsx")
	writeWorkbook(t, good2, "15", liveSheetCells(45, "Electrical"))

	wrongSheet := filepath.Join(dir, "lineC.xlsx")
	writeWorkbook(t, wrongSheet, "16", liveSheetCells(30, "Mechanical"))

	empty := filepath.Join(dir, "lineD.xlsx")
	writeWorkbook(t, empty, "15", map[[2]int]any{{21, 10}: 100})

	missing := filepath.Join(dir, "lineE.xlsx")

	reporter := &testReporter{}
	cfg := ingestConfig([]string{good1, good2, wrongSheet, empty, missing})

	records := NewIngestion(cfg, reporter).Run(context.Background())
	schema.SortRecordsByLine(records)

	require.Len(t, records, 2)
	assert.Equal(t, "lineA", records[0].LineName)
	assert.Equal(t, 100.0, records[0].Plan)
	assert.Equal(t, 95.0, records[0].Fact)
	require.Len(t, records[0].Events, 1)
	assert.Equal(t, 30.0, records[0].Events[0].DurationMin)
	assert.Equal(t, "Jammed conveyor", records[0].Events[0].Description)
	assert.Equal(t, "lineB", records[1].LineName)

	last := reporter.terminalStates()
	require.Len(t, last, 5, "every input path reports a terminal status")
	assert.Equal(t, schema.LineDone, last["lineA"].State)
	assert.Equal(t, schema.LineDone, last["lineB"].State)
	assert.Equal(t, schema.LineError, last["lineC"].State)
	assert.Contains(t, last["lineC"].Message, "sheet 15 not found")
	assert.Equal(t, schema.LineError, last["lineD"].State)
	assert.Contains(t, last["lineD"].Message, "empty")
	assert.Equal(t, schema.LineError, last["lineE"].State)
	assert.Contains(t, last["lineE"].Message, "file not found")
	for _, st := range last {
		assert.Equal(t, 100, st.Progress)
	}

	require.NotEmpty(t, reporter.progress)
	assert.Equal(t, 100.0, reporter.progress[len(reporter.progress)-1])
}

func TestIngestionThresholdFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineA.xlsx")
	writeWorkbook(t, path, "15", liveSheetCells(8, "Mechanical"))

	cfg := ingestConfig([]string{path})
	records := NewIngestion(cfg, nil).Run(context.Background())

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Events, "events under the threshold never materialize")
}

func TestIngestionCanceled(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"lineA.xlsx", "lineB.xlsx"} {
		p := filepath.Join(dir, name)
		writeWorkbook(t, p, "15", liveSheetCells(30, "Mechanical"))
		paths = append(paths, p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reporter := &testReporter{}
	records := NewIngestion(ingestConfig(paths), reporter).Run(ctx)

	assert.Empty(t, records)
	last := reporter.terminalStates()
	require.Len(t, last, 2)
	for _, st := range last {
		assert.Equal(t, schema.LineError, st.State)
		assert.Contains(t, st.Message, "canceled")
		assert.Equal(t, 100, st.Progress)
	}
}

func TestIngestionNoFiles(t *testing.T) {
	records := NewIngestion(ingestConfig(nil), &testReporter{}).Run(context.Background())
	assert.Empty(t, records)
}
