package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// Ingestion runs the sheet extractor concurrently across the configured
// source workbooks. Results are collected in completion order; callers that
// need a stable order sort by line name afterwards.
type Ingestion struct {
	cfg      *contract.Config
	reporter contract.Reporter
}

// NewIngestion builds an ingestion run over cfg, reporting through reporter.
func NewIngestion(cfg *contract.Config, reporter contract.Reporter) *Ingestion {
	if reporter == nil {
		reporter = contract.NopReporter{}
	}
	return &Ingestion{cfg: cfg, reporter: reporter}
}

// Run processes all configured files with a fixed-size worker pool and
// returns the records of every successfully parsed sheet. Cancellation via
// ctx is cooperative: work not yet dispatched is skipped, in-flight files
// run to completion. Every input path receives exactly one terminal line
// status, so no line is ever left looking "in progress".
func (ing *Ingestion) Run(ctx context.Context) []schema.LineRecord {
	paths := ing.cfg.FilePaths
	total := len(paths)
	if total == 0 {
		ing.reporter.Progress(0)
		return nil
	}

	sheetName := strconv.Itoa(ing.cfg.Date.Day)
	extractor := NewExtractor(ing.cfg)

	for _, p := range paths {
		ing.reporter.LineStatus(schema.LineStatus{
			LineName: contract.LineNameFromPath(p),
			Progress: 0,
			State:    schema.LineWaiting,
			Message:  "waiting",
		})
	}

	pathCh := make(chan string, total)

	// One lock guards the shared result slice and the processed counter;
	// everything else is worker-local.
	var mu sync.Mutex
	var records []schema.LineRecord
	processed := 0

	var wg sync.WaitGroup
	for range ing.cfg.Workers {
		wg.Go(func() {
			for path := range pathCh {
				record := ing.processOne(ctx, extractor, path, sheetName)

				mu.Lock()
				if record != nil {
					records = append(records, *record)
				}
				processed++
				ing.reporter.Progress(float64(processed) / float64(total) * 100)
				mu.Unlock()
			}
		})
	}

	for _, p := range paths {
		pathCh <- p
	}
	close(pathCh)
	wg.Wait()

	return records
}

// processOne handles a single workbook end to end. It never returns an
// error: every failure mode collapses into a terminal error status for that
// line, leaving the rest of the run untouched.
func (ing *Ingestion) processOne(ctx context.Context, extractor *Extractor, path, sheetName string) *schema.LineRecord {
	lineName := contract.LineNameFromPath(path)

	update := func(progress int, state schema.LineState, msg string) {
		ing.reporter.LineStatus(schema.LineStatus{
			LineName: lineName,
			Progress: progress,
			State:    state,
			Message:  fmt.Sprintf("%s: %s", lineName, msg),
		})
	}

	// Checked before any work: cancellation set while this path sat in the
	// queue means it is skipped, but it still gets its terminal status.
	if ctx.Err() != nil {
		update(100, schema.LineError, "canceled")
		return nil
	}

	update(10, schema.LineProcessing, "opening workbook")
	ing.reporter.Log(fmt.Sprintf("Checking %s...", lineName))

	if _, err := os.Stat(path); err != nil {
		update(100, schema.LineError, "file not found")
		ing.reporter.Log("  error: file not found")
		return nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		update(100, schema.LineError, fmt.Sprintf("cannot read workbook: %v", err))
		ing.reporter.Log(fmt.Sprintf("  error: %v", err))
		return nil
	}
	defer func() { _ = f.Close() }()

	// Opening a large workbook is the expensive blocking step; re-check
	// cancellation on the far side of it.
	if ctx.Err() != nil {
		update(100, schema.LineError, "canceled")
		return nil
	}

	if !HasSheet(f, sheetName) {
		update(100, schema.LineError, fmt.Sprintf("sheet %s not found", sheetName))
		ing.reporter.Log(fmt.Sprintf("  skipped: sheet %s not found", sheetName))
		return nil
	}

	update(30, schema.LineProcessing, "reading data")
	grid, err := NewSheetGrid(f, sheetName, schema.DefaultLayout())
	if err != nil {
		update(100, schema.LineError, fmt.Sprintf("read failed: %v", err))
		ing.reporter.Log(fmt.Sprintf("  error: %v", err))
		return nil
	}

	update(70, schema.LineProcessing, "analyzing downtime")
	result, err := extractor.ExtractSheet(grid, sheetName, filepath.Base(path))
	if err != nil {
		if errors.Is(err, ErrEmptySheet) {
			update(100, schema.LineError, "sheet is empty")
			ing.reporter.Log("  skipped: sheet is empty")
		} else {
			update(100, schema.LineError, fmt.Sprintf("extraction failed: %v", err))
			ing.reporter.Log(fmt.Sprintf("  error: %v", err))
		}
		return nil
	}

	update(100, schema.LineDone, "done")
	ing.reporter.Log(fmt.Sprintf("  OK. Fact: %g", result.Fact))

	return &schema.LineRecord{
		SourcePath: path,
		SheetName:  sheetName,
		LineName:   lineName,
		Plan:       result.Plan,
		Fact:       result.Fact,
		Events:     result.Events,
	}
}
