// Package core holds the extraction, ingestion and consolidation logic for shiftline.
package core

import (
	"errors"
	"sort"
	"strings"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// ErrEmptySheet means the sheet has no operator entries in either shift
// block: the line did not run (or nobody filled the template in) that day.
var ErrEmptySheet = errors.New("sheet is empty")

// Grid is a read-only view of one worksheet. Cells are addressed 1-based;
// blank and out-of-range cells come back as the empty string. The concrete
// implementation for real workbooks caches the bounded layout region in one
// pass, so repeated reads are cheap.
type Grid interface {
	Cell(row, col int) string
}

// ExtractResult is what one sheet yields: plan/fact totals combined across
// both shifts and the surviving downtime events, longest first.
type ExtractResult struct {
	Events []schema.DowntimeEvent
	Plan   float64
	Fact   float64
}

// Extractor pulls downtime events and plan/fact totals out of a line sheet
// laid out per its SheetLayout. The zero value is not usable; construct via
// NewExtractor.
type Extractor struct {
	layout      *schema.SheetLayout
	minDowntime float64
	excludes    []string
	eventLimit  int
}

// NewExtractor builds an extractor for the default template layout.
func NewExtractor(cfg *contract.Config) *Extractor {
	return &Extractor{
		layout:      schema.DefaultLayout(),
		minDowntime: cfg.MinDowntime,
		excludes:    cfg.ExcludedCategories,
		eventLimit:  cfg.EventLimit,
	}
}

// NewExtractorWithLayout builds an extractor for an arbitrary layout.
// Used by tests to run the algorithm against small synthetic grids.
func NewExtractorWithLayout(layout *schema.SheetLayout, minDowntime float64, excludes []string, eventLimit int) *Extractor {
	return &Extractor{
		layout:      layout,
		minDowntime: minDowntime,
		excludes:    excludes,
		eventLimit:  eventLimit,
	}
}

// ExtractSheet processes one sheet. It returns ErrEmptySheet when the
// operator probe rows of both shifts are blank; in that case the larger
// detail ranges are never touched. Unparsable plan/fact cells contribute
// zero and broken detail rows are skipped; neither ever fails the sheet.
func (e *Extractor) ExtractSheet(grid Grid, sheetName, sourceFile string) (*ExtractResult, error) {
	if e.sheetIsEmpty(grid) {
		return nil, ErrEmptySheet
	}

	res := &ExtractResult{}
	for _, region := range e.layout.Regions {
		res.Plan += e.sumStepped(grid, region.PlanFact, e.layout.PlanCol)
		res.Fact += e.sumStepped(grid, region.PlanFact, e.layout.FactCol)
		res.Events = append(res.Events, e.collectEvents(grid, region, sheetName, sourceFile)...)
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].DurationMin > res.Events[j].DurationMin
	})
	if len(res.Events) > e.eventLimit {
		res.Events = res.Events[:e.eventLimit]
	}
	return res, nil
}

// sheetIsEmpty checks the probe cells of every shift region. A single
// non-blank cell anywhere means the sheet is live.
func (e *Extractor) sheetIsEmpty(grid Grid) bool {
	for _, region := range e.layout.Regions {
		for _, row := range region.Probe.Rows() {
			if strings.TrimSpace(grid.Cell(row, e.layout.ProbeCol)) != "" {
				return false
			}
		}
	}
	return true
}

// sumStepped totals a column over every other row of the plan/fact block.
func (e *Extractor) sumStepped(grid Grid, rng schema.RowRange, col int) float64 {
	var total float64
	for _, row := range rng.SteppedRows(2) {
		if v, ok := contract.ParseCellNumber(grid.Cell(row, col)); ok {
			total += v
		}
	}
	return total
}

// collectEvents walks one shift's detail block and keeps the rows that
// clear the duration threshold and the category exclusion list.
func (e *Extractor) collectEvents(grid Grid, region schema.ShiftRegion, sheetName, sourceFile string) []schema.DowntimeEvent {
	var events []schema.DowntimeEvent
	for _, row := range region.Detail.Rows() {
		duration, ok := contract.ParseCellNumber(grid.Cell(row, e.layout.DurationCol))
		if !ok || duration == 0 {
			continue
		}
		if duration < e.minDowntime {
			continue
		}
		category := strings.TrimSpace(grid.Cell(row, e.layout.CategoryCol))
		if contract.CategoryExcluded(category, e.excludes) {
			continue
		}
		events = append(events, schema.NewDowntimeEvent(
			sourceFile,
			sheetName,
			region.Shift,
			duration,
			category,
			grid.Cell(row, e.layout.DescriptionCol),
			grid.Cell(row, e.layout.CommentCol),
		))
	}
	return events
}
