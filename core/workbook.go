package core

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dkrylov/shiftline/schema"
)

// cachedGrid is a Grid backed by a row-indexed cache of the layout region.
type cachedGrid struct {
	rows map[int][]string
}

// Cell implements Grid. Rows outside the cached layout region and columns
// past the stored width are blank.
func (g *cachedGrid) Cell(row, col int) string {
	cells, ok := g.rows[row]
	if !ok || col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

// NewSheetGrid reads the bounded layout region of one worksheet in a single
// streaming pass and returns a Grid over the cached rows. Only rows inside
// the layout's summary and detail ranges are kept; the unrelated block
// between the shifts is dropped on the floor.
func NewSheetGrid(f *excelize.File, sheetName string, layout *schema.SheetLayout) (Grid, error) {
	iter, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	defer func() { _ = iter.Close() }()

	cache := make(map[int][]string)
	rowIdx := 0
	for iter.Next() {
		rowIdx++
		if rowIdx > layout.MaxRow {
			break
		}
		if rowIdx < layout.MinRow || !layout.KeepRow(rowIdx) {
			continue
		}
		cells, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q row %d: %w", sheetName, rowIdx, err)
		}
		if len(cells) > layout.MaxCol {
			cells = cells[:layout.MaxCol]
		}
		cache[rowIdx] = cells
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}

	return &cachedGrid{rows: cache}, nil
}

// HasSheet reports whether the workbook contains a sheet with the name.
func HasSheet(f *excelize.File, sheetName string) bool {
	idx, err := f.GetSheetIndex(sheetName)
	return err == nil && idx >= 0
}
