package core

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// portableCopier builds the consolidated workbook in-process with excelize.
// Slower than the automation host, but it runs anywhere and needs no
// spreadsheet application on the machine. Values, cell styles, row heights
// and column widths carry over; application-level extras (charts, macros)
// do not.
type portableCopier struct{}

func (p *portableCopier) Name() schema.CopyStrategy {
	return schema.PortableStrategy
}

func (p *portableCopier) Copy(ctx context.Context, job CopyJob) (int, error) {
	dest := excelize.NewFile()
	defer func() { _ = dest.Close() }()

	copied := 0
	used := map[string]bool{}
	total := len(job.Sources)

	for i, src := range job.Sources {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		name := uniqueSheetName(contract.SanitizeSheetName(contract.LineNameFromPath(src)), used)
		ok, err := p.copyOne(src, job.SheetName, dest, name)
		if err != nil {
			return 0, fmt.Errorf("copying %s: %w", src, err)
		}
		if ok {
			used[name] = true
			copied++
		}
		if job.Progress != nil {
			job.Progress(float64(i+1) / float64(total) * 100)
		}
	}

	if copied == 0 {
		return 0, fmt.Errorf("no source workbook had sheet %q", job.SheetName)
	}

	// The workbook excelize starts with has a default sheet; drop it now
	// that real sheets exist.
	if idx, err := dest.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		_ = dest.DeleteSheet("Sheet1")
	}
	if err := dest.SaveAs(job.DestPath); err != nil {
		return 0, fmt.Errorf("saving %s: %w", job.DestPath, err)
	}
	return copied, nil
}

// copyOne copies a single sheet across workbooks. Unreadable sources and
// sources without the day sheet are skipped, not fatal: a line that did not
// run simply has no sheet to contribute.
func (p *portableCopier) copyOne(srcPath, sheetName string, dest *excelize.File, destSheet string) (bool, error) {
	src, err := excelize.OpenFile(srcPath)
	if err != nil {
		return false, nil
	}
	defer func() { _ = src.Close() }()

	if !HasSheet(src, sheetName) {
		return false, nil
	}

	if _, err := dest.NewSheet(destSheet); err != nil {
		return false, err
	}

	rows, err := src.GetRows(sheetName)
	if err != nil {
		return false, err
	}
	// Style IDs are workbook-scoped, so each distinct source style is
	// re-created once in the destination and reused from this cache.
	styleCache := map[int]int{}

	maxCols := 0
	for r, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return false, err
			}
			if val != "" {
				if err := dest.SetCellValue(destSheet, cell, val); err != nil {
					return false, err
				}
			}
			if err := copyCellStyle(src, sheetName, dest, destSheet, cell, styleCache); err != nil {
				return false, err
			}
		}
		if height, err := src.GetRowHeight(sheetName, r+1); err == nil && height > 0 {
			_ = dest.SetRowHeight(destSheet, r+1, height)
		}
	}

	for c := 1; c <= maxCols; c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			continue
		}
		if width, err := src.GetColWidth(sheetName, col); err == nil && width > 0 {
			_ = dest.SetColWidth(destSheet, col, col, width)
		}
	}
	return true, nil
}

// copyCellStyle re-creates the source cell's style in the destination
// workbook and applies it. Unstyled cells are left alone.
func copyCellStyle(src *excelize.File, srcSheet string, dest *excelize.File, destSheet, cell string, cache map[int]int) error {
	srcID, err := src.GetCellStyle(srcSheet, cell)
	if err != nil || srcID == 0 {
		return nil
	}
	destID, ok := cache[srcID]
	if !ok {
		style, err := src.GetStyle(srcID)
		if err != nil || style == nil {
			return nil
		}
		destID, err = dest.NewStyle(style)
		if err != nil {
			return err
		}
		cache[srcID] = destID
	}
	return dest.SetCellStyle(destSheet, cell, cell, destID)
}

// uniqueSheetName suffixes duplicates: two workbooks named alike must not
// collide inside one consolidated file. The base is trimmed before the
// suffix goes on, so the suffix survives the 31-rune sheet name cap even
// for maximum-length names.
func uniqueSheetName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := []rune(name)
		if maxBase := 31 - len([]rune(suffix)); len(base) > maxBase {
			base = base[:maxBase]
		}
		candidate := contract.SanitizeSheetName(string(base) + suffix)
		if !used[candidate] {
			return candidate
		}
	}
}
