// Package schema has configs, models and shared constants for all parts of shiftline.
package schema

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// DefaultCategory is used when a downtime row carries no category cell.
const DefaultCategory = "unspecified"

// DowntimeEvent represents one recorded stoppage extracted from a line sheet.
// Events are identified by ID so that later manual edits can address a single
// event even when two events share duration and description.
type DowntimeEvent struct {
	ID          string  `json:"id"`          // Stable identifier assigned at extraction
	SourceFile  string  `json:"source_file"` // Base name of the workbook the event came from
	SheetName   string  `json:"sheet_name"`  // Day-of-month sheet the event came from
	Shift       Shift   `json:"shift"`       // DAY, NIGHT or MANUAL
	DurationMin float64 `json:"duration_min"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Comment     string  `json:"comment,omitempty"`
}

// NewDowntimeEvent builds an event with a fresh ID and normalized text fields.
func NewDowntimeEvent(sourceFile, sheetName string, shift Shift, durationMin float64, category, description, comment string) DowntimeEvent {
	cat := strings.TrimSpace(category)
	if cat == "" {
		cat = DefaultCategory
	}
	return DowntimeEvent{
		ID:          uuid.NewString(),
		SourceFile:  sourceFile,
		SheetName:   sheetName,
		Shift:       shift,
		DurationMin: durationMin,
		Category:    cat,
		Description: CleanText(description),
		Comment:     CleanText(comment),
	}
}

// CleanText collapses all runs of whitespace to single spaces and upper-cases
// the first rune. Used for descriptions and comments coming out of cells.
func CleanText(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	joined := strings.Join(fields, " ")
	runes := []rune(joined)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// LineRecord is the in-memory result of parsing one line sheet. It is mutable
// until exported or persisted; only its events ever reach durable storage.
type LineRecord struct {
	SourcePath string          `json:"source_path"` // Absolute path to the source workbook
	SheetName  string          `json:"sheet_name"`  // Day-of-month used as the sheet key
	LineName   string          `json:"line_name"`   // Workbook base name without extension
	Plan       float64         `json:"plan"`        // Planned output across both shifts
	Fact       float64         `json:"fact"`        // Actual output across both shifts
	Events     []DowntimeEvent `json:"events"`      // Longest-first, truncated at extraction
}

// SortEvents restores the longest-first ordering after manual edits.
func (lr *LineRecord) SortEvents() {
	sort.SliceStable(lr.Events, func(i, j int) bool {
		return lr.Events[i].DurationMin > lr.Events[j].DurationMin
	})
}

// SortRecordsByLine orders records by line name for stable presentation.
// The ingestion pipeline itself returns records in completion order.
func SortRecordsByLine(records []LineRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].LineName < records[j].LineName
	})
}
