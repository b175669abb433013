// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIngest prints ingestion results using the configured output format.
func (ow *OutWriter) WriteIngest(records []schema.LineRecord, cfg *contract.Config, duration time.Duration) error {
	return WriteIngestResults(records, cfg, duration)
}

// WriteMonthStats prints the monthly downtime calendar using the configured output format.
func (ow *OutWriter) WriteMonthStats(stats []schema.DayStat, month, year int, cfg *contract.Config) error {
	return WriteMonthStatsResults(stats, month, year, cfg)
}

// WriteDayDetails prints the per-day downtime breakdown using the configured output format.
func (ow *OutWriter) WriteDayDetails(rows []schema.HistoryRow, date schema.ShiftDate, cfg *contract.Config) error {
	return WriteDayDetailsResults(rows, date, cfg)
}

// WriteHistoryExport dumps the full history in a machine-readable format.
func (ow *OutWriter) WriteHistoryExport(rows []schema.HistoryRow, cfg *contract.Config) error {
	return WriteHistoryExportResults(rows, cfg)
}
