// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/dkrylov/shiftline/schema"
)

// Reporter receives human-facing feedback from long-running operations.
// Implementations must be safe to call from worker goroutines; callers that
// care about execution context (a UI loop, a terminal writer) marshal the
// updates themselves.
type Reporter interface {
	// Log appends one message to the run log.
	Log(msg string)

	// Progress reports overall completion on a 0-100 scale.
	Progress(pct float64)

	// LineStatus reports a per-line milestone.
	LineStatus(status schema.LineStatus)
}

// HistoryStore persists downtime events keyed by shift date and answers
// calendar queries. Implementations never panic past their boundary; every
// failure comes back as an error.
type HistoryStore interface {
	// SaveDay replaces all rows for the date with the events currently held
	// by the records, returning how many rows were written.
	SaveDay(date schema.ShiftDate, records []schema.LineRecord) (int, error)

	// MonthStats returns total downtime minutes per day-of-month for days
	// that have at least one row in the given month/year.
	MonthStats(month, year int) ([]schema.DayStat, error)

	// DayDetails returns all rows for one exact date, longest downtime first.
	DayDetails(date schema.ShiftDate) ([]schema.HistoryRow, error)

	// AllRows returns every persisted row ordered by shift date, for export.
	AllRows() ([]schema.HistoryRow, error)

	// Clear deletes every persisted row while keeping the schema in place.
	Clear() error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// NopReporter discards all feedback. Useful for tests and MCP mode where
// stdout belongs to the protocol.
type NopReporter struct{}

// Log implements Reporter.
func (NopReporter) Log(string) {}

// Progress implements Reporter.
func (NopReporter) Progress(float64) {}

// LineStatus implements Reporter.
func (NopReporter) LineStatus(schema.LineStatus) {}

var _ Reporter = NopReporter{} // Compile-time check
