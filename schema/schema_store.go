package schema

import (
	"fmt"
	"time"
)

// HistoryRow represents a persisted downtime event, keyed by shift date.
// The decomposed day/month/year columns exist for indexed range queries.
type HistoryRow struct {
	ID          int64     `json:"id"`
	RecordedAt  time.Time `json:"recorded_at"` // when the save happened
	ShiftDate   string    `json:"shift_date"`  // YYYY-MM-DD
	ShiftDay    int       `json:"shift_day"`
	ShiftMonth  int       `json:"shift_month"`
	ShiftYear   int       `json:"shift_year"`
	LineName    string    `json:"line_name"`
	Shift       string    `json:"shift"`
	DurationMin float64   `json:"duration_min"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Comment     string    `json:"comment,omitempty"`
}

// DayStat is one entry of a monthly aggregate: total downtime minutes for a
// day that has at least one persisted row. Days without rows are absent,
// which is distinct from a present zero.
type DayStat struct {
	Day      int     `json:"day"`
	TotalMin float64 `json:"total_min"`
}

// StoreStatus represents the status of the history store.
type StoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRows     int       `json:"total_rows"`
	DistinctDates int       `json:"distinct_dates"`
	LastSaveTime  time.Time `json:"last_save_time"`
}

// ShiftDate is a calendar date addressed the way the store keys it.
type ShiftDate struct {
	Day   int
	Month int
	Year  int
}

// ISO renders the date as YYYY-MM-DD, the store's primary key format.
func (d ShiftDate) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether the date names a real calendar day.
func (d ShiftDate) Valid() bool {
	if d.Year < 2000 || d.Year > 2100 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && int(t.Month()) == d.Month
}
