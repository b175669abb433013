// Package parquet provides data structures and functions for exporting
// downtime history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/dkrylov/shiftline/schema"
)

// DowntimeRow represents one persisted downtime event for export.
// This struct maps to the shiftline_downtime_events database table.
type DowntimeRow struct {
	// ID is the unique identifier of the row in the history store
	ID int64 `parquet:"id,snappy"`

	// RecordedAt is when the save happened (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// ShiftDate is the shift date in YYYY-MM-DD form
	ShiftDate string `parquet:"shift_date,snappy"`

	// ShiftDay, ShiftMonth and ShiftYear decompose the date for range scans
	ShiftDay   int32 `parquet:"shift_day,snappy"`
	ShiftMonth int32 `parquet:"shift_month,snappy"`
	ShiftYear  int32 `parquet:"shift_year,snappy"`

	// LineName is the production line the event belongs to
	LineName string `parquet:"line_name,snappy"`

	// Shift is DAY, NIGHT or MANUAL
	Shift string `parquet:"shift,snappy"`

	// DurationMin is the downtime duration in minutes
	DurationMin float64 `parquet:"duration_min,snappy"`

	// Category is the downtime category recorded on the sheet
	Category string `parquet:"category,snappy"`

	// Description is the operator's description (nullable)
	Description *string `parquet:"description,optional,snappy"`

	// Comment is the operator's comment (nullable)
	Comment *string `parquet:"comment,optional,snappy"`
}

// WriteDowntimeRowsParquet writes a slice of DowntimeRow structs to a Parquet file.
func WriteDowntimeRowsParquet(data []DowntimeRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DowntimeRow struct tags
	writer := parquet.NewGenericWriter[DowntimeRow](file)

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertHistoryRows converts schema.HistoryRow to DowntimeRow for Parquet export.
func ConvertHistoryRows(rows []schema.HistoryRow) []DowntimeRow {
	result := make([]DowntimeRow, len(rows))
	for i, row := range rows {
		result[i] = DowntimeRow{
			ID:          row.ID,
			RecordedAt:  row.RecordedAt,
			ShiftDate:   row.ShiftDate,
			ShiftDay:    int32(row.ShiftDay),
			ShiftMonth:  int32(row.ShiftMonth),
			ShiftYear:   int32(row.ShiftYear),
			LineName:    row.LineName,
			Shift:       row.Shift,
			DurationMin: row.DurationMin,
			Category:    row.Category,
			Description: optionalString(row.Description),
			Comment:     optionalString(row.Comment),
		}
	}
	return result
}

// ConvertLineRecords flattens freshly extracted records into DowntimeRow
// values for Parquet export, before any of them hit the history store.
func ConvertLineRecords(records []schema.LineRecord, date schema.ShiftDate) []DowntimeRow {
	now := time.Now().UTC()
	var result []DowntimeRow
	for _, rec := range records {
		for _, ev := range rec.Events {
			result = append(result, DowntimeRow{
				RecordedAt:  now,
				ShiftDate:   date.ISO(),
				ShiftDay:    int32(date.Day),
				ShiftMonth:  int32(date.Month),
				ShiftYear:   int32(date.Year),
				LineName:    rec.LineName,
				Shift:       string(ev.Shift),
				DurationMin: ev.DurationMin,
				Category:    ev.Category,
				Description: optionalString(ev.Description),
				Comment:     optionalString(ev.Comment),
			})
		}
	}
	return result
}

// optionalString maps an empty string to a Parquet null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
