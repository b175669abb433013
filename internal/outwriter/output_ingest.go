package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/internal/parquet"
	"github.com/dkrylov/shiftline/schema"
)

// WriteIngestResults outputs the ingestion results, dispatching based on the output format configured.
func WriteIngestResults(records []schema.LineRecord, cfg *contract.Config, duration time.Duration) error {
	sorted := make([]schema.LineRecord, len(records))
	copy(sorted, records)
	schema.SortRecordsByLine(sorted)

	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, sorted)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIngestCSV(w, sorted, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		outputPath := cfg.OutputFile
		if outputPath == "" {
			outputPath = fmt.Sprintf("downtime_%s.parquet", cfg.Date.ISO())
		}
		data := parquet.ConvertLineRecords(sorted, cfg.Date)
		if err := parquet.WriteDowntimeRowsParquet(data, outputPath); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %d events to %s\n", len(data), outputPath)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIngestTable(w, sorted, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeIngestTable generates and writes the human-readable per-line table.
func writeIngestTable(w io.Writer, records []schema.LineRecord, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Line", "Plan", "Fact", "Events", "Downtime Min", "Severity"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	totalEvents := 0
	var data [][]string
	for _, rec := range records {
		totalMin := 0.0
		for _, ev := range rec.Events {
			totalMin += ev.DurationMin
		}
		totalEvents += len(rec.Events)

		severity := contract.GetPlainSeverity(totalMin)
		if cfg.UseColors {
			severity = contract.GetColorSeverity(totalMin)
		}
		data = append(data, []string{
			rec.LineName,
			fmtFloat(rec.Plan),
			fmtFloat(rec.Fact),
			strconv.Itoa(len(rec.Events)),
			fmtFloat(totalMin),
			severity,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Processed %d lines for %s (%d events kept)\n", len(records), cfg.Date.ISO(), totalEvents); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ingestion completed in %v with %d workers. History backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeIngestCSV writes one row per kept event, with the line figures repeated.
func writeIngestCSV(w io.Writer, records []schema.LineRecord, fmtFloat func(float64) string) error {
	header := []string{"line", "plan", "fact", "shift", "duration_min", "category", "description", "comment"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range records {
			for _, ev := range rec.Events {
				record := []string{
					rec.LineName,
					fmtFloat(rec.Plan),
					fmtFloat(rec.Fact),
					string(ev.Shift),
					fmtFloat(ev.DurationMin),
					ev.Category,
					ev.Description,
					ev.Comment,
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}
