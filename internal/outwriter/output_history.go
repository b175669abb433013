package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/internal/parquet"
	"github.com/dkrylov/shiftline/schema"
)

// WriteMonthStatsResults outputs the monthly calendar, dispatching based on the output format configured.
func WriteMonthStatsResults(stats []schema.DayStat, month, year int, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"day", "total_min"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, st := range stats {
					if err := cw.Write([]string{strconv.Itoa(st.Day), fmtFloat(st.TotalMin)}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthStatsTable(w, stats, month, year, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeMonthStatsTable generates and writes the human-readable calendar table.
func writeMonthStatsTable(w io.Writer, stats []schema.DayStat, month, year int, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Downtime Min", "Severity"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	total := 0.0
	var data [][]string
	for _, st := range stats {
		severity := contract.GetPlainSeverity(st.TotalMin)
		if cfg.UseColors {
			severity = contract.GetColorSeverity(st.TotalMin)
		}
		data = append(data, []string{
			strconv.Itoa(st.Day),
			fmtFloat(st.TotalMin),
			severity,
		})
		total += st.TotalMin
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d days with data in %02d.%d (total: %s min). Days without saves are not shown.\n",
		len(stats), month, year, fmtFloat(total)); err != nil {
		return err
	}
	return nil
}

// WriteDayDetailsResults outputs one day's rows, dispatching based on the output format configured.
func WriteDayDetailsResults(rows []schema.HistoryRow, date schema.ShiftDate, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryRowsCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDayDetailsTable(w, rows, date, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeDayDetailsTable generates and writes the human-readable per-day table.
func writeDayDetailsTable(w io.Writer, rows []schema.HistoryRow, date schema.ShiftDate, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Line", "Shift", "Min", "Category", "Description"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	descWidth := getMaxDescriptionWidth(cfg)
	total := 0.0
	var data [][]string
	for _, r := range rows {
		desc := r.Description
		if r.Comment != "" {
			desc = fmt.Sprintf("%s | %s", desc, r.Comment)
		}
		data = append(data, []string{
			r.LineName,
			r.Shift,
			fmtFloat(r.DurationMin),
			r.Category,
			truncateText(desc, descWidth),
		})
		total += r.DurationMin
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	severity := contract.GetPlainSeverity(total)
	if cfg.UseColors {
		severity = contract.GetColorSeverity(total)
	}
	if _, err := fmt.Fprintf(w, "%s: %d events, %s min total (%s)\n", date.ISO(), len(rows), fmtFloat(total), severity); err != nil {
		return err
	}
	return nil
}

// WriteHistoryExportResults dumps every persisted row in a machine-readable format.
// Text output is not meaningful for a full export, so it defaults to CSV.
func WriteHistoryExportResults(rows []schema.HistoryRow, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.ParquetOut:
		outputPath := cfg.OutputFile
		if outputPath == "" {
			outputPath = "downtime_history.parquet"
		}
		if err := parquet.WriteDowntimeRowsParquet(parquet.ConvertHistoryRows(rows), outputPath); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %d rows to %s\n", len(rows), outputPath)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryRowsCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	}
}

// writeHistoryRowsCSV writes history rows with all persisted columns.
func writeHistoryRowsCSV(w io.Writer, rows []schema.HistoryRow, fmtFloat func(float64) string) error {
	header := []string{"shift_date", "line", "shift", "duration_min", "category", "description", "comment", "recorded_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			record := []string{
				r.ShiftDate,
				r.LineName,
				r.Shift,
				fmtFloat(r.DurationMin),
				r.Category,
				r.Description,
				r.Comment,
				r.RecordedAt.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
