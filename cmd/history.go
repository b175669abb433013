package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/internal/histstore"
	"github.com/dkrylov/shiftline/internal/outwriter"
)

// historyCmd is the parent for all history query commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query saved downtime history.",
	Long: `Query the downtime history saved by 'ingest --save-history'.

History is keyed by shift date, so re-ingesting a day replaces its rows.
Use the subcommands to look at a whole month, a single day, or to export
everything for analysis elsewhere.`,
}

// historyMonthCmd shows the per-day downtime calendar for one month.
var historyMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show total downtime per day for one month.",
	Long: `Show a per-day downtime calendar for the selected month.

Days with no saved data are omitted rather than shown as zero, so a
missing day means "never ingested", not "no downtime".

Examples:
  # Last saved month view (defaults to yesterday's month)
  shiftline history month

  # A specific month
  shiftline history month --month march --year 2025

  # Machine-readable
  shiftline history month --month 3 --year 2025 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryMonth(); err != nil {
			contract.LogFatal("Cannot query month history", err)
		}
	},
}

// historyDayCmd shows every saved event of a single day.
var historyDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show every downtime event saved for one day.",
	Long: `Show the full downtime breakdown of a single shift date, ordered by
duration, longest first.

Examples:
  # Yesterday's saved events
  shiftline history day

  # A specific date
  shiftline history day --day 15 --month 3 --year 2025`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryDay(); err != nil {
			contract.LogFatal("Cannot query day history", err)
		}
	},
}

// historyExportCmd dumps the whole history store.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full downtime history.",
	Long: `Dump every saved downtime row in a machine-readable format.

Defaults to Parquet for analytics tooling; CSV and JSON are available
via --output.

Examples:
  # Parquet dump for notebooks and DuckDB
  shiftline history export --output parquet --output-file downtime.parquet

  # CSV for spreadsheets
  shiftline history export --output csv --output-file downtime.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runHistoryExport(); err != nil {
			contract.LogFatal("Cannot export history", err)
		}
	},
}

func runHistoryMonth() error {
	stats, err := histstore.Get().MonthStats(cfg.Date.Month, cfg.Date.Year)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMonthStats(stats, cfg.Date.Month, cfg.Date.Year, cfg)
}

func runHistoryDay() error {
	rows, err := histstore.Get().DayDetails(cfg.Date)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDayDetails(rows, cfg.Date, cfg)
}

func runHistoryExport() error {
	rows, err := histstore.Get().AllRows()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteHistoryExport(rows, cfg)
}
