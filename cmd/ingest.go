package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkrylov/shiftline/core"
	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/internal/histstore"
	"github.com/dkrylov/shiftline/internal/outwriter"
	"github.com/dkrylov/shiftline/schema"
)

// ingestCmd extracts downtime from the shift workbooks of a single date.
var ingestCmd = &cobra.Command{
	Use:   "ingest [workbooks...]",
	Short: "Extract downtime events from shift workbooks.",
	Long: `Read the daily shift workbooks of every production line and extract
downtime events alongside plan/fact output totals.

Each workbook must contain a sheet named after the day of month being
ingested. Lines whose sheet is empty or missing are reported and skipped.

Examples:
  # Process yesterday's shift for two lines
  shiftline ingest line1.xlsx line2.xlsx

  # Process a specific date and keep only long stops
  shiftline ingest --files line1.xlsx,line2.xlsx --day 15 --month march --year 2025 --min-downtime 30

  # Ignore planned stop categories
  shiftline ingest line1.xlsx --exclude "Break,Cleaning"

  # Save results to the history store and print a shareable summary
  shiftline ingest line1.xlsx line2.xlsx --save-history --summary

  # Record a stop the operator forgot to write down
  shiftline ingest line1.xlsx --add-event "line1|25|Electrical|Sensor fault" --save-history

  # Ingest and produce a single consolidated workbook
  shiftline ingest line1.xlsx line2.xlsx --consolidate --dest ./out/shift.xlsx`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runIngest(); err != nil {
			contract.LogFatal("Cannot run ingestion", err)
		}
	},
}

// addManualEvent parses one --add-event entry of the form
// "line|minutes|category|description[|comment]" and appends it to the
// matching line record.
func addManualEvent(records []schema.LineRecord, entry string) error {
	parts := strings.Split(entry, "|")
	if len(parts) < 4 {
		return fmt.Errorf("invalid --add-event %q: want line|minutes|category|description[|comment]", entry)
	}
	minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || minutes <= 0 {
		return fmt.Errorf("invalid --add-event duration %q: want positive minutes", parts[1])
	}
	comment := ""
	if len(parts) > 4 {
		comment = parts[4]
	}
	if _, err := core.AddManualEvent(records, strings.TrimSpace(parts[0]), minutes, parts[2], parts[3], comment); err != nil {
		return fmt.Errorf("adding event to %q: %w", parts[0], err)
	}
	return nil
}

func runIngest() error {
	if len(cfg.FilePaths) == 0 {
		return fmt.Errorf("no workbook paths given, pass them as arguments or via --files")
	}

	start := time.Now()
	records := core.NewIngestion(cfg, consoleReporter{}).Run(rootCtx)
	if err := rootCtx.Err(); err != nil {
		return err
	}
	schema.SortRecordsByLine(records)

	for _, entry := range viper.GetStringSlice("add-event") {
		if err := addManualEvent(records, entry); err != nil {
			return err
		}
	}

	writer := outwriter.NewOutWriter()
	if err := writer.WriteIngest(records, cfg, time.Since(start)); err != nil {
		return err
	}

	if viper.GetBool("summary") {
		fmt.Println()
		fmt.Print(core.BuildSummaryText(records, cfg.Date, cfg.Precision))
	}

	if viper.GetBool("save-history") {
		saved, err := histstore.Get().SaveDay(cfg.Date, records)
		if err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Printf("Saved %d events for %s to the %s history store.\n", saved, cfg.Date.ISO(), cfg.StoreBackend)
	}

	if viper.GetBool("consolidate") {
		if len(records) == 0 {
			fmt.Println("No valid lines to consolidate.")
			return nil
		}
		// Consolidate only the lines that produced a record; sources whose
		// sheets were missing or empty have nothing to contribute.
		sources := make([]string, 0, len(records))
		for _, rec := range records {
			sources = append(sources, rec.SourcePath)
		}
		result, err := core.NewConsolidator(cfg, consoleReporter{}).RunSources(rootCtx, sources)
		if err != nil {
			return fmt.Errorf("consolidation failed: %w", err)
		}
		fmt.Printf("Consolidated %d sheets into %s (%s strategy).\n", result.SheetCount, result.OutputPath, result.Strategy)
	}

	return nil
}
