package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkrylov/shiftline/core"
	"github.com/dkrylov/shiftline/internal/contract"
)

// consolidateCmd merges the day sheets of all lines into one workbook.
var consolidateCmd = &cobra.Command{
	Use:   "consolidate [workbooks...]",
	Short: "Merge the day sheets of all lines into one workbook.",
	Long: `Copy the sheet for the selected date out of every line workbook and
collect them into a single consolidated workbook, one sheet per line.

When --host-command is set, the copy is delegated to an external host
process that can preserve full formatting. If the host fails after
retries, an in-process cell-by-cell copy takes over.

Examples:
  # Consolidate yesterday's sheets next to the sources
  shiftline consolidate line1.xlsx line2.xlsx

  # Pick the date and destination explicitly
  shiftline consolidate -f line1.xlsx,line2.xlsx --day 15 --month 3 --year 2025 --dest ./out/shift.xlsx

  # Prefer a formatting-preserving host copier
  shiftline consolidate line1.xlsx line2.xlsx --host-command "excelhost copy"`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runConsolidate(); err != nil {
			contract.LogFatal("Cannot run consolidation", err)
		}
	},
}

func runConsolidate() error {
	if len(cfg.FilePaths) == 0 {
		return fmt.Errorf("no workbook paths given, pass them as arguments or via --files")
	}

	result, err := core.NewConsolidator(cfg, consoleReporter{}).Run(rootCtx)
	if err != nil {
		return err
	}
	fmt.Printf("Consolidated %d sheets into %s (%s strategy).\n", result.SheetCount, result.OutputPath, result.Strategy)
	return nil
}
