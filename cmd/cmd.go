// Package cmd defines the command-line interface for shiftline.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyMonthCmd)
	historyCmd.AddCommand(historyDayCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringSliceP("files", "f", nil, "Shift workbook paths to process")
	rootCmd.PersistentFlags().Int("day", 0, "Day of month of the shift (defaults to yesterday)")
	rootCmd.PersistentFlags().String("month", "", "Month of the shift, by number or name (defaults to yesterday)")
	rootCmd.PersistentFlags().Int("year", 0, "Year of the shift (defaults to yesterday)")
	rootCmd.PersistentFlags().Int("min-downtime", contract.DefaultMinDowntime, "Minimum downtime in minutes for an event to be kept")
	rootCmd.PersistentFlags().String("exclude", "Lunch, Break", "Comma-separated list of category substrings to ignore")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("max-events", schema.DefaultEventLimit, "Number of top events to keep per line")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("dest", "", "Destination path for the consolidated workbook")
	rootCmd.PersistentFlags().String("host-command", "", "External command for host-assisted workbook copying")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of ingestCmd to Viper
	ingestCmd.Flags().Bool("save-history", false, "Save extracted downtime to the history store")
	ingestCmd.Flags().StringSlice("add-event", nil, "Append a manual event: 'line|minutes|category|description[|comment]' (repeatable)")
	ingestCmd.Flags().Bool("summary", false, "Print a plain-text downtime summary after the table")
	ingestCmd.Flags().Bool("consolidate", false, "Also consolidate the processed workbooks into one file")
	if err := viper.BindPFlags(ingestCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ingest flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
