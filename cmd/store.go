package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkrylov/shiftline/internal/contract"
	"github.com/dkrylov/shiftline/internal/histstore"
	"github.com/dkrylov/shiftline/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the history store with the loaded config
	if err := histstore.Init(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on history store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of the
// full sharedSetup used by ingestion commands. This avoids date resolution and
// workbook validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the downtime history store",
	Long: `Manage the database that keeps saved downtime history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no persistence)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all saved downtime rows
  migrate - Run schema migrations

Examples:
  # Check store status
  shiftline store status

  # Wipe the history
  shiftline store clear`,
}

// storeStatusCmd shows history store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show detailed information about the downtime history store.

Displays:
- Backend type and connection status
- Total number of saved rows
- Number of distinct shift dates with data
- Time of the most recent save

Examples:
  # Check store status
  shiftline store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := histstore.Get().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		histstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the history store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved downtime history",
	Long: `Delete every downtime row from the configured backend.

Use this when:
- Starting a new reporting period from scratch
- The layout of the source workbooks changed and old rows mislead
- Testing with throwaway data

Examples:
  # Clear the SQLite store (default)
  shiftline store clear

  # Clear a MySQL store (set connection string via env variable)
  SHIFTLINE_STORE_BACKEND=mysql SHIFTLINE_STORE_DB_CONNECT="..." shiftline store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histstore.Get().Clear(); err != nil {
			contract.LogFatal("Failed to clear history store", err)
		}
		fmt.Println("History store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations on the history store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history store schema migrations",
	Long: `Apply versioned schema migrations to the history database.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll back to an empty schema.

Examples:
  # Migrate to the latest schema
  shiftline store migrate

  # Roll everything back
  shiftline store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histstore.MigrateHistory(cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate history store", err)
		}
	},
}
