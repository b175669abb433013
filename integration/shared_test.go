//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"
)

var (
	// sharedShiftlinePath holds the path to a shared shiftline binary built once for all tests.
	sharedShiftlinePath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getShiftlineBinary returns the path to the shiftline binary, building it once if needed.
func getShiftlineBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "shiftline-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		shiftlinePath := filepath.Join(tempDir, "shiftline")
		buildCmd := exec.Command("go", "build", "-o", shiftlinePath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build shiftline: %v", err))
		}

		sharedShiftlinePath = shiftlinePath
	})

	return sharedShiftlinePath
}

// runShiftlineCommand runs the shared binary with the given args from a work dir.
func runShiftlineCommand(t *testing.T, dir string, args ...string) error {
	shiftlinePath := getShiftlineBinary()
	cmd := exec.Command(shiftlinePath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeShiftWorkbook creates a minimal line workbook with one day sheet:
// a filled operator probe cell, plan/fact totals, and one downtime event.
func writeShiftWorkbook(t *testing.T, path, sheetName string) {
	t.Helper()

	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	set := func(row, col int, value any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}

	set(37, 1, "Operator")   // day shift probe
	set(21, 10, 1000)        // plan
	set(21, 11, 950)         // fact
	set(47, 11, 45)          // downtime minutes
	set(47, 8, "Mechanical") // category
	set(47, 6, "Conveyor jam")

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}
}
