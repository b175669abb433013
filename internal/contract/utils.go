package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Severity label constants for daily downtime totals.
const (
	HighValue     = "High"     // more than three hours of downtime
	ModerateValue = "Moderate" // between one and three hours
	LowValue      = "Low"      // under an hour
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgRed, color.Bold) // highColor represents standard danger.
	ModerateColor = color.New(color.FgYellow)          // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgGreen)           // lowColor represents a healthy day.
)

// GetPlainSeverity returns a plain text label for a day's total downtime
// minutes. The thresholds mirror the calendar coloring: under an hour is
// fine, up to three hours needs attention, beyond that is serious.
func GetPlainSeverity(totalMin float64) string {
	switch {
	case totalMin > 180:
		return HighValue
	case totalMin >= 60:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorSeverity returns a colored severity label for console output.
func GetColorSeverity(totalMin float64) string {
	text := GetPlainSeverity(totalMin)
	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// sheetNameReplacer strips the characters Excel forbids in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	`\`, "_", `/`, "_", `*`, "_", `?`, "_", `:`, "_", `[`, "_", `]`, "_",
)

// SanitizeSheetName makes a line name safe to use as a worksheet name:
// at most 31 characters, forbidden characters replaced with underscores.
func SanitizeSheetName(name string) string {
	runes := []rune(name)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return sheetNameReplacer.Replace(string(runes))
}

// ParseCellNumber parses a numeric cell that may carry a comma decimal
// separator and stray spaces ("1 234,5"). The second return is false when
// the cell holds no parsable number; callers treat that as zero or skip.
func ParseCellNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LineNameFromPath derives the line name from a workbook path: the base
// name without its extension.
func LineNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CategoryExcluded reports whether a category matches any exclusion term
// by case-insensitive substring containment.
func CategoryExcluded(category string, excludes []string) bool {
	lower := strings.ToLower(category)
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(ex)) {
			return true
		}
	}
	return false
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for history storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftline_history.db"
	}
	return filepath.Join(homeDir, ".shiftline_history.db")
}
