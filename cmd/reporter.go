package cmd

import (
	"fmt"
	"os"

	"github.com/dkrylov/shiftline/schema"
)

// consoleReporter prints pipeline progress for interactive runs.
// Line errors go to stderr so they survive output redirection.
type consoleReporter struct{}

func (consoleReporter) Log(msg string) {
	fmt.Println(msg)
}

func (consoleReporter) Progress(_ float64) {}

func (consoleReporter) LineStatus(status schema.LineStatus) {
	if status.State == schema.LineError {
		fmt.Fprintf(os.Stderr, "! %s\n", status.Message)
	}
}
