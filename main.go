// main is the entry point for the shiftline CLI.
package main

import (
	"github.com/dkrylov/shiftline/cmd"
	"github.com/dkrylov/shiftline/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
