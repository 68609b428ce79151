// main holds the entry logic for the buildpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/buildpulse/cmd"
	"github.com/huangsam/buildpulse/internal/history"
)

// main is the entry point for the buildpulse analyzer.
func main() {
	err := cmd.Execute()
	history.CloseStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
