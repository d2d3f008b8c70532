// main holds the entry logic for the keydriver CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quantfold/keydriver/cmd"
	"github.com/quantfold/keydriver/internal/iocache"
)

// main is the entry point for the keydriver analyzer.
func main() {
	defer iocache.CloseStores()

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "Warn profiling shutdown: %v\n", profErr)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
