// Command nestedscroll replays nested scroll scenarios and prints the
// resulting protocol trace.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/nestedscroll/cmd/nestedscroll/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
