package cmd

import (
	"fmt"

	"github.com/go-drift/nestedscroll/cmd/nestedscroll/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check scenario files without running them",
		Long: `Load one or more scenario files and report the first problem in each.

Checks the version (major version v1), node names and kinds, and that every
step targets a node able to perform it.`,
		Usage: "nestedscroll validate <scenario.yaml>...",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one scenario file is required\n\nUsage: nestedscroll validate <scenario.yaml>...")
	}

	failed := 0
	for _, file := range args {
		sc, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%d steps)\n", file, len(sc.Steps))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios invalid", failed, len(args))
	}
	return nil
}
