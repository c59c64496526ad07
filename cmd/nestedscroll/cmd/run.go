package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/nestedscroll/cmd/nestedscroll/internal/replay"
	"github.com/go-drift/nestedscroll/cmd/nestedscroll/internal/scenario"
	"github.com/go-drift/nestedscroll/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scenario and print the trace",
		Long: `Load a scenario file, build its view tree and replay its steps.

Every protocol callback is printed as it happens, followed by the final
scroll offset of each scrollable. An expect step that does not hold stops
the replay with an error.

Flags:
  --verbose   Include error kinds and stack traces in diagnostics`,
		Usage: "nestedscroll run <scenario.yaml> [--verbose]",
		Run:   runRun,
	})
}

type runOptions struct {
	verbose bool
}

func runRun(args []string) error {
	files, opts := parseRunArgs(args)
	if len(files) != 1 {
		return fmt.Errorf("exactly one scenario file is required\n\nUsage: nestedscroll run <scenario.yaml>")
	}

	prev := errors.SetHandler(&errors.LogHandler{Verbose: opts.verbose, Out: os.Stderr})
	defer errors.SetHandler(prev)

	sc, err := scenario.Load(files[0])
	if err != nil {
		return err
	}
	if sc.Name != "" {
		fmt.Fprintf(stdout, "scenario %s\n", sc.Name)
	}
	return replay.Run(sc, stdout)
}

func parseRunArgs(args []string) ([]string, runOptions) {
	var opts runOptions
	var files []string
	for _, arg := range args {
		switch {
		case arg == "--verbose":
			opts.verbose = true
		case strings.HasPrefix(arg, "--"):
			fmt.Fprintf(os.Stderr, "Warning: ignoring unknown flag %s\n", arg)
		default:
			files = append(files, arg)
		}
	}
	return files, opts
}
