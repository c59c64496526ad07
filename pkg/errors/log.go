package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a ScrollError.
func (h *LogHandler) HandleError(err *ScrollError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[nestedscroll error] %s [%s]", err.Op, err.Kind)
		if err.Node != 0 {
			fmt.Fprintf(w, " node=%d", err.Node)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[nestedscroll error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[nestedscroll panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[nestedscroll panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// DiscardHandler drops every report. Useful in tests that exercise invalid
// input on purpose.
type DiscardHandler struct{}

// HandleError implements ErrorHandler.
func (DiscardHandler) HandleError(*ScrollError) {}

// HandlePanic implements ErrorHandler.
func (DiscardHandler) HandlePanic(*PanicError) {}
