// Package errors provides structured error handling for nested scrolling.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTree indicates an invalid containment tree operation.
	KindTree
	// KindGesture indicates a gesture class or axis outside the closed sets.
	KindGesture
	// KindConfig indicates a scenario loading or validation failure.
	KindConfig
	// KindReplay indicates a failure while replaying a scenario step.
	KindReplay
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindGesture:
		return "gesture"
	case KindConfig:
		return "config"
	case KindReplay:
		return "replay"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ScrollError represents a structured error raised around the nested scroll
// protocol.
type ScrollError struct {
	// Op is the operation that failed (e.g., "viewtree.Add").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Node is the tree handle involved, if any. Zero means none.
	Node uint32
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ScrollError) Error() string {
	if e.Node != 0 {
		return fmt.Sprintf("%s [%s] node=%d: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ScrollError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "replay.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a scenario field that could not be interpreted.
type ParseError struct {
	// File is the scenario file being read.
	File string
	// Field is the offending field path (e.g., "steps[3].class").
	Field string
	// Got is the value found.
	Got any
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("invalid %s: got %v", e.Field, e.Got)
	}
	return fmt.Sprintf("%s: invalid %s: got %v", e.File, e.Field, e.Got)
}

// ErrorHandler receives errors reported through this package.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ScrollError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
