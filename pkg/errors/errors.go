// Package errors provides structured error handling for the drag and drop
// packages.
//
// Most interaction failures are not errors at all: a rejected press or an
// event that arrives after capture was revoked simply reports "not handled".
// What remains is reported through a global [ErrorHandler] so applications
// can route it to their logger, and invariant violations, which indicate a
// bug in the core, can be made fatal with [SetStrict].
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
	// KindCaptureConflict indicates a press on a widget that already holds a
	// captured pointer.
	KindCaptureConflict
	// KindDegenerateGeometry indicates a zero-area widget where an area was
	// needed, such as a snapshot source.
	KindDegenerateGeometry
	// KindStaleEvent indicates an event delivered after capture was revoked.
	KindStaleEvent
	// KindInvariant indicates a broken internal invariant.
	KindInvariant
	// KindConfig indicates a missing or invalid configuration value.
	KindConfig
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCaptureConflict:
		return "capture-conflict"
	case KindDegenerateGeometry:
		return "degenerate-geometry"
	case KindStaleEvent:
		return "stale-event"
	case KindInvariant:
		return "invariant"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DndError represents a structured error raised by the drag and drop core.
type DndError struct {
	// Op is the operation that failed (e.g., "dnd.Controller.PressStart").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Pointer is the pointer ID involved, or zero if none.
	Pointer int64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DndError) Error() string {
	if e.Pointer != 0 {
		return fmt.Sprintf("%s [%s] pointer=%d: %v", e.Op, e.Kind, e.Pointer, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DndError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widget.Window.Dispatch").
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

// InvariantError is the panic value raised for a broken invariant when
// strict mode is enabled.
type InvariantError struct {
	Op      string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Message)
}

// ErrorHandler receives errors reported by the drag and drop packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *DndError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
