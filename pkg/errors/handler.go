package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to a LogHandler writing through zap's global logger.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex

	strict atomic.Bool
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

// getHandler returns the current error handler.
func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// SetStrict makes Invariant panic after reporting. Test builds enable it
// from TestMain so a broken invariant fails the test instead of being
// logged and skipped.
func SetStrict(enabled bool) {
	strict.Store(enabled)
}

// Strict reports whether strict mode is enabled.
func Strict() bool {
	return strict.Load()
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *DndError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Invariant reports a broken invariant. In strict mode it then panics with
// an *InvariantError.
func Invariant(op, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Report(&DndError{
		Op:         op,
		Kind:       KindInvariant,
		Err:        fmt.Errorf("%s", msg),
		StackTrace: CaptureStack(),
	})
	if Strict() {
		panic(&InvariantError{Op: op, Message: msg})
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
//
// Invariant panics raised in strict mode are re-panicked so they stay fatal.
func Recover(op string) {
	if r := recover(); r != nil {
		if inv, ok := r.(*InvariantError); ok {
			panic(inv)
		}
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
