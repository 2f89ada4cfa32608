package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogHandler is an ErrorHandler that writes to a zap logger.
type LogHandler struct {
	// Logger receives the entries. Nil means zap's global logger.
	Logger *zap.Logger
	// Verbose attaches stack traces to every entry, not only to invariants
	// and panics.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}

// levelFor maps kinds to log levels. Conflicts and stale events are part of
// normal interaction and stay at debug; degenerate geometry is recoverable.
func levelFor(kind ErrorKind) zapcore.Level {
	switch kind {
	case KindCaptureConflict, KindStaleEvent:
		return zapcore.DebugLevel
	case KindDegenerateGeometry, KindConfig:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// HandleError logs a DndError.
func (h *LogHandler) HandleError(err *DndError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Pointer != 0 {
		fields = append(fields, zap.Int64("pointer", err.Pointer))
	}
	if err.StackTrace != "" && (h.Verbose || err.Kind == KindInvariant) {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	if ce := h.logger().Check(levelFor(err.Kind), "dnd error"); ce != nil {
		ce.Write(fields...)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("dnd panic", fields...)
}
