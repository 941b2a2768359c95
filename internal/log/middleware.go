package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := loggerFrom(ctx); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

func loggerFrom(ctx context.Context) (*Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	logger, ok := ctx.Value(LoggerContextKey).(*Logger)
	return logger, ok
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// StructuredLogger provides structured logging methods with context awareness.
// Each method logs through the request logger stored in ctx by WithLogger,
// falling back to the logger it was built with.
type StructuredLogger struct {
	logger *Logger
}

func (sl *StructuredLogger) from(ctx context.Context) *Logger {
	if logger, ok := loggerFrom(ctx); ok {
		return logger
	}
	return sl.logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogHTTPStart logs the start of an HTTP request
func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent"))
	fields[FieldClientIP] = clientIP

	sl.from(ctx).WithComponent(ComponentHTTP).DebugContext(ctx, "HTTP request started", fields.ToSlice()...)
}

// LogHTTPEnd logs the completion of an HTTP request
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "").
		WithHTTPResponse(statusCode, durationMs, statusCode < 400).
		WithComponent(ComponentHTTP)
	fields[FieldClientIP] = clientIP

	sl.from(ctx).Logger.Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
}

// LogNavigation logs a month change attempt and whether the cursor moved
func (sl *StructuredLogger) LogNavigation(ctx context.Context, sessionID, op string, year, month int, moved bool) {
	fields := NewFields().
		WithSessionID(sessionID).
		WithOperation(op).
		WithCursor(year, month)
	fields[FieldMoved] = moved

	sl.from(ctx).WithComponent(ComponentCalendar).DebugContext(ctx, "Calendar navigation", fields.ToSlice()...)
}

// LogSelection logs a change of the selected event slot
func (sl *StructuredLogger) LogSelection(ctx context.Context, sessionID, op string, cell int, label string) {
	fields := NewFields().
		WithSessionID(sessionID).
		WithOperation(op).
		WithEvent(label)
	if cell >= 0 {
		fields[FieldCellIndex] = cell
	}

	sl.from(ctx).WithComponent(ComponentCalendar).DebugContext(ctx, "Calendar selection", fields.ToSlice()...)
}

// LogCatalogLoaded logs a successful event catalog load
func (sl *StructuredLogger) LogCatalogLoaded(ctx context.Context, source string, count int) {
	fields := NewFields().WithOperation(OpLoad)
	fields[FieldSource] = source
	fields[FieldCount] = count

	sl.from(ctx).WithComponent(ComponentCatalog).InfoContext(ctx, "Event catalog loaded", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.from(ctx).WithComponent(component).ErrorContext(ctx, msg, allFields.ToSlice()...)
}
