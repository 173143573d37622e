package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across otml.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Feature model
	FieldSymbol   = "symbol"
	FieldFeature  = "feature"
	FieldValue    = "value"
	FieldFeatures = "features"
	FieldSegments = "segments"

	// Sources
	FieldFile   = "file"
	FieldFormat = "format"
	FieldSchema = "schema"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{log: logger.ComponentLogger("inventory.watcher")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
