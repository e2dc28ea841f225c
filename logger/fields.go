package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging across bnls.
const (
	// Components
	FieldComponent = "component"
	FieldSession   = "session_id"
	FieldTransport = "transport"

	// Documents and positions
	FieldURI       = "uri"
	FieldLine      = "line"
	FieldCharacter = "character"
	FieldLength    = "length"
	FieldVersion   = "version"

	// Vocabulary
	FieldCategory = "category"
	FieldPattern  = "pattern"
	FieldWord     = "word"
	FieldFile     = "file"

	// Results
	FieldCount = "count"
	FieldError = "error"

	// Network
	FieldAddress = "address"
	FieldRemote  = "remote"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	handler := langserver.NewHandler(service, logger.ComponentLogger("lsp"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	sessionLogger := logger.ChildLogger(base, logger.FieldSession, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
