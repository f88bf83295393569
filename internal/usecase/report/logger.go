package report

import "context"

// Logger provides structured logging for the report use case.
// This interface lets the orchestrator log progress and degraded conditions
// with structured fields without depending on a concrete logging backend.
type Logger interface {
	// LogInfo logs an informational message with structured fields.
	LogInfo(ctx context.Context, message string, fields map[string]interface{})

	// LogWarning logs a warning message with structured fields.
	// Fields typically include error details, IDs, and context.
	LogWarning(ctx context.Context, message string, fields map[string]interface{})

	// LogError logs an error that fails the run but was not a panic.
	LogError(ctx context.Context, message string, fields map[string]interface{})
}
