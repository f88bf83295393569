// Package observability bridges the shared logging infrastructure to the
// use-case logging ports.
package observability

import (
	"context"

	"github.com/bkyoung/test-reporter/internal/adapter/rest"
	"github.com/bkyoung/test-reporter/internal/usecase/report"
)

// ReportLogger adapts rest.Logger to the report.Logger interface, so the
// orchestrator shares one logging backend with the HTTP adapters.
type ReportLogger struct {
	logger rest.Logger
}

// NewReportLogger creates a new report logger adapter.
func NewReportLogger(logger rest.Logger) report.Logger {
	return &ReportLogger{logger: logger}
}

// LogInfo logs an informational message with structured fields.
func (l *ReportLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	l.logger.LogInfo(ctx, message, fields)
}

// LogWarning logs a warning message with structured fields.
func (l *ReportLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	l.logger.LogWarning(ctx, message, fields)
}

// LogError logs an error message with structured fields.
func (l *ReportLogger) LogError(ctx context.Context, message string, fields map[string]interface{}) {
	l.logger.LogError(ctx, message, fields)
}
