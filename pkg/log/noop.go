package log

// NoopLogger implements Logger by discarding all log messages.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug does nothing.
func (NoopLogger) Debug(msg string, fields ...Field) {}

// Info does nothing.
func (NoopLogger) Info(msg string, fields ...Field) {}

// Warn does nothing.
func (NoopLogger) Warn(msg string, fields ...Field) {}

// Error does nothing.
func (NoopLogger) Error(msg string, fields ...Field) {}
