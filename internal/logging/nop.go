package logging

// NopLogger discards all log output. Useful as a default and in tests.
type NopLogger struct{}

// NewNop returns a logger that discards everything.
func NewNop() *NopLogger { return &NopLogger{} }

// Debug discards the message.
func (*NopLogger) Debug(string, ...any) {}

// Info discards the message.
func (*NopLogger) Info(string, ...any) {}

// Warn discards the message.
func (*NopLogger) Warn(string, ...any) {}

// Error discards the message.
func (*NopLogger) Error(string, ...any) {}
