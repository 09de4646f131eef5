package ghost

import "go.uber.org/zap"

// Logger is the narrow logging surface the driver depends on, mirroring
// costela/golpa's single-method Logger interface. The driver logs only at
// round boundaries, when a round records a new best — never per
// iteration — so the interface stays tiny and the hot loop stays
// allocation-light.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
}

// nopLogger discards everything, matching golpa's noopLogger default.
type nopLogger struct{}

// Infow implements Logger.
func (nopLogger) Infow(string, ...interface{}) {}

// NewNopLogger returns a Logger that discards all output.
func NewNopLogger() Logger { return nopLogger{} }

// zapLogger adapts a *zap.SugaredLogger to Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps a zap.SugaredLogger as a Logger.
func NewZapLogger(sugar *zap.SugaredLogger) Logger {
	return &zapLogger{sugar: sugar}
}

// Infow implements Logger.
func (z *zapLogger) Infow(msg string, keysAndValues ...interface{}) {
	z.sugar.Infow(msg, keysAndValues...)
}
