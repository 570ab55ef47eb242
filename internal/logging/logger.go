// Package logging wraps go.uber.org/zap for the server's observable side
// effects: one line per accepted connection, and one line when the
// pairing dispatcher's intake channel drains for good.
package logging

import "go.uber.org/zap"

// Logger is a thin wrapper around a zap.Logger/zap.SugaredLogger pair.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New builds a production-configured Logger (JSON encoding, info level)
// writing to stderr, suitable for the long-running server process.
func New() (*Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{base: zl, sugar: zl.Sugar()}, nil
}

// NewNop builds a Logger that discards everything. Used by tests, which
// otherwise drown in structured connection-accepted lines from every
// ephemeral loopback dial.
func NewNop() *Logger {
	zl := zap.NewNop()
	return &Logger{base: zl, sugar: zl.Sugar()}
}

// Info logs a bare message at info level.
func (l *Logger) Info(msg string) { l.base.Info(msg) }

// Infow logs a message with structured key/value pairs at info level.
func (l *Logger) Infow(msg string, kv ...interface{}) { l.sugar.Infow(msg, kv...) }

// Warnw logs a message with structured key/value pairs at warn level.
func (l *Logger) Warnw(msg string, kv ...interface{}) { l.sugar.Warnw(msg, kv...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.base.Sync() }
