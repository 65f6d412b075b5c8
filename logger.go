// Copyright (c) 2026 Frank Corso
//
// logger.go — Logger interface and noop implementation used for the cache's
// side-channel diagnostics; swap in zap, slog, or logrus by passing a
// custom implementation to Config.Logger.

package lightcache

// Logger is the logging interface used internally by the cache.
// Implement this to route diagnostics to zap, slog, logrus, etc.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

type noopLogger struct{}

func (noopLogger) Info(_ string, _ ...any)  {}
func (noopLogger) Warn(_ string, _ ...any)  {}
func (noopLogger) Error(_ string, _ ...any) {}
func (noopLogger) Debug(_ string, _ ...any) {}
