// Package logger exposes a process-global zap sugared logger. It emits
// JSON to stdout, takes its minimum level from a functional option, and
// forwards entries to the OTEL pipeline when telemetry is configured.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/confirmwatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger

	// initOnce guards the one-time logger setup.
	initOnce sync.Once
)

type config struct {
	level string
}

// Option customizes the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level ("debug", "info", "warn", "error",
// "panic", "fatal").
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// Init builds the global logger. Defaults to JSON on stdout at "info".
// When telemetry.LoggerProvider() is non-nil, an OTEL bridge core is added
// so log entries also reach the telemetry backend. Subsequent calls after
// the first successful one are no-ops.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				level,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(lp)))
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() error {
	return logger.Sync()
}

// Debug logs at debug level with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

// Info logs at info level with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Infow(msg, keysAndValues...)
}

// Warn logs at warn level with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Warnw(msg, keysAndValues...)
}

// Error logs at error level with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Errorw(msg, keysAndValues...)
}

// Fatal logs at fatal level (then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Fatalw(msg, keysAndValues...)
}
