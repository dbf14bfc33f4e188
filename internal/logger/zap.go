package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap builds a structured logger for library packages that take an injected
// *zap.Logger, using the same level as the application logger.
func Zap(format Format) *zap.Logger {
	level, err := zapcore.ParseLevel(Level())
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if format == FormatText {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		Warnf("falling back to a no-op structured logger: %v", err)
		return zap.NewNop()
	}
	return l
}
