package core

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init initializes zap's global logger at the given level.
// After calling this, we use zap.L() directly.
// Both encoders write to stderr so stdout only ever carries the prefix.
func Init(pretty bool, level string) error {
	var config zap.Config

	if pretty {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("failed to parse log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// LogResolution logs the outcome of an MSYSTEM lookup using zap's global logger
func LogResolution(variable, value, prefix string, duration float64, err error) {
	fields := []zap.Field{
		zap.String("variable", variable),
		zap.String("value", value),
		zap.Float64("duration_seconds", duration),
		zap.Bool("matched", prefix != ""),
	}

	if prefix != "" {
		fields = append(fields, zap.String("prefix", prefix))
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		zap.L().Debug("Resolution failed", fields...)
		return
	}

	zap.L().Debug("Resolution completed", fields...)
}

// LogPanicRecovery logs a recovered panic along with the stack
func LogPanicRecovery(component string, panicValue any) {
	zap.L().Error("Panic recovered",
		zap.String("component", component),
		zap.Any("panic_value", panicValue),
		zap.ByteString("stack", debug.Stack()))
}

// LogDeferredError calls fn and logs its error, for use with defer on closers
func LogDeferredError(fn func() error) {
	if err := fn(); err != nil {
		zap.L().Error("Deferred error", zap.Error(err), zap.Stack("stack"))
	}
}
