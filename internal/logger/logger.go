package logger

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a sugared logger. JSON output uses the zap production config,
// otherwise a quiet console encoder without timestamps is used.
func New(jsonOutput bool, level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "logger: invalid level %q", level), "use debug, info, warn or error")
	}
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		log, err := config.Build()
		if err != nil {
			return nil, errors.Wrap(err, "logger: unable to build json logger")
		}
		return log.Sugar(), nil
	}
	return Console(os.Stderr, lvl), nil
}

// Console writes human-readable lines to w
func Console(w io.Writer, level zapcore.Level) *zap.SugaredLogger {
	config := zap.NewDevelopmentEncoderConfig()
	config.TimeKey = ""
	config.CallerKey = ""
	config.StacktraceKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Sugar()
}

// Nop discards everything
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
