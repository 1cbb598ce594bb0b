package telemetry

import (
	"fmt"
	"os"

	"github.com/quartzlab/tipboard/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLoggers builds the application logger and a quieter database logger
// from the debug configuration. The database logger stays at warn level
// unless the application runs at debug level, since the query hook logs
// every statement.
func NewLoggers(cfg *config.Debug) (*zap.Logger, *zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	output := zapcore.Lock(os.Stdout)

	logger := zap.New(
		zapcore.NewCore(encoder, output, level),
		zap.AddCaller(),
	)

	dbLevel := zapcore.WarnLevel
	if level == zapcore.DebugLevel {
		dbLevel = zapcore.DebugLevel
	}

	dbLogger := zap.New(
		zapcore.NewCore(encoder, output, dbLevel),
		zap.AddCaller(),
	).Named("database")

	return logger, dbLogger, nil
}
