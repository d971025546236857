package telemetry

import (
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOptions controls logger construction.
type LoggerOptions struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Encoding is "json" (default) or "console".
	Encoding string
	// OutputPath defaults to stdout. The CLI logs to stderr so stdout stays parseable.
	OutputPath string
}

// NewLogger creates a new OpenTelemetry-aware zap logger.
func NewLogger(opts LoggerOptions) (*otelzap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))
	config.Encoding = "json"
	if opts.Encoding == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = []string{"stdout"}
	if opts.OutputPath != "" {
		config.OutputPaths = []string{opts.OutputPath}
	}
	config.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return otelzap.New(zapLogger, otelzap.WithMinLevel(zapcore.InfoLevel)), nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
