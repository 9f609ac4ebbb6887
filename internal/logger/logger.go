// Package logger builds the zap loggers shared by the API server and the CLI.
// Output always goes to stderr so CLI results on stdout stay machine readable.
package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Service is attached to every line as the "service" field when set.
	Service string
	JSON    bool
	Debug   bool
}

// New builds the process logger. Extra zap options are applied after the
// configuration, e.g. hooks or a wrapped core in tests.
func New(opts Options, zapOpts ...zap.Option) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	levelEncoder := zapcore.CapitalLevelEncoder
	if opts.JSON {
		encoding = "json"
		levelEncoder = zapcore.LowercaseLevelEncoder
	}

	var initial map[string]interface{}
	if opts.Service != "" {
		initial = map[string]interface{}{"service": opts.Service}
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		Development:       opts.Debug,
		DisableStacktrace: !opts.Debug,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields:     initial,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "time",
			NameKey:        "component",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			EncodeLevel:    levelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	return cfg.Build(zapOpts...)
}

// ForAnalysis scopes log to a single analysis. Every line written through the
// returned logger carries the analysis ID and the résumé file name.
func ForAnalysis(log *zap.Logger, id uuid.UUID, filename string) *zap.Logger {
	return log.With(
		zap.Stringer("analysis_id", id),
		zap.String("filename", filename),
	)
}
