package logger

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Field = zap.Field

	Logger interface {
		Info(msg string, fields ...Field)
		Error(msg string, fields ...Field)
		Debug(msg string, fields ...Field)
		Warn(msg string, fields ...Field)
	}
)

func StringField(key, value string) Field {
	return zap.String(key, value)
}

func ErrorField(key string, err error) Field {
	return zap.NamedError(key, err)
}

func Float64Field(key string, value float64) Field {
	return zap.Float64(key, value)
}

func DurationField(key string, value time.Duration) Field {
	return zap.Duration(key, value)
}

func AnyField(key string, value interface{}) Field {
	return zap.Any(key, value)
}

// NewLogger writes JSON lines: info and debug go to out, warnings and
// errors go to errOut. The returned cleanup flushes buffered entries.
func NewLogger(debug bool, out, errOut io.Writer) (*zap.Logger, func()) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	minLevel := zapcore.InfoLevel
	if debug {
		minLevel = zapcore.DebugLevel
	}

	infoCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(out)),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= minLevel && lvl <= zapcore.InfoLevel
		}),
	)

	errorCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(errOut)),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.WarnLevel
		}),
	)

	log := zap.New(zapcore.NewTee(infoCore, errorCore), zap.AddCaller())

	cleanup := func() {
		_ = log.Sync()
	}

	return log, cleanup
}

func NewNop() Logger {
	return zap.NewNop()
}
