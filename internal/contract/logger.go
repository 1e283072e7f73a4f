package contract

import (
	"fmt"

	"github.com/huangsam/gitbloat/schema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevelMapping = map[schema.LogLevel]zapcore.Level{
	schema.DebugLevel: zapcore.DebugLevel,
	schema.InfoLevel:  zapcore.InfoLevel,
	schema.WarnLevel:  zapcore.WarnLevel,
	schema.ErrorLevel: zapcore.ErrorLevel,
}

// NewLogger builds the console logger used for tracing git invocations.
// Output goes to stderr so it never mixes with report lines.
func NewLogger(level schema.LogLevel) (*zap.Logger, error) {
	zapLevel, ok := logLevelMapping[level]
	if !ok {
		return nil, fmt.Errorf("unsupported log level: %s", level)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLevel)
	configuration.Encoding = "console"
	configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	configuration.DisableStacktrace = true
	configuration.Sampling = nil

	return configuration.Build()
}
