// Package logging builds the zap loggers used by the host tools.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"turtlebot/core"
)

// NewConfig returns a console logger config writing to stderr. Stack traces
// are disabled and levels are colored.
func NewConfig(debug bool) zap.Config {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// New returns a named sugared logger
func New(name string, debug bool) (*zap.SugaredLogger, error) {
	logger, err := NewConfig(debug).Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named(name), nil
}

// BridgeCore routes the motion engine's debug messages to logger at debug
// level. The engine stays silent unless enabled is set.
func BridgeCore(logger *zap.SugaredLogger, enabled bool) {
	named := logger.Named("core")
	core.SetDebugWriter(func(msg string) {
		named.Debug(msg)
	})
	core.SetDebugEnabled(enabled)
}

// UnbridgeCore detaches the engine's debug output
func UnbridgeCore() {
	core.SetDebugEnabled(false)
	core.SetDebugWriter(nil)
}
