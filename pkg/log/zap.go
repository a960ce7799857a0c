package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel returns defaultVal for unknown level names
func ParseLevel(l string, defaultVal zapcore.Level) zapcore.Level {
	level, err := zapcore.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// New creates a logger writing to w. format "json" gives production
// encoding, anything else the console encoding used during development.
func New(w io.Writer, level zapcore.Level, format string) *zap.Logger {
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}
