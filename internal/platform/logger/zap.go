package logger

import (
	"strings"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New initializes a Zap logger from the application configuration.
// GIN_MODE=release selects the production preset, anything else the
// development preset with colored levels.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.GinMode == "release" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.LogLevel))

	if strings.ToLower(cfg.LogFormat) == "json" {
		zapConfig.Encoding = "json"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	} else {
		zapConfig.Encoding = "console"
	}

	return zapConfig.Build()
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
