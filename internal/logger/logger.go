// Package logger builds the zap logger shared by the server and redacts
// sensitive values before they reach log output.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// New returns a JSON production logger for "production" and a console
// development logger otherwise.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// Redact returns a string field whose value is hidden when the key names a secret
func Redact(key, value string) zap.Field {
	if isSensitiveKey(key) {
		return zap.String(key, redacted)
	}
	return zap.String(key, value)
}

// Email keeps only the domain of an address
func Email(key, value string) zap.Field {
	at := strings.LastIndex(value, "@")
	if at < 0 {
		return zap.String(key, redacted)
	}
	return zap.String(key, "***"+value[at:])
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.Contains(key, "token"),
		strings.Contains(key, "authorization"),
		strings.Contains(key, "password"),
		strings.Contains(key, "secret"),
		strings.Contains(key, "cookie"),
		strings.Contains(key, "refresh"):
		return true
	default:
		return false
	}
}
