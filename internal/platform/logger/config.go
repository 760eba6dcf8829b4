package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig is read from the environment before the main configuration,
// so startup problems are already logged in the right format.
type LoggerConfig struct {
	Level       string
	Format      string
	OutputFile  string
	ServiceName string
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT_FILE and SERVICE_NAME.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format:      strings.ToLower(envOr("LOG_FORMAT", "json")),
		OutputFile:  envOr("LOG_OUTPUT_FILE", "stdout"),
		ServiceName: envOr("SERVICE_NAME", "storefront-service"),
	}
}

// ToZapLevel parses Level. "warning" is accepted as an alias; anything zap
// does not know falls back to info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	raw := c.Level
	if raw == "warning" {
		raw = "warn"
	}
	lvl, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// IsConsole reports whether human-readable output was requested.
func (c *LoggerConfig) IsConsole() bool {
	return c.Format == "console" || c.Format == "text"
}
