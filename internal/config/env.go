// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger creates a timestamped logger writing to stderr.
// The level is read from FLAPPY_LOG_LEVEL and defaults to info.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(ParseLevel(GetEnv("FLAPPY_LOG_LEVEL", "info")))
	return logger
}

// ParseLevel converts a level name to a log level, falling back to info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
