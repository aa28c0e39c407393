package config

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FLAPPY_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("FLAPPY_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("FLAPPY_TEST_MISSING_KEY", "fallback"))
}

func TestGetEnvEmptyValueIsKept(t *testing.T) {
	t.Setenv("FLAPPY_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("FLAPPY_TEST_EMPTY", "fallback"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("FLAPPY_LOG_LEVEL", "error")
	logger := NewLogger("test")
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}
