package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EDITOR_SESSION_TTL", "")
	t.Setenv("RENDER_STRICT_SEND", "")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.Editor.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Editor.CleanupInterval)
	assert.True(t, cfg.Render.StrictSend)
	assert.Equal(t, "TEMPLATE_LINT", cfg.App.LintTopic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EDITOR_SESSION_TTL", "15m")
	t.Setenv("RENDER_STRICT_SEND", "false")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.Editor.SessionTTL)
	assert.False(t, cfg.Render.StrictSend)
	assert.Equal(t, 2525, cfg.SMTP.Port)
}

func TestGetEnvAsDurationRejectsGarbage(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))

	t.Setenv("SOME_DURATION", "-5m")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
