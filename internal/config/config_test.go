package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/aretw0/kopye/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"KOPYE_DEBUG", "KOPYE_TEMPLATE_SUFFIX", "KOPYE_ASSUME_YES", "KOPYE_NO_COLOR", "KOPYE_METRICS_FILE",
		"KOPYE_ANSWERS_STORE", "KOPYE_ANSWERS_KEY", "KOPYE_ANSWERS_FALLBACK_KEYS", "KOPYE_ANSWERS_REDACT", "KOPYE_ANSWERS_TTL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default().TemplateSuffix, cfg.TemplateSuffix)
	assert.Equal(t, config.Default().Answers.Store, cfg.Answers.Store)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("KOPYE_DEBUG", "true")
	t.Setenv("KOPYE_TEMPLATE_SUFFIX", ".tmpl")
	t.Setenv("KOPYE_ASSUME_YES", "1")
	t.Setenv("KOPYE_METRICS_FILE", "/tmp/kopye.prom")
	t.Setenv("KOPYE_ANSWERS_STORE", "redis://localhost:6379/0")
	t.Setenv("KOPYE_ANSWERS_REDACT", "token,password")
	t.Setenv("KOPYE_ANSWERS_TTL", "24h")
	t.Setenv("KOPYE_ANSWERS_FALLBACK_KEYS", "a,b")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, ".tmpl", cfg.TemplateSuffix)
	assert.Equal(t, "/tmp/kopye.prom", cfg.MetricsFile)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Answers.Store)
	assert.Equal(t, []string{"token", "password"}, cfg.Answers.Redact)
	assert.Equal(t, 24*time.Hour, cfg.Answers.TTL)
	assert.Equal(t, []string{"a", "b"}, cfg.Answers.FallbackKeys)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("KOPYE_DEBUG", "not-a-bool")
	_, err := config.Load()
	assert.Error(t, err)
}
