package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"MEMORIAL_PRIMARY__ENV":                 "local",
		"MEMORIAL_SERVER__PORT":                 "8080",
		"MEMORIAL_SERVER__READ_TIMEOUT":         "30",
		"MEMORIAL_SERVER__WRITE_TIMEOUT":        "30",
		"MEMORIAL_SERVER__IDLE_TIMEOUT":         "60",
		"MEMORIAL_SERVER__CORS_ALLOWED_ORIGINS": "http://localhost:3000,http://localhost:5173",
		"MEMORIAL_DATABASE__HOST":               "localhost",
		"MEMORIAL_DATABASE__PORT":               "5432",
		"MEMORIAL_DATABASE__USER":               "memorial",
		"MEMORIAL_DATABASE__PASSWORD":           "secret",
		"MEMORIAL_DATABASE__NAME":               "memorial",
		"MEMORIAL_DATABASE__SSL_MODE":           "disable",
		"MEMORIAL_DATABASE__MAX_OPEN_CONNS":     "25",
		"MEMORIAL_DATABASE__MAX_IDLE_CONNS":     "25",
		"MEMORIAL_DATABASE__CONN_MAX_LIFETIME":  "300",
		"MEMORIAL_DATABASE__CONN_MAX_IDLE_TIME": "300",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Redis.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)

	require.NotNil(t, cfg.QRCode)
	assert.Equal(t, DefaultQRCodeConfig(), cfg.QRCode)
}

func TestLoadConfig_PartialQRCodeBlock(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MEMORIAL_QRCODE__SIZE", "512")
	t.Setenv("MEMORIAL_QRCODE__CACHE_TTL", "1h")
	t.Setenv("MEMORIAL_REDIS__ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.QRCode.Size)
	assert.Equal(t, time.Hour, cfg.QRCode.CacheTTL)
	assert.Equal(t, "medium", cfg.QRCode.RecoveryLevel)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MEMORIAL_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_InvalidPublicBaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MEMORIAL_SERVER__PUBLIC_BASE_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.host", envKey("MEMORIAL_DATABASE__HOST"))
	assert.Equal(t, "database.host", envKey("MEMORIAL_DATABASE.HOST"))
	assert.Equal(t, "server.cors_allowed_origins", envKey("MEMORIAL_SERVER__CORS_ALLOWED_ORIGINS"))
}

func TestEnvValue_SplitsLists(t *testing.T) {
	key, value := envValue("MEMORIAL_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	assert.Equal(t, "server.cors_allowed_origins", key)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, value)

	key, value = envValue("MEMORIAL_SERVER__PORT", "8080")
	assert.Equal(t, "server.port", key)
	assert.Equal(t, "8080", value)
}

func TestLoadConfig_SingleCORSOrigin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MEMORIAL_SERVER__CORS_ALLOWED_ORIGINS", "https://memorials.example.org")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://memorials.example.org"}, cfg.Server.CORSAllowedOrigins)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_CheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.CheckEnabled("database"))
	assert.True(t, cfg.CheckEnabled("redis"))
	assert.False(t, cfg.CheckEnabled("smtp"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.CheckEnabled("database"))
}

func TestQRCodeConfig_Validate(t *testing.T) {
	cfg := DefaultQRCodeConfig()
	require.NoError(t, cfg.Validate())

	cfg.Size = 10
	assert.Error(t, cfg.Validate())

	cfg = DefaultQRCodeConfig()
	cfg.RecoveryLevel = "extreme"
	assert.Error(t, cfg.Validate())
}
