package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "pix_recebidos", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.Migrate)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)

	assert.Contains(t, cfg.Webhook.ConfirmEvents, "pix_paid")
	assert.Equal(t, "pix.read", cfg.Provider.Scope)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Contains(t, cfg.Provider.ConfirmedStatuses, "concluida")

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "pix-recebidos", cfg.JWT.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
webhook:
  secret: "shhh"
  confirm_events: ["pix_paid"]
provider:
  token_url: "https://provider.example.com/oauth/token"
  query_url: "https://provider.example.com/v2/pix"
  timeout: "10s"
gateway:
  url: "https://gateway.example.com/message/send"
  api_key: "gw-key"
`)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "shhh", cfg.Webhook.Secret)
	assert.Equal(t, []string{"pix_paid"}, cfg.Webhook.ConfirmEvents)
	assert.Equal(t, "https://provider.example.com/oauth/token", cfg.Provider.TokenURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "gw-key", cfg.Gateway.APIKey)

	// Unspecified keys keep their defaults.
	assert.Equal(t, "pix_recebidos", cfg.Database.DBName)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PIX_WEBHOOK_SECRET", "env-secret")
	t.Setenv("PIX_DATABASE_HOST", "db.internal")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Webhook.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestDSN_Format(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "u", Password: "p", DBName: "pix", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/pix?sslmode=disable", d.DSN())
}

func TestRedisAddr_Format(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
