package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	t.Setenv("PORT", "")

	dir := writeConfigs(t,
		"api_base_url: http://api:8080/api\nrequest_timeout: 3s\nrefresh_interval: 1m\nsecure_cookies: true\n",
		"api_token: 's3cret'\n",
	)

	cfg := MustLoad(dir)

	assert.Equal(t, "http://api:8080/api", cfg.Public.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.Public.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Public.RefreshInterval)
	assert.True(t, cfg.Public.SecureCookies)
	assert.Equal(t, "s3cret", cfg.APIToken())

	// defaults
	assert.Equal(t, defaultPort, cfg.Public.Port)
	assert.Equal(t, defaultInitialLoadWait, cfg.Public.InitialLoadWait)
	assert.Equal(t, defaultSessionTTL, cfg.Public.SessionTTL)
	assert.Equal(t, "info", cfg.Public.LogLevel)
}

func TestMustLoad_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	dir := writeConfigs(t, "api_base_url: http://localhost:5000\nport: '8000'\n", "")

	cfg := MustLoad(dir)
	assert.Equal(t, "9090", cfg.Public.Port)
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// api_base_url is intentionally missing
	dir := writeConfigs(t, "request_timeout: 1s\n", "api_token: 'k'\n")

	assert.Panics(t, func() { _ = MustLoad(dir) })
}

func TestMustLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		public string
	}{
		{"not an url", "api_base_url: not-a-url\n"},
		{"unknown log level", "api_base_url: http://api\nlog_level: chatty\n"},
		{"negative timeout", "api_base_url: http://api\nrequest_timeout: -1s\n"},
		{"unknown key", "api_base_url: http://api\njwt_ttl: 1h\n"},
		{"session ttl below a second", "api_base_url: http://api\nsession_ttl: 1ns\n"},
		{"negative session ttl", "api_base_url: http://api\nsession_ttl: -1m\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfigs(t, tt.public, "")
			assert.Panics(t, func() { _ = MustLoad(dir) })
		})
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { _ = MustLoad(t.TempDir()) })
}
