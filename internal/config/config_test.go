package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SANTA_JWT_SECRET", testSecret)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/santa.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.Empty(t, cfg.AdminSecret)
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "SANTA_JWT_SECRET=" + testSecret + "\nSANTA_ADDR=:9999\nSANTA_SESSION_TTL=2h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv sets process env; clean up what the file introduced.
	t.Cleanup(func() {
		os.Unsetenv("SANTA_JWT_SECRET")
		os.Unsetenv("SANTA_ADDR")
		os.Unsetenv("SANTA_SESSION_TTL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoad_EnvWinsOverDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SANTA_ADDR=:1111\n"), 0o600))
	t.Setenv("SANTA_JWT_SECRET", testSecret)
	t.Setenv("SANTA_ADDR", ":2222")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Addr)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SANTA_JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANTA_JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Addr:        ":8080",
			DBPath:      "santa.db",
			JWTSecret:   testSecret,
			SessionTTL:  time.Hour,
			MetricsPath: "/metrics",
			LogFormat:   "json",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "short admin secret", mutate: func(c *Config) { c.AdminSecret = "short" }, want: "SANTA_ADMIN_SECRET"},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, want: "SANTA_SESSION_TTL"},
		{name: "relative metrics path", mutate: func(c *Config) { c.MetricsPath = "metrics" }, want: "SANTA_METRICS_PATH"},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, want: "LOG_FORMAT"},
		{name: "missing db path", mutate: func(c *Config) { c.DBPath = "" }, want: "SANTA_DB_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %s", err, tt.want)
		})
	}
}
