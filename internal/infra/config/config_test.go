package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, []string{"/api/v1/profiles"}, cfg.HTTP.Retry.Exclude)
	require.Equal(t, 0.012, cfg.Recommend.RateSourceToIntermediate)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlDoc := `
http:
  address: ":9090"
  readTimeout: 2s
catalog:
  path: /srv/catalog.csv
recommend:
  defaultLimit: 4
dashboard:
  priceBins: 10
valkey:
  enabled: true
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("POSTGRES_DSN", "postgres://skinfit@localhost/skinfit")
	t.Setenv("HTTP_RATE_LIMIT_ENABLED", "false")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, "/srv/catalog.csv", cfg.Catalog.Path)
	require.Equal(t, 4, cfg.Recommend.DefaultLimit)
	require.Equal(t, 2, cfg.Recommend.StepLimit)
	require.Equal(t, 10, cfg.Dashboard.PriceBins)
	require.True(t, cfg.Valkey.Enabled)
	require.Equal(t, "postgres://skinfit@localhost/skinfit", cfg.Postgres.DSN)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":       func(c *Config) { c.HTTP.Address = "" },
		"object store bucket": func(c *Config) { c.Catalog.ObjectStore.Enabled = true },
		"zero rate":           func(c *Config) { c.Recommend.RateSourceToIntermediate = 0 },
		"template without id": func(c *Config) { c.Recommend.ImageURLTemplate = "https://img.example/x.jpg" },
		"age bounds":          func(c *Config) { c.Profile.MaxAge = 0 },
		"valkey addr":         func(c *Config) { c.Valkey.Enabled = true },
		"max below default":   func(c *Config) { c.Recommend.MaxLimit = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
