package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DRINKINGMAN_LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProviderGoogleAI, cfg.LLM.Provider)
	assert.Equal(t, 0.9, cfg.LLM.Temperature)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlDoc := `
environment: production
server:
  port: 9000
  public_origin: https://drinkingman.example
llm:
  provider: openai
  model: gpt-4o-mini
  timeout: 30s
auth:
  jwt_secret: from-file
catalog:
  page_size: 24
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	t.Setenv("DRINKINGMAN_LLM_PROVIDER", "")
	t.Setenv("DRINKINGMAN_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DRINKINGMAN_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "https://drinkingman.example", cfg.Server.PublicOrigin)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 24, cfg.Catalog.PageSize)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "palm" }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = " " }},
		{"dev secret in production", func(c *Config) { c.Environment = "production" }},
		{"page size", func(c *Config) { c.Catalog.PageSize = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "", firstNonEmpty("", "   "))
	assert.Equal(t, "foo", firstNonEmpty("foo", "bar"))
	assert.Equal(t, "bar", firstNonEmpty("  ", "bar"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
}
