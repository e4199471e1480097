// Package config loads the service configuration from a YAML file, .env
// files and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"drinkingman/internal/logging"
)

// Config represents the application configuration
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	LLM         LLMConfig      `yaml:"llm"`
	Catalog     CatalogConfig  `yaml:"catalog"`
	Database    DatabaseConfig `yaml:"database"`
	Auth        AuthConfig     `yaml:"auth"`
	Log         LogConfig      `yaml:"log"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

// ServerConfig configures the public HTTP API
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// PublicOrigin is the site origin share links point to
	PublicOrigin string `yaml:"public_origin"`
}

// LLMConfig configures the generative-language service
type LLMConfig struct {
	// Provider is one of googleai, openai, azure
	Provider               string        `yaml:"provider"`
	Model                  string        `yaml:"model"`
	APIKey                 string        `yaml:"api_key"`
	BaseURL                string        `yaml:"base_url"`
	Deployment             string        `yaml:"deployment"`
	Temperature            float64       `yaml:"temperature"`
	DescriptionTemperature float64       `yaml:"description_temperature"`
	TopK                   int           `yaml:"top_k"`
	TopP                   float64       `yaml:"top_p"`
	MaxTokens              int           `yaml:"max_tokens"`
	Timeout                time.Duration `yaml:"timeout"`
}

// CatalogConfig configures the bundled dataset and the lookup service
type CatalogConfig struct {
	DatasetPath string        `yaml:"dataset_path"`
	LookupURL   string        `yaml:"lookup_url"`
	Timeout     time.Duration `yaml:"timeout"`
	PageSize    int           `yaml:"page_size"`
}

// DatabaseConfig configures the inventory store
type DatabaseConfig struct {
	// Driver is sqlite3 or postgres
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// AuthConfig configures operator tokens
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// Providers accepted in LLMConfig.Provider
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderAzure    = "azure"
)

// developmentSecret is only accepted when Environment is "development"
const developmentSecret = "drinkingman-dev-secret"

// Default returns the configuration used when nothing else is provided
func Default() Config {
	return Config{
		Environment: "development",
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			PublicOrigin:   "http://localhost:3000",
		},
		LLM: LLMConfig{
			Provider:               ProviderGoogleAI,
			Model:                  "gemini-2.0-flash",
			Temperature:            0.9,
			DescriptionTemperature: 1.0,
			TopK:                   1,
			TopP:                   1,
			MaxTokens:              2048,
			Timeout:                60 * time.Second,
		},
		Catalog: CatalogConfig{
			DatasetPath: "data/cocktails.json",
			LookupURL:   "https://www.thecocktaildb.com/api/json/v1/1",
			Timeout:     10 * time.Second,
			PageSize:    12,
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			URL:    "drinkingman.db",
		},
		Auth: AuthConfig{
			JWTSecret: developmentSecret,
			TokenTTL:  30 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error), then
// .env files, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	loadDotEnv(".env.local", ".env")
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv loads the files that exist. godotenv never overrides variables
// already set, so earlier files win.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func applyEnv(cfg *Config) {
	cfg.Environment = firstNonEmpty(os.Getenv("DRINKINGMAN_ENV"), cfg.Environment)

	cfg.Server.Port = envInt("DRINKINGMAN_PORT", cfg.Server.Port)
	cfg.Server.PublicOrigin = firstNonEmpty(os.Getenv("DRINKINGMAN_PUBLIC_ORIGIN"), cfg.Server.PublicOrigin)
	if origins := os.Getenv("DRINKINGMAN_ALLOWED_ORIGINS"); strings.TrimSpace(origins) != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}

	cfg.LLM.Provider = strings.ToLower(firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_PROVIDER"), cfg.LLM.Provider))
	cfg.LLM.Model = firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_MODEL"), cfg.LLM.Model)
	cfg.LLM.BaseURL = firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_BASE_URL"), cfg.LLM.BaseURL)
	switch cfg.LLM.Provider {
	case ProviderGoogleAI:
		cfg.LLM.APIKey = firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_API_KEY"), os.Getenv("GEMINI_API_KEY"), os.Getenv("NEXT_PUBLIC_GEMINI_API_KEY"), cfg.LLM.APIKey)
	case ProviderOpenAI:
		cfg.LLM.APIKey = firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_API_KEY"), os.Getenv("OPENAI_API_KEY"), os.Getenv("GITHUB_TOKEN"), cfg.LLM.APIKey)
	case ProviderAzure:
		cfg.LLM.APIKey = firstNonEmpty(os.Getenv("DRINKINGMAN_LLM_API_KEY"), os.Getenv("AZURE_OPENAI_API_KEY"), cfg.LLM.APIKey)
		cfg.LLM.BaseURL = firstNonEmpty(os.Getenv("AZURE_OPENAI_ENDPOINT"), cfg.LLM.BaseURL)
		cfg.LLM.Deployment = firstNonEmpty(os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"), cfg.LLM.Deployment)
	}

	cfg.Catalog.DatasetPath = firstNonEmpty(os.Getenv("DRINKINGMAN_DATASET"), cfg.Catalog.DatasetPath)
	cfg.Catalog.LookupURL = firstNonEmpty(os.Getenv("DRINKINGMAN_LOOKUP_URL"), cfg.Catalog.LookupURL)

	cfg.Database.Driver = firstNonEmpty(os.Getenv("DRINKINGMAN_DB_DRIVER"), cfg.Database.Driver)
	cfg.Database.URL = firstNonEmpty(os.Getenv("DRINKINGMAN_DB_URL"), os.Getenv("DATABASE_URL"), cfg.Database.URL)

	cfg.Auth.JWTSecret = firstNonEmpty(os.Getenv("DRINKINGMAN_JWT_SECRET"), cfg.Auth.JWTSecret)

	cfg.Log.Level = firstNonEmpty(os.Getenv("LOG_LEVEL"), cfg.Log.Level)
	cfg.Log.Format = firstNonEmpty(os.Getenv("LOG_FORMAT"), cfg.Log.Format)

	cfg.Metrics.Port = envInt("DRINKINGMAN_METRICS_PORT", cfg.Metrics.Port)
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	switch c.LLM.Provider {
	case ProviderGoogleAI, ProviderOpenAI, ProviderAzure:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.Auth.JWTSecret == developmentSecret && !c.IsDevelopment() {
		return errors.New("jwt secret must be set outside development")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("invalid catalog page size %d", c.Catalog.PageSize)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
