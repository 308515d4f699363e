// Package config provides configuration management for nucleus.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	// DefaultGeminiModel is the generative provider model alias.
	DefaultGeminiModel = "gemini-2.5-flash"

	// DefaultPerplexityModel is the research provider model.
	DefaultPerplexityModel = "sonar-pro"
)

// Config holds the application configuration.
type Config struct {
	// Provider settings
	GeminiAPIKey     string `json:"gemini_api_key"`
	GeminiModel      string `json:"gemini_model"`
	PerplexityAPIKey string `json:"perplexity_api_key"`
	PerplexityModel  string `json:"perplexity_model"`

	// Provider timeouts in seconds.
	ProviderTimeoutSecs int `json:"provider_timeout_secs"`

	// Database settings
	DatabaseDSN string `json:"database_dsn"`
	MaxConns    int    `json:"max_conns"`

	// Cache settings
	CacheMaxEntries        int `json:"cache_max_entries"`
	CacheSweepIntervalSecs int `json:"cache_sweep_interval_secs"`

	// RDAP settings
	RDAPBaseURL string `json:"rdap_base_url"`
}

// ProviderTimeout returns the configured provider deadline.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSecs) * time.Second
}

// SweepInterval returns the configured cache sweep interval.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.CacheSweepIntervalSecs) * time.Second
}

// DataDir returns the data directory path (~/.nucleus).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nucleus")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.json")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings creates a default settings file if it doesn't exist.
func EnsureSettings() error {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	defaultSettings := `{
  "NUCLEUS_GEMINI_MODEL": "gemini-2.5-flash",
  "NUCLEUS_PERPLEXITY_MODEL": "sonar-pro",
  "NUCLEUS_PROVIDER_TIMEOUT_SECS": 60,
  "NUCLEUS_CACHE_MAX_ENTRIES": 1000
}
`
	return os.WriteFile(path, []byte(defaultSettings), 0600)
}

// EnsureAll ensures all required directories and files exist.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	return EnsureSettings()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		GeminiModel:            DefaultGeminiModel,
		PerplexityModel:        DefaultPerplexityModel,
		ProviderTimeoutSecs:    60,
		MaxConns:               10,
		CacheMaxEntries:        1000,
		CacheSweepIntervalSecs: 60,
	}
}

// Load reads the settings file and merges it over the defaults, then
// applies environment overrides. A missing or unparseable settings file
// degrades to defaults; credentials usually arrive via environment.
func Load() (*Config, error) {
	return LoadFrom(SettingsPath())
}

// LoadFrom loads configuration from a specific settings file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		applyEnv(cfg)
		return cfg, nil
	}

	if v, ok := settings["NUCLEUS_GEMINI_API_KEY"].(string); ok {
		cfg.GeminiAPIKey = v
	}
	if v, ok := settings["NUCLEUS_GEMINI_MODEL"].(string); ok && v != "" {
		cfg.GeminiModel = v
	}
	if v, ok := settings["NUCLEUS_PERPLEXITY_API_KEY"].(string); ok {
		cfg.PerplexityAPIKey = v
	}
	if v, ok := settings["NUCLEUS_PERPLEXITY_MODEL"].(string); ok && v != "" {
		cfg.PerplexityModel = v
	}
	if v, ok := settings["NUCLEUS_PROVIDER_TIMEOUT_SECS"].(float64); ok && v > 0 {
		cfg.ProviderTimeoutSecs = int(v)
	}
	if v, ok := settings["NUCLEUS_DATABASE_DSN"].(string); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := settings["NUCLEUS_MAX_CONNS"].(float64); ok && v > 0 {
		cfg.MaxConns = int(v)
	}
	if v, ok := settings["NUCLEUS_CACHE_MAX_ENTRIES"].(float64); ok && v > 0 {
		cfg.CacheMaxEntries = int(v)
	}
	if v, ok := settings["NUCLEUS_CACHE_SWEEP_INTERVAL_SECS"].(float64); ok && v > 0 {
		cfg.CacheSweepIntervalSecs = int(v)
	}
	if v, ok := settings["NUCLEUS_RDAP_BASE_URL"].(string); ok {
		cfg.RDAPBaseURL = v
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays NUCLEUS_* environment variables. Environment wins
// over the settings file so deployments can override without editing it.
func applyEnv(cfg *Config) {
	if v := os.Getenv("NUCLEUS_GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("NUCLEUS_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("NUCLEUS_PERPLEXITY_API_KEY"); v != "" {
		cfg.PerplexityAPIKey = v
	}
	if v := os.Getenv("NUCLEUS_PERPLEXITY_MODEL"); v != "" {
		cfg.PerplexityModel = v
	}
	if v := os.Getenv("NUCLEUS_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("NUCLEUS_RDAP_BASE_URL"); v != "" {
		cfg.RDAPBaseURL = v
	}
	if v := envInt("NUCLEUS_PROVIDER_TIMEOUT_SECS"); v > 0 {
		cfg.ProviderTimeoutSecs = v
	}
	if v := envInt("NUCLEUS_MAX_CONNS"); v > 0 {
		cfg.MaxConns = v
	}
	if v := envInt("NUCLEUS_CACHE_MAX_ENTRIES"); v > 0 {
		cfg.CacheMaxEntries = v
	}
	if v := envInt("NUCLEUS_CACHE_SWEEP_INTERVAL_SECS"); v > 0 {
		cfg.CacheSweepIntervalSecs = v
	}
}

func envInt(key string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
