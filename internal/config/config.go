package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// ChatConfig selects the completion backend.
type ChatConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "claude"
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key,omitempty"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// AugmentConfig tunes the internet-augmentation layer.
type AugmentConfig struct {
	NewsCount   int    `yaml:"news_count"`
	SearchCount int    `yaml:"search_count"`
	PageLength  int    `yaml:"page_length"`
	Timeout     string `yaml:"timeout"`
}

// KeysConfig holds data-provider API keys; each falls back to its
// environment variable when empty.
type KeysConfig struct {
	Serp    string `yaml:"serpapi,omitempty"`
	Weather string `yaml:"openweathermap,omitempty"`
	News    string `yaml:"newsapi,omitempty"`
	Stock   string `yaml:"alphavantage,omitempty"`
}

// HistoryConfig controls conversation persistence.
type HistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Retention string `yaml:"retention"`
}

type Config struct {
	Chat    ChatConfig    `yaml:"chat"`
	Augment AugmentConfig `yaml:"augment"`
	Keys    KeysConfig    `yaml:"keys,omitempty"`
	History HistoryConfig `yaml:"history"`
}

// ChatKey resolves the completion API key from config or environment,
// matching the configured provider.
func (c *Config) ChatKey() string {
	if c.Chat.APIKey != "" {
		return c.Chat.APIKey
	}
	if c.Chat.Provider == "claude" {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func resolve(configured, envVar string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(envVar)
}

func (c *Config) SerpKey() string    { return resolve(c.Keys.Serp, "SERPAPI_KEY") }
func (c *Config) WeatherKey() string { return resolve(c.Keys.Weather, "OPENWEATHERMAP_KEY") }
func (c *Config) NewsKey() string    { return resolve(c.Keys.News, "NEWSAPI_KEY") }
func (c *Config) StockKey() string   { return resolve(c.Keys.Stock, "ALPHAVANTAGE_KEY") }

// AugmentTimeout parses the per-request fetch timeout, defaulting to 10s.
func (c *Config) AugmentTimeout() time.Duration {
	d, err := time.ParseDuration(c.Augment.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// RetentionDuration parses history retention, supporting "Nd" day syntax.
func (c *Config) RetentionDuration() time.Duration {
	const fallback = 90 * 24 * time.Hour
	if c.History.Retention == "" {
		return fallback
	}
	if n := len(c.History.Retention); n > 1 && c.History.Retention[n-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.History.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.History.Retention)
	if err != nil {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "sunday", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.DataHome, "sunday", "history.db")
}

// LoadEnv reads .env files the way the desktop build did: current directory
// first, then the config directory. Missing files are fine.
func LoadEnv() {
	godotenv.Load()
	godotenv.Load(filepath.Join(xdg.ConfigHome, "sunday", ".env"))
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, falling back to (and writing) the embedded
// defaults on first run.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.Chat.Provider {
	case "", "openai", "claude":
	default:
		return fmt.Errorf("chat provider %q: unknown (valid: openai, claude)", cfg.Chat.Provider)
	}
	if cfg.Chat.Temperature < 0 {
		return fmt.Errorf("chat temperature must not be negative")
	}
	if cfg.Augment.NewsCount < 0 || cfg.Augment.SearchCount < 0 {
		return fmt.Errorf("augment counts must not be negative")
	}
	if cfg.Augment.PageLength < 0 {
		return fmt.Errorf("augment page_length must not be negative")
	}
	if cfg.Augment.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Augment.Timeout); err != nil {
			return fmt.Errorf("augment timeout: %w", err)
		}
	}
	return nil
}
