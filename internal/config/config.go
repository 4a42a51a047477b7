// Package config holds the tiendita configuration: where the storefront
// API lives, how to reach the business on WhatsApp when the spreadsheet
// does not say, and logging behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all tiendita configuration.
type Config struct {
	// API configuration
	API APIConfig `yaml:"api"`

	// Store-side fallbacks, used when the catalog's config sheet is silent
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the spreadsheet-backed storefront API.
type APIConfig struct {
	// URL of the spreadsheet web-app endpoint (GET catalog, POST orders).
	URL string `yaml:"url"`

	// Timeout per HTTP request, e.g. "30s".
	Timeout string `yaml:"timeout"`

	// MaxRetries for the catalog fetch.
	MaxRetries int `yaml:"max_retries"`
}

// StoreConfig configures local fallbacks for the store settings sheet.
type StoreConfig struct {
	// WhatsAppContact overrides the hard-coded fallback business number
	// used when the store's settings sheet has none. The sheet wins when
	// it configures one.
	WhatsAppContact string `yaml:"whatsapp_contact"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout:    "30s",
			MaxRetries: 2,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultStateDir returns the directory holding config.yaml and logs:
// $TIENDITA_HOME if set, else ~/.tiendita.
func DefaultStateDir() string {
	if dir := os.Getenv("TIENDITA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tiendita"
	}
	return filepath.Join(home, ".tiendita")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultStateDir(), "config.yaml")
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment overrides apply last either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TIENDITA_API_URL"); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv("TIENDITA_WHATSAPP"); v != "" {
		c.Store.WhatsAppContact = v
	}
	if v := os.Getenv("TIENDITA_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || strings.EqualFold(v, "true")
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("api.url is required (set it in %s or via TIENDITA_API_URL)", DefaultPath())
	}
	if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		return fmt.Errorf("api.url must be an http(s) URL, got %q", c.API.URL)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses API.Timeout, defaulting to 30s when empty.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}
