package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Page identifies the active top-level view.
type Page int

const (
	PageWelcome Page = iota
	PageDashboard
	PageGenerate
	PageLoad
)

// Config represents the application configuration
type Config struct {
	APIURL         string `json:"api_url" envconfig:"OCT_WALLET_API_URL"`
	TimeoutSeconds int    `json:"timeout_seconds" envconfig:"OCT_WALLET_TIMEOUT_SECONDS"`
	Logger         bool   `json:"logger" envconfig:"OCT_WALLET_LOGGER"`
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		TimeoutSeconds: 15,
		Logger:         false,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the config from the specified path, then applies environment
// overrides. Missing or invalid files fall back to defaults.
func Load(path string) Config {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := json.Unmarshal(data, &fileCfg); err == nil {
			if fileCfg.APIURL != "" {
				cfg.APIURL = fileCfg.APIURL
			}
			if fileCfg.TimeoutSeconds > 0 {
				cfg.TimeoutSeconds = fileCfg.TimeoutSeconds
			}
			cfg.Logger = fileCfg.Logger
		}
	}

	// env wins over file
	var envCfg Config
	if err := envconfig.Process("", &envCfg); err == nil {
		if envCfg.APIURL != "" {
			cfg.APIURL = envCfg.APIURL
		}
		if envCfg.TimeoutSeconds > 0 {
			cfg.TimeoutSeconds = envCfg.TimeoutSeconds
		}
		if envCfg.Logger {
			cfg.Logger = true
		}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}
