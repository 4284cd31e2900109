package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/cfi2017/modio-go/modio"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".modget"))
		}

		v.AddConfigPath("/etc/modget/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", modio.DefaultHost)
	v.SetDefault("api.user_agent", "modget")
	v.SetDefault("api.timeout", 30)

	// Download defaults
	v.SetDefault("download.dir", ".")
	v.SetDefault("download.concurrency", modio.DefaultDownloadConcurrency)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.APIKey == "" && cfg.API.Token == "" {
		return fmt.Errorf("either api.api_key or api.token must be set")
	}

	if cfg.API.APIKey != "" && cfg.API.Token != "" {
		return fmt.Errorf("api.api_key and api.token are mutually exclusive")
	}

	if cfg.Download.Concurrency < 0 {
		return fmt.Errorf("download.concurrency must not be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Credentials converts the API section into client credentials.
func (c *Config) Credentials() modio.Credentials {
	if c.API.Token != "" {
		return modio.Token(c.API.Token)
	}
	return modio.APIKey(c.API.APIKey)
}
