package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/Aleksandr-Gamble/scale-serp/pkg/errors"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("SERP")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid port: %d", port))
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		// Database is optional; usage accounting is disabled without it
		fmt.Println("Warning: No database path configured, usage accounting disabled")
	}

	return validateAPIKey()
}

// validateAPIKey warns when the ScaleSERP key is a placeholder and fails in
// production. Empty keys are tolerated everywhere: requests built with them
// are valid, the remote service is the one that rejects them.
func validateAPIKey() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
	}

	apiKey := viper.GetString("scaleserp.api_key")
	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			if isProduction {
				return apperrors.ConfigError("scaleserp.api_key", "cannot use placeholder values in production")
			}
			fmt.Println("Warning: ScaleSERP API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid port: %d", c.Server.Port))
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/serp.db")
	viper.SetDefault("database.verbose", false)

	// ScaleSERP defaults
	viper.SetDefault("scaleserp.base_url", "https://api.scaleserp.com")
	viper.SetDefault("scaleserp.timeout", 10*time.Second)
	viper.SetDefault("scaleserp.retry_attempts", 3)
	viper.SetDefault("scaleserp.retry_backoff", 1*time.Second)
	viper.SetDefault("scaleserp.requests_per_minute", 60)
	viper.SetDefault("scaleserp.burst_size", 5)
	viper.SetDefault("scaleserp.user_agent", "scale-serp/1.0")

	// Usage accounting defaults
	viper.SetDefault("usage.enabled", true)
	viper.SetDefault("usage.recent_limit", 50)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]int{
		"search":    5,
		"locations": 10,
		"default":   20,
	})

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
