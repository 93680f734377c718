package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Shopify  ShopifyConfig
	Matching MatchingConfig
	Invoice  InvoiceConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ShopifyConfig holds admin API client configuration. Store credentials are
// supplied per request and are never part of the configuration.
type ShopifyConfig struct {
	APIVersion        string        `mapstructure:"api_version"`
	PageLimit         int           `mapstructure:"page_limit"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// MatchingConfig holds catalog matching configuration
type MatchingConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"` // 0-100
	Debug         bool    `mapstructure:"debug"`
}

// InvoiceConfig holds draft order and invoice defaults
type InvoiceConfig struct {
	DefaultSubject string `mapstructure:"default_subject"`
	NotePrefix     string `mapstructure:"note_prefix"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ordersnap/")

	// Environment variable settings
	v.SetEnvPrefix("ORDERSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env without overriding ones already set
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Shopify defaults
	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.page_limit", 250)
	v.SetDefault("shopify.requests_per_second", 2.0)
	v.SetDefault("shopify.burst", 4)
	v.SetDefault("shopify.timeout", "30s")

	// Matching defaults
	v.SetDefault("matching.min_confidence", 60.0)
	v.SetDefault("matching.debug", false)

	// Invoice defaults
	v.SetDefault("invoice.default_subject", "Your invoice")
	v.SetDefault("invoice.note_prefix", "OrderSnap for")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set ORDERSNAP_SERVER_PORT)")
	}

	if config.Shopify.PageLimit < 1 || config.Shopify.PageLimit > 250 {
		return fmt.Errorf("shopify page limit must be between 1 and 250, got: %d", config.Shopify.PageLimit)
	}

	if config.Shopify.RequestsPerSecond <= 0 {
		return fmt.Errorf("shopify requests per second must be positive, got: %v", config.Shopify.RequestsPerSecond)
	}

	if config.Matching.MinConfidence <= 0 || config.Matching.MinConfidence > 100 {
		return fmt.Errorf("matching min confidence must be in (0, 100], got: %v", config.Matching.MinConfidence)
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log level is invalid: %w", err)
	}

	return nil
}
