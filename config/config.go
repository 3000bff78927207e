package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Simulation SimulationConfig
	Classifier ClassifierConfig
	NATS       NATSConfig
	Logging    LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether error details must be hidden from clients
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// CacheConfig holds analysis cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// SimulationConfig seeds the simulated competitor and market feeds
type SimulationConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// ClassifierConfig holds the optional text classifier configuration
type ClassifierConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NATSConfig holds the event bus configuration. An empty URL disables events.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// LoadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadEnvFile() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/productlens/")

	// PRODUCTLENS_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix("PRODUCTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
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

// setDefaults sets default configuration values. Every key gets a default so
// AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("simulation.seed", 1)

	v.SetDefault("classifier.enabled", false)
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.base_url", "https://api-inference.huggingface.co")
	v.SetDefault("classifier.model", "martin-ha/toxic-comment-model")
	v.SetDefault("classifier.timeout", "5s")

	v.SetDefault("nats.url", "")

	v.SetDefault("logging.level", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Classifier.Enabled && config.Classifier.APIKey == "" {
		return fmt.Errorf("classifier API key is required when the classifier is enabled (set PRODUCTLENS_CLASSIFIER_API_KEY)")
	}

	if config.Classifier.Enabled && config.Classifier.Timeout <= 0 {
		return fmt.Errorf("classifier timeout must be positive")
	}

	return nil
}
