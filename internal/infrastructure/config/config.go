package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Completion CompletionConfig
	Stripe     StripeConfig
	Sentry     SentryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URL            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PoolSize int
}

// CompletionConfig holds the text-completion upstream configuration
type CompletionConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// StripeConfig holds Stripe webhook configuration
type StripeConfig struct {
	WebhookSecret string
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env file is optional for production (env vars are used)
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetInt("server.port"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Mongo: MongoConfig{
			URL:            viper.GetString("mongo.url"),
			Database:       viper.GetString("mongo.database"),
			ConnectTimeout: viper.GetDuration("mongo.connect_timeout"),
		},
		Redis: RedisConfig{
			URL:      viper.GetString("redis.url"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Completion: CompletionConfig{
			BaseURL:    viper.GetString("completion.base_url"),
			APIKey:     viper.GetString("completion.api_key"),
			Model:      viper.GetString("completion.model"),
			Timeout:    viper.GetDuration("completion.timeout"),
			MaxRetries: viper.GetInt("completion.max_retries"),
		},
		Stripe: StripeConfig{
			WebhookSecret: viper.GetString("stripe.webhook_secret"),
		},
		Sentry: SentryConfig{
			DSN:         viper.GetString("sentry.dsn"),
			Environment: viper.GetString("sentry.environment"),
			Release:     viper.GetString("sentry.release"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)

	// Mongo defaults
	viper.SetDefault("mongo.database", "coaching")
	viper.SetDefault("mongo.connect_timeout", 10*time.Second)

	// Redis defaults
	viper.SetDefault("redis.pool_size", 10)

	// Completion defaults
	viper.SetDefault("completion.model", "gpt-4o-mini")
	viper.SetDefault("completion.timeout", 60*time.Second)
	viper.SetDefault("completion.max_retries", 2)

	// Sentry defaults
	viper.SetDefault("sentry.environment", "production")
}

func validate(cfg *Config) error {
	if cfg.Mongo.URL == "" {
		return fmt.Errorf("MONGO_URL is required")
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if cfg.Completion.BaseURL != "" && cfg.Completion.APIKey == "" {
		return fmt.Errorf("COMPLETION_API_KEY is required when COMPLETION_BASE_URL is set")
	}
	return nil
}
