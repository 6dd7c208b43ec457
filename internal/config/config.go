package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"

	"github.com/aescanero/dago-template-engine/internal/eval"
)

// Config holds all configuration for the template engine
type Config struct {
	// Logging configuration
	LogLevel string `env:"TEMPLATE_LOG_LEVEL" envDefault:"info"`

	// Compiled-template cache
	CacheEnabled bool `env:"TEMPLATE_CACHE_ENABLED" envDefault:"true"`

	// OpenTelemetry metrics through the global meter provider
	MetricsEnabled bool `env:"TEMPLATE_METRICS_ENABLED" envDefault:"false"`

	// Eval helper configuration
	EvalBackend   string        `env:"TEMPLATE_EVAL_BACKEND" envDefault:""`
	EvalTimeout   time.Duration `env:"TEMPLATE_EVAL_TIMEOUT" envDefault:"1s"`
	EvalCostLimit uint64        `env:"TEMPLATE_EVAL_COST_LIMIT" envDefault:"10000"`

	// Precompiled store configuration
	RedisAddr     string `env:"TEMPLATE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"TEMPLATE_REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"TEMPLATE_REDIS_DB" envDefault:"0"`
	StorePrefix   string `env:"TEMPLATE_STORE_PREFIX" envDefault:"template:precompiled:"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("TEMPLATE_LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if !eval.IsValidBackend(c.EvalBackend) {
		return fmt.Errorf("TEMPLATE_EVAL_BACKEND must be empty, cel or expr")
	}

	if c.EvalTimeout <= 0 {
		return fmt.Errorf("TEMPLATE_EVAL_TIMEOUT must be positive")
	}

	if c.EvalCostLimit == 0 {
		return fmt.Errorf("TEMPLATE_EVAL_COST_LIMIT must be positive")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("TEMPLATE_REDIS_ADDR is required")
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("TEMPLATE_REDIS_DB must be non-negative")
	}

	if c.StorePrefix == "" {
		return fmt.Errorf("TEMPLATE_STORE_PREFIX is required")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// RedisOptions returns Redis client options for the precompiled store
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogLevel=%s, CacheEnabled=%v, MetricsEnabled=%v, EvalBackend=%q, EvalTimeout=%s, EvalCostLimit=%d, "+
			"RedisAddr=%s, RedisDB=%d, StorePrefix=%s}",
		c.LogLevel,
		c.CacheEnabled,
		c.MetricsEnabled,
		c.EvalBackend,
		c.EvalTimeout,
		c.EvalCostLimit,
		c.RedisAddr,
		c.RedisDB,
		c.StorePrefix,
	)
}
