package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Render    RenderConfig
	AI        AIConfig
	Cache     CacheConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// RenderConfig holds render engine configuration.
type RenderConfig struct {
	Engine     string `envconfig:"RENDER_ENGINE" default:"chrome"` // "chrome" or "static"
	TimeoutMS  int    `envconfig:"RENDER_TIMEOUT_MS" default:"45000"`
	UserAgent  string `envconfig:"RENDER_USER_AGENT" default:"Mozilla/5.0 (compatible; sitelens/1.0)"`
	ChromePath string `envconfig:"CHROME_PATH" default:""`
}

// AIConfig holds model endpoint configuration.
type AIConfig struct {
	Endpoint  string `envconfig:"AI_ENDPOINT" default:""`
	APIKey    string `envconfig:"AI_API_KEY" default:""`
	Model     string `envconfig:"AI_MODEL" default:"vision-default"`
	Format    string `envconfig:"AI_FORMAT" default:"json_schema"`
	TimeoutMS int    `envconfig:"AI_TIMEOUT_MS" default:"60000"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	Enabled       bool   `envconfig:"CACHE_ENABLED" default:"true"`
	RedisAddress  string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	TTLSeconds    int    `envconfig:"CACHE_TTL_SECONDS" default:"3600"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// RenderTimeout returns the render timeout as a duration.
func (c RenderConfig) RenderTimeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Timeout returns the model call timeout as a duration.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Render: RenderConfig{
			Engine:    "chrome",
			TimeoutMS: 45000,
			UserAgent: "Mozilla/5.0 (compatible; sitelens/1.0)",
		},
		AI: AIConfig{
			Model:     "vision-default",
			Format:    "json_schema",
			TimeoutMS: 60000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}
