package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// APIConfig points at the remote products service.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Burst     int           `mapstructure:"burst"`
}

type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	TTL        time.Duration `mapstructure:"ttl"`
	Store      string        `mapstructure:"store"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig limits console actions per client IP.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

const envPrefix = "PRODUCT_CONSOLE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", time.Minute)
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookie_name", "console_session")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ratelimit.rps", 1)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.development", false)
}

// Load reads console.yaml (if any) from the usual places and applies
// PRODUCT_CONSOLE_* environment overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("console")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "product-console"))
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// it's fine for the file to be missing, the defaults apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("session.store must be memory or redis, got %q", c.Session.Store)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	return nil
}
