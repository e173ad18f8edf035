package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig   `mapstructure:"server"`
	Database  DatabaseConfig `mapstructure:"database"`
	JWT       JWTConfig      `mapstructure:"jwt"`
	Security  SecurityConfig `mapstructure:"security"`
	Redis     RedisConfig    `mapstructure:"redis"`
	RateLimit RateLimit      `mapstructure:"rate_limit"`
	Log       LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	// Secret is read from the JWT_KEY environment variable and must
	// never be logged.
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type RedisConfig struct {
	// URL, when set, switches token revocation to the Redis store.
	URL string `mapstructure:"url"`
}

type RateLimit struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig reads config.yml (if present) and environment overrides.
// Loaded once at process start, immutable thereafter.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.request_timeout", 30*time.Second)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "repsy")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 168)
	viper.SetDefault("security.bcrypt_cost", 12)
	viper.SetDefault("rate_limit.requests_per_second", 100)
	viper.SetDefault("rate_limit.burst", 50)
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()
	viper.BindEnv("jwt.secret", "JWT_KEY")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.port", "DB_PORT")
	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("database.name", "DB_NAME")
	viper.BindEnv("redis.url", "REDIS_URL")

	if err := viper.ReadInConfig(); err != nil {
		// The file is optional; env vars and defaults are enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_KEY is not set")
	}

	return &config, nil
}

// TokenExpiry returns the configured token lifetime.
func (c *JWTConfig) TokenExpiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}
