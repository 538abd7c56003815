package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every runtime setting. It is loaded once in main and
// passed explicitly to whatever needs it; there is no package-level
// state.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	MySQLDSN  string `mapstructure:"MYSQL_DSN"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	TokenSecret          string `mapstructure:"TOKEN_SECRET"`
	TokenDurationMinutes int    `mapstructure:"TOKEN_DURATION_MINUTES"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	RateLimitRequests      int `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitPeriodSeconds int `mapstructure:"RATE_LIMIT_PERIOD"`
}

// Load reads envFile when it exists, then lets real environment
// variables override it.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/grocery?parseTime=true")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("TOKEN_SECRET", "dev-secret-key-change-in-production")
	v.SetDefault("TOKEN_DURATION_MINUTES", 30)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD", 60)

	v.AutomaticEnv()

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) TokenDuration() time.Duration {
	return time.Duration(c.TokenDurationMinutes) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitPeriodSeconds) * time.Second
}

func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
