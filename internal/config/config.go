package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// BaseURL is where the web client lives, deep links point here
	BaseURL string `mapstructure:"BASE_URL"`

	// AllowedOrigins is a comma separated list of extra browser origins
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	// Discord is optional; without a token no bot runs and pushes only get logged
	DiscordToken         string `mapstructure:"DISCORD_TOKEN"`
	DiscordApplicationID string `mapstructure:"DISCORD_APP_ID"`
	DiscordGuildID       string `mapstructure:"DISCORD_GUILD_ID"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	TxMaxRetries int `mapstructure:"TX_MAX_RETRIES"`
	MaxPlayers   int `mapstructure:"MAX_PLAYERS"`

	// Inbound websocket frames allowed per second per connection, and the burst on top
	WSRateLimit float64 `mapstructure:"WS_RATE_LIMIT"`
	WSRateBurst int     `mapstructure:"WS_RATE_BURST"`

	SweepMaxAge   time.Duration `mapstructure:"SWEEP_MAX_AGE"`
	SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL"`
}

var defaults = map[string]any{
	"REDIS_ADDR":       "localhost:6379",
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
	"HTTP_ADDR":        ":8080",
	"BASE_URL":         "http://localhost:8080",
	"ALLOWED_ORIGINS":  "",
	"JWT_SECRET":       "",
	"TOKEN_TTL":        24 * time.Hour,
	"DISCORD_TOKEN":    "",
	"DISCORD_APP_ID":   "",
	"DISCORD_GUILD_ID": "",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "console",
	"TX_MAX_RETRIES":   25,
	"MAX_PLAYERS":      12,
	"WS_RATE_LIMIT":    5.0,
	"WS_RATE_BURST":    20,
	"SWEEP_MAX_AGE":    24 * time.Hour,
	"SWEEP_INTERVAL":   time.Hour,
}

// Load reads configuration from a .env file in dir, if there is one, and
// from the environment, which wins
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Debug().Str("dir", dir).Msg(".env file not found, using environment only")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that have no usable default
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return errors.New("REDIS_ADDR cannot be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("BASE_URL must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.TxMaxRetries <= 0 {
		return errors.New("TX_MAX_RETRIES must be positive")
	}
	if c.SweepMaxAge <= 0 {
		return errors.New("SWEEP_MAX_AGE must be positive")
	}
	return nil
}

// Origins returns the browser origins the gateway accepts: the origin of
// BASE_URL followed by ALLOWED_ORIGINS
func (c *Config) Origins() []string {
	origins := []string{strings.TrimRight(c.BaseURL, "/")}
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, strings.TrimRight(origin, "/"))
		}
	}
	return origins
}
