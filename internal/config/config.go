package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"

	"forum/backend/internal/logger"
)

// Config holds the application configuration.
type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`
	GinMode    string `mapstructure:"GIN_MODE"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	RegisterIssuesToken bool    `mapstructure:"AUTH_REGISTER_ISSUES_TOKEN"`
	AuthRateLimit       float64 `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateBurst       int     `mapstructure:"AUTH_RATE_BURST"`

	// Comma separated IPs or CIDRs allowed to set X-Forwarded-For. Empty trusts no proxy.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	SeedOnStart bool   `mapstructure:"SEED_ON_START"`
	SeedFile    string `mapstructure:"SEED_FILE"`
}

var defaults = map[string]interface{}{
	"SERVER_ADDR":                ":8080",
	"GIN_MODE":                   "debug",
	"DATABASE_URL":               "",
	"JWT_SECRET":                 "",
	"JWT_ISSUER":                 "forum",
	"JWT_TTL":                    "24h",
	"AUTH_REGISTER_ISSUES_TOKEN": true,
	"AUTH_RATE_LIMIT":            5,
	"AUTH_RATE_BURST":            10,
	"TRUSTED_PROXIES":            "",
	"LOG_LEVEL":                  "info",
	"LOG_PRETTY":                 false,
	"SEED_ON_START":              true,
	"SEED_FILE":                  "",
}

// Load reads the configuration from a .env file in dir and from environment
// variables. Environment variables win over the file. A missing file is not an error.
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
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		logger.Warn().Msg(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every missing or out-of-range setting at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DatabaseURL) == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL must be positive")
	}
	if c.AuthRateLimit <= 0 {
		problems = append(problems, "AUTH_RATE_LIMIT must be positive")
	}
	if c.AuthRateBurst <= 0 {
		problems = append(problems, "AUTH_RATE_BURST must be positive")
	}

	for _, proxy := range c.TrustedProxies {
		if !validProxy(proxy) {
			problems = append(problems, fmt.Sprintf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}
