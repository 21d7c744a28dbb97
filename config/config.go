package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppEnv         = "dev"
	defaultPort           = "8000"
	defaultModel          = "gpt-4o-mini"
	defaultTimeout        = 60 * time.Second
	defaultMaxRetries     = 2
	defaultLogLevel       = "info"
	defaultAllowedOrigins = "http://localhost:5173"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	CrossCheck     bool

	OpenAI OpenAIConfig
}

type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// AppEnv returns APP_ENV, falling back to "dev".
func AppEnv() string {
	return getEnv("APP_ENV", defaultAppEnv)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the process environment. A missing API key is a startup failure.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   AppEnv(),
		Port:     getEnv("PORT", defaultPort),
		LogLevel: getEnv("LOG_LEVEL", defaultLogLevel),
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnv("OPENAI_MODEL", defaultModel),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	origins, err := parseOrigins(getEnv("ALLOWED_ORIGINS", defaultAllowedOrigins))
	if err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = origins

	timeout, err := time.ParseDuration(getEnv("OPENAI_TIMEOUT", defaultTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid OPENAI_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid OPENAI_TIMEOUT: must be positive, got %s", timeout)
	}
	cfg.OpenAI.Timeout = timeout

	retries, err := strconv.Atoi(getEnv("OPENAI_MAX_RETRIES", strconv.Itoa(defaultMaxRetries)))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("invalid OPENAI_MAX_RETRIES: %q", os.Getenv("OPENAI_MAX_RETRIES"))
	}
	cfg.OpenAI.MaxRetries = retries

	crossCheck, err := strconv.ParseBool(getEnv("SENTIMENT_CROSSCHECK", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SENTIMENT_CROSSCHECK: %w", err)
	}
	cfg.CrossCheck = crossCheck

	return cfg, nil
}

func parseOrigins(raw string) ([]string, error) {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin == "" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid origin in ALLOWED_ORIGINS: %q", origin)
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		return nil, errors.New("ALLOWED_ORIGINS must contain at least one origin")
	}
	return origins, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
