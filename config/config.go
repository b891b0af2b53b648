package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"loan-engine/calculator"
)

type RateLimitConfig struct {
	Requests int                         `yaml:"requests"`
	Window   time.Duration               `yaml:"window"`
	Routes   map[string]RouteLimitConfig `yaml:"routes"`
}

// RouteLimitConfig overrides the default limit for one request path, e.g.
// "/loan/compare".
type RouteLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"`
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	Addr         string              `yaml:"addr"`
	RedisAddr    string              `yaml:"redis_addr"`
	CachePrefix  string              `yaml:"cache_prefix"`
	CacheTTL     time.Duration       `yaml:"cache_ttl"`
	RateLimit    RateLimitConfig     `yaml:"rate_limit"`
	OpenAI       OpenAIConfig        `yaml:"openai"`
	LogLevel     string              `yaml:"log_level"`
	AllowOrigins []string            `yaml:"allow_origins"`
	Tax          calculator.TaxRules `yaml:"tax"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		CachePrefix: "loan-engine:",
		CacheTTL:    24 * time.Hour,
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   time.Minute,
		},
		OpenAI: OpenAIConfig{
			URL:     "https://api.openai.com/v1/chat/completions",
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		LogLevel:     "info",
		AllowOrigins: []string{"*"},
		Tax:          calculator.DefaultTaxRules(),
	}
}

// Load starts from Default, overlays the YAML file at path when it exists and
// finally applies environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.Addr = getEnv("LOAN_ENGINE_ADDR", cfg.Addr)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.RateLimit.Requests = getEnvInt("RATE_LIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("config: rate_limit requests and window must be positive")
	}
	for route, lim := range c.RateLimit.Routes {
		if lim.Requests <= 0 || lim.Window <= 0 {
			return fmt.Errorf("config: rate_limit for %s needs positive requests and window", route)
		}
	}
	if len(c.Tax.Slabs) == 0 {
		return errors.New("config: at least one tax slab is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
