package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Stella-M-560/currency-bot-api/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Upstream struct {
		BaseURL   string        `yaml:"base_url" default:"https://api.frankfurter.app"`
		Timeout   time.Duration `yaml:"timeout" default:"5s"`
		UserAgent string        `yaml:"user_agent" default:"currency-bot-api/1.0"`
		Retry     struct {
			MaxAttempts int             `yaml:"max_attempts" default:"2"`
			Backoff     []time.Duration `yaml:"backoff"`
		} `yaml:"retry"`
	} `yaml:"upstream"`
	Cache struct {
		Backend       string        `yaml:"backend" default:"memory"` // none, memory, redis, layered
		LatestTTL     time.Duration `yaml:"latest_ttl" default:"5m"`
		HistoryTTL    time.Duration `yaml:"history_ttl" default:"12h"`
		WriteTimeout  time.Duration `yaml:"write_timeout" default:"2s"`
		MemoryItems   int           `yaml:"memory_items" default:"2000"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"10m"`
		Redis         struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Addr     string `yaml:"addr"` // host:port, overrides host/port
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"fxbot"`

			PoolSize     int           `yaml:"pool_size" default:"10"`
			MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
			PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	History struct {
		Pivot           string `yaml:"pivot" default:"EUR"`
		MinPoints       int    `yaml:"min_points" default:"100"`
		ShrinkMinPoints int    `yaml:"shrink_min_points" default:"50"`
		ShrinkYears     []int  `yaml:"shrink_years"`
		EarliestDate    string `yaml:"earliest_date" default:"1999-01-04"`
		Timezone        string `yaml:"timezone" default:"Asia/Shanghai"`
	} `yaml:"history"`
}

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	c.applySliceDefaults()
	return &c
}

// Load reads and parses a YAML configuration file on top of defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applySliceDefaults()
	c.normalize()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads .env (if present), then the YAML file, then applies environment overrides.
// A missing YAML file falls back to defaults so the binary can run from env alone.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		c = Default()
	}

	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Cache.Redis.Port = util.ParseIntDefault(v, c.Cache.Redis.Port)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("HISTORY_PIVOT"); v != "" {
		c.History.Pivot = v
	}
	if v := os.Getenv("HISTORY_SHRINK_YEARS"); v != "" {
		years := make([]int, 0, 3)
		for _, s := range util.SplitCSV(v) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("HISTORY_SHRINK_YEARS: %w", err)
			}
			years = append(years, n)
		}
		c.History.ShrinkYears = years
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applySliceDefaults() {
	if len(c.Upstream.Retry.Backoff) == 0 {
		c.Upstream.Retry.Backoff = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond}
	}
	if len(c.History.ShrinkYears) == 0 {
		c.History.ShrinkYears = []int{5, 3, 1}
	}
}

func (c *Config) normalize() {
	c.History.Pivot = strings.ToUpper(strings.TrimSpace(c.History.Pivot))
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	if c.Upstream.Retry.MaxAttempts < 1 {
		return fmt.Errorf("upstream.retry.max_attempts must be >= 1")
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, layered, got '%s'", c.Cache.Backend)
	}
	if !isCurrencyCode(c.History.Pivot) {
		return fmt.Errorf("history.pivot must be an ISO currency code, got '%s'", c.History.Pivot)
	}
	if c.History.MinPoints < 1 || c.History.ShrinkMinPoints < 1 {
		return fmt.Errorf("history point thresholds must be >= 1")
	}
	for _, y := range c.History.ShrinkYears {
		if y < 1 {
			return fmt.Errorf("history.shrink_years must be positive, got %d", y)
		}
	}
	if _, ok := util.ParseDate(c.History.EarliestDate); !ok {
		return fmt.Errorf("history.earliest_date is not a date: '%s'", c.History.EarliestDate)
	}
	if _, err := time.LoadLocation(c.History.Timezone); err != nil {
		return fmt.Errorf("history.timezone: %w", err)
	}
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Location returns the zone used to decide "today" for range resolution.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.History.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Earliest returns history.earliest_date as a calendar date.
func (c *Config) Earliest() civil.Date {
	return util.ParseDateDefault(c.History.EarliestDate, civil.Date{Year: 1999, Month: time.January, Day: 4})
}
