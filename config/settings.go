// Package config loads the recipe search service configuration from YAML
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Jobs    JobsConfig    `yaml:"jobs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
}

// DataConfig lists where recipes are loaded from. Each path is a JSON file
// or a directory of JSON files.
type DataConfig struct {
	RecipePaths   []string `yaml:"recipePaths"`
	AnalyticsFile string   `yaml:"analyticsFile"` // Empty keeps analytics in memory only
}

// SearchConfig holds limits applied at the API edge.
type SearchConfig struct {
	DefaultSuggestionLimit int `yaml:"defaultSuggestionLimit"`
	MaxSuggestionLimit     int `yaml:"maxSuggestionLimit"`
	MaxQueryLength         int `yaml:"maxQueryLength"`
}

// RedisConfig holds Redis connection and caching parameters.
// An empty Addr disables the result cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// JobsConfig controls background reload jobs.
type JobsConfig struct {
	MaxWorkers int `yaml:"maxWorkers"`
}

// CacheEnabled reports whether a Redis address is configured.
func (r RedisConfig) CacheEnabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// Load reads a YAML config file (if provided), applies environment-variable
// overrides, fills remaining zero values with defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// DefaultConfig returns a Config suitable for local development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Data: DataConfig{
			RecipePaths: []string{"data/recipes.json"},
		},
		Search: SearchConfig{
			DefaultSuggestionLimit: 8,
			MaxSuggestionLimit:     50,
			MaxQueryLength:         256,
		},
		Redis: RedisConfig{
			PoolSize: 10,
			CacheTTL: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Jobs: JobsConfig{
			MaxWorkers: 1,
		},
	}
}

// applyEnvOverrides reads RS_* environment variables and overrides the
// corresponding config fields. Unparsable numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RS_DATA_RECIPE_PATHS"); v != "" {
		cfg.Data.RecipePaths = splitList(v)
	}
	if v := os.Getenv("RS_DATA_ANALYTICS_FILE"); v != "" {
		cfg.Data.AnalyticsFile = v
	}
	if v := os.Getenv("RS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("RS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("RS_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("RS_REDIS_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Redis.CacheTTL = ttl
		}
	}
	if v := os.Getenv("RS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RS_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("RS_JOBS_MAX_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Jobs.MaxWorkers = workers
		}
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ApplyDefaults fills zero values left by a partial config file.
func (cfg *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if cfg.Search.DefaultSuggestionLimit == 0 {
		cfg.Search.DefaultSuggestionLimit = defaults.Search.DefaultSuggestionLimit
	}
	if cfg.Search.MaxSuggestionLimit == 0 {
		cfg.Search.MaxSuggestionLimit = defaults.Search.MaxSuggestionLimit
	}
	if cfg.Search.MaxQueryLength == 0 {
		cfg.Search.MaxQueryLength = defaults.Search.MaxQueryLength
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = defaults.Redis.PoolSize
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = defaults.Redis.CacheTTL
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaults.Metrics.Path
	}
	if cfg.Jobs.MaxWorkers == 0 {
		cfg.Jobs.MaxWorkers = defaults.Jobs.MaxWorkers
	}
	if cfg.Data.RecipePaths == nil {
		cfg.Data.RecipePaths = []string{}
	}
}

// Validate returns one message per problem found; an empty result means valid.
func (cfg *Config) Validate() []string {
	var problems []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", cfg.Server.Port))
	}
	if cfg.Server.MaxBodyBytes < 0 {
		problems = append(problems, "server.maxBodyBytes cannot be negative")
	}
	if len(cfg.Data.RecipePaths) == 0 {
		problems = append(problems, "data.recipePaths must name at least one file or directory")
	}
	for _, path := range cfg.Data.RecipePaths {
		if strings.TrimSpace(path) == "" {
			problems = append(problems, "data.recipePaths cannot contain empty paths")
		}
	}
	if cfg.Search.DefaultSuggestionLimit < 1 {
		problems = append(problems, "search.defaultSuggestionLimit must be positive")
	}
	if cfg.Search.MaxSuggestionLimit < cfg.Search.DefaultSuggestionLimit {
		problems = append(problems, "search.maxSuggestionLimit must be at least search.defaultSuggestionLimit")
	}
	if cfg.Redis.CacheTTL < 0 {
		problems = append(problems, "redis.cacheTTL cannot be negative")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "logging.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		problems = append(problems, "logging.format must be text or json")
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with '/'")
	}
	if cfg.Jobs.MaxWorkers < 1 {
		problems = append(problems, "jobs.maxWorkers must be positive")
	}

	return problems
}
