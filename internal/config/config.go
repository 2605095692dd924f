package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Dataset DatasetConfig `yaml:"dataset"`
	Graph   GraphConfig   `yaml:"graph"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	MetricsEnabled    bool          `yaml:"metricsEnabled"`
	AllowedOriginsCSV string        `yaml:"allowedOrigins"`
	AllowCredentials  bool          `yaml:"allowCredentials"`
}

// Dataset sources.
const (
	SourceBundled = "bundled"
	SourceCSV     = "csv"
	SourceNeo4j   = "neo4j"
)

// DatasetConfig selects where people, movies and stars are read from.
type DatasetConfig struct {
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
}

// GraphConfig describes connectivity to the Neo4j database used as an
// optional dataset source and ingestion target.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"maxConnections"`
	BatchSize      int    `yaml:"batchSize"`
}

// SearchConfig tunes query execution.
type SearchConfig struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
	Trace   bool          `yaml:"trace"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"includeCaller"`
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultGraphBatchSize   = 500
	defaultSearchWorkers    = 4
	defaultSearchTimeout    = 30 * time.Second
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Dataset: DatasetConfig{
			Source: SourceBundled,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
			BatchSize:      defaultGraphBatchSize,
		},
		Search: SearchConfig{
			Workers: defaultSearchWorkers,
			Timeout: defaultSearchTimeout,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load reads configuration from environment variables, applying defaults.
// When CONFIG_FILE is set the YAML file is applied before the environment.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile applies the YAML file at path (if non-empty) on top of the
// defaults, then environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	switch c.Dataset.Source {
	case SourceBundled:
	case SourceCSV:
		if c.Dataset.Dir == "" {
			return errors.New("DATASET_DIR is required for the csv dataset source")
		}
	case SourceNeo4j:
		if c.Graph.URI == "" {
			return errors.New("GRAPH_URI is required for the neo4j dataset source")
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	if c.Search.Workers <= 0 {
		return fmt.Errorf("search workers must be positive, got %d", c.Search.Workers)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"SEARCH_TIMEOUT", &cfg.Search.Timeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.target = parsed
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)
	cfg.HTTP.AllowCredentials = parseBoolWithDefault("SERVER_ALLOW_CREDENTIALS", cfg.HTTP.AllowCredentials)

	cfg.Dataset.Dir = valueOrDefault("DATASET_DIR", cfg.Dataset.Dir)
	cfg.Dataset.Source = strings.ToLower(valueOrDefault("DATASET_SOURCE", cfg.Dataset.Source))
	if os.Getenv("DATASET_SOURCE") == "" && os.Getenv("DATASET_DIR") != "" && cfg.Dataset.Source == SourceBundled {
		cfg.Dataset.Source = SourceCSV
	}

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)
	cfg.Graph.BatchSize = parseIntWithDefault("GRAPH_BATCH_SIZE", cfg.Graph.BatchSize)

	cfg.Search.Workers = parseIntWithDefault("SEARCH_WORKERS", cfg.Search.Workers)
	cfg.Search.Trace = parseBoolWithDefault("SEARCH_TRACE", cfg.Search.Trace)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
