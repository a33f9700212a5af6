// Package config loads the taxonomy-mapper service configuration from
// a YAML file with .env and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName     = "taxonomy-mapper"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultConcurrency     = 10
	defaultBatchRPS        = 50
	defaultReadTimeoutSec  = 30
	defaultWriteTimeoutSec = 60
	defaultTaxonomyDir     = "resources"
	defaultHistoryPath     = "taxonomy-mapper.db"
	defaultHistoryLimit    = 100
	defaultLogLevel        = "info"
)

// Config holds all configuration for the service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `yaml:"port"`
	Debug        bool          `yaml:"debug"`
	Concurrency  int           `yaml:"concurrency"`
	BatchRPS     int           `yaml:"batch_rps"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// TaxonomyConfig holds taxonomy resource configuration.
type TaxonomyConfig struct {
	// ResourceDir contains law_categories/parent_categories.txt and
	// law_categories/sub_categories/.
	ResourceDir string `yaml:"resource_dir"`
}

// StorageConfig holds classification history storage configuration.
type StorageConfig struct {
	// HistoryPath is the SQLite database file; ":memory:" for ephemeral.
	HistoryPath string `yaml:"history_path"`
	// HistoryLimit caps ListRecent results.
	HistoryLimit int `yaml:"history_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads the YAML config at path, applies defaults, then applies
// environment variable overrides (env always wins). A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Service.Concurrency == 0 {
		cfg.Service.Concurrency = defaultConcurrency
	}
	if cfg.Service.BatchRPS == 0 {
		cfg.Service.BatchRPS = defaultBatchRPS
	}
	if cfg.Service.ReadTimeout == 0 {
		cfg.Service.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if cfg.Service.WriteTimeout == 0 {
		cfg.Service.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if cfg.Taxonomy.ResourceDir == "" {
		cfg.Taxonomy.ResourceDir = defaultTaxonomyDir
	}
	if cfg.Storage.HistoryPath == "" {
		cfg.Storage.HistoryPath = defaultHistoryPath
	}
	if cfg.Storage.HistoryLimit == 0 {
		cfg.Storage.HistoryLimit = defaultHistoryLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
}

func applyEnvOverrides(cfg *Config) {
	overrideInt("TAXONOMY_MAPPER_PORT", &cfg.Service.Port)
	overrideBool("APP_DEBUG", &cfg.Service.Debug)
	overrideInt("TAXONOMY_MAPPER_CONCURRENCY", &cfg.Service.Concurrency)
	overrideInt("TAXONOMY_MAPPER_BATCH_RPS", &cfg.Service.BatchRPS)
	overrideString("TAXONOMY_RESOURCE_DIR", &cfg.Taxonomy.ResourceDir)
	overrideString("HISTORY_DB_PATH", &cfg.Storage.HistoryPath)
	overrideString("LOG_LEVEL", &cfg.Logging.Level)
}

// GetConfigPath returns CONFIG_PATH or the given default.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}

func overrideString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func overrideInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

func overrideBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		*target = v == "true" || v == "1" || v == "yes"
	}
}
