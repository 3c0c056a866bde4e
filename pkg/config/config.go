// Package config loads the hvacdiag configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/cycle"
	"github.com/mrhapile/hvac-diagnoser/pkg/engine"
	"github.com/mrhapile/hvac-diagnoser/pkg/logging"
	"github.com/mrhapile/hvac-diagnoser/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvConfigPath = "HVACDIAG_CONFIG"
	EnvAddr       = "HVACDIAG_ADDR"
)

// Config is the top level configuration document.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Catalogs CatalogConfig `yaml:"catalogs"`
	Engine   EngineConfig  `yaml:"engine"`
	Logging  LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	// WatchCatalogs reloads catalog files when they change on disk.
	WatchCatalogs bool `yaml:"watch_catalogs"`
}

// CatalogConfig points at collaborator-supplied catalog files. Empty paths
// select the embedded catalogs.
type CatalogConfig struct {
	Refrigerants string `yaml:"refrigerants"`
	Signatures   string `yaml:"signatures"`
}

type EngineConfig struct {
	IsentropicEfficiency float64 `yaml:"isentropic_efficiency" validate:"gt=0,lte=1"`
	BatchConcurrency     int     `yaml:"batch_concurrency" validate:"gte=1,lte=64"`
}

type LoggingConfig struct {
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON    bool   `yaml:"json"`
	Service string `yaml:"service"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Engine: EngineConfig{
			IsentropicEfficiency: cycle.DefaultIsentropicEfficiency,
			BatchConcurrency:     engine.DefaultBatchConcurrency,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Service: "hvacdiag",
		},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path falls back to
// $HVACDIAG_CONFIG, and to the defaults when that is unset too.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}

	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// CycleOptions converts the engine section for the cycle engine.
func (c Config) CycleOptions() cycle.Options {
	return cycle.Options{IsentropicEfficiency: c.Engine.IsentropicEfficiency}
}

// Snapshot loads the configured catalogs.
func (c Config) Snapshot() (*engine.Snapshot, error) {
	return engine.LoadSnapshot(c.Catalogs.Refrigerants, c.Catalogs.Signatures, c.CycleOptions())
}

// Logger converts the logging section.
func (c Config) Logger() (logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.Config{}, fmt.Errorf("invalid logging level: %w", err)
	}
	return logging.Config{Level: level, JSON: c.Logging.JSON, Service: c.Logging.Service}, nil
}
