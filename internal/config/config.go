// YAML config loader with CUE validation and environment overrides
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Renderer modes.
const (
	RendererAuto  = "auto"
	RendererTUI   = "tui"
	RendererPlain = "plain"
)

// GreptimeConfig describes the optional GreptimeDB result sink.
type GreptimeConfig struct {
	Endpoint         string `yaml:"endpoint" env:"GREPTIMEDB_ENDPOINT"`
	Port             int    `yaml:"port" env:"GREPTIMEDB_PORT"`
	Database         string `yaml:"database" env:"GREPTIMEDB_DATABASE"`
	TransitionsTable string `yaml:"transitions_table" env:"SCAMQUIZ_TRANSITION_TABLE"`
	ResultsTable     string `yaml:"results_table" env:"SCAMQUIZ_RESULT_TABLE"`
}

// Config is the root configuration of a quiz run.
type Config struct {
	Catalog    string         `yaml:"catalog" env:"SCAMQUIZ_CATALOG"`
	Renderer   string         `yaml:"renderer" env:"SCAMQUIZ_RENDERER"`
	LogLevel   string         `yaml:"log_level" env:"SCAMQUIZ_LOG_LEVEL"`
	LogFile    string         `yaml:"log_file" env:"SCAMQUIZ_LOG_FILE"`
	Transcript string         `yaml:"transcript" env:"SCAMQUIZ_TRANSCRIPT"`
	AdminAddr  string         `yaml:"admin_addr" env:"SCAMQUIZ_ADMIN_ADDR"`
	Greptime   GreptimeConfig `yaml:"greptime"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Renderer: RendererAuto,
		LogLevel: "info",
		Greptime: GreptimeConfig{
			Port:             4001,
			Database:         "public",
			TransitionsTable: "quiz_transitions",
			ResultsTable:     "quiz_level_results",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file checked
// against a CUE schema, and environment variables, in that order.
// An empty cueSchemaPath selects the embedded schema.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	cfg := Default()
	if configPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Loaded configuration: %+v", cfg)

	return &cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values that may have come from the environment.
func (c Config) Validate() error {
	switch c.Renderer {
	case RendererAuto, RendererTUI, RendererPlain:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	if c.Greptime.Endpoint != "" && (c.Greptime.Port <= 0 || c.Greptime.Port > 65535) {
		return fmt.Errorf("invalid GreptimeDB port %d", c.Greptime.Port)
	}
	return nil
}
