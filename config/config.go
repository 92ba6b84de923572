// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/yanggen/core/schema"
)

// Predicate modes for deciding which config fragments are service-like.
const (
	PredicateCreateAndDelete = "create-and-delete"
	PredicateCreateOnly      = "create-only"
	PredicateAny             = "any"
)

// Config is the root configuration structure.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
	Emit      EmitConfig      `yaml:"emit"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Output    OutputConfig    `yaml:"output"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Pretty bool   `yaml:"pretty"` // console writer instead of JSON
}

// GeneratorConfig configures tool generation.
type GeneratorConfig struct {
	// IdentityParam is the name of the implicit first parameter on every tool.
	IdentityParam string `yaml:"identity_param"`

	// Strict fails the run when generation invariants are violated.
	Strict bool `yaml:"strict"`

	// MaxDepth bounds schema and model nesting.
	MaxDepth int `yaml:"max_depth"`

	// TypeOverrides maps extra source type tokens to canonical types.
	TypeOverrides map[string]string `yaml:"type_overrides,omitempty"`

	// ServicePredicate picks the service-fragment rule:
	// "create-and-delete", "create-only", or "any".
	ServicePredicate string `yaml:"service_predicate"`
}

// EmitConfig configures code emission.
type EmitConfig struct {
	// BackendModule is the Python module the generated code imports
	// Backend from.
	BackendModule string `yaml:"backend_module"`
}

// SnapshotConfig configures the snapshot cache.
type SnapshotConfig struct {
	// CachePath is the SQLite database holding named snapshots.
	CachePath string `yaml:"cache_path"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // "table", "json", "yaml"
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variables always override file-based configuration
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default builds configuration from environment variables and defaults,
// for runs without a config file.
func Default() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback loads from file when one is given and exists, otherwise
// falls back to environment variables and defaults.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		return nil, fmt.Errorf("config file %q not found", path)
	}
	return Default()
}

// applyEnvOverrides applies YANGGEN_* environment variables to the config.
//
// Environment variables:
//
//	YANGGEN_LOG_LEVEL          - Log level: debug, info, warn, error
//	YANGGEN_LOG_PRETTY         - Console log output (default: false)
//	YANGGEN_IDENTITY_PARAM     - Name of the implicit identity parameter
//	YANGGEN_STRICT             - Fail on generation invariant violations
//	YANGGEN_MAX_DEPTH          - Nesting depth limit
//	YANGGEN_SERVICE_PREDICATE  - create-and-delete, create-only, or any
//	YANGGEN_BACKEND_MODULE     - Python module providing Backend
//	YANGGEN_CACHE_PATH         - SQLite snapshot cache path
//	YANGGEN_OUTPUT_FORMAT      - table, json, or yaml
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("YANGGEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("YANGGEN_LOG_PRETTY"); v != "" {
		cfg.Logging.Pretty = parseBool(v)
	}

	if v := os.Getenv("YANGGEN_IDENTITY_PARAM"); v != "" {
		cfg.Generator.IdentityParam = v
	}
	if v := os.Getenv("YANGGEN_STRICT"); v != "" {
		cfg.Generator.Strict = parseBool(v)
	}
	if v := os.Getenv("YANGGEN_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generator.MaxDepth = n
		}
	}
	if v := os.Getenv("YANGGEN_SERVICE_PREDICATE"); v != "" {
		cfg.Generator.ServicePredicate = v
	}

	if v := os.Getenv("YANGGEN_BACKEND_MODULE"); v != "" {
		cfg.Emit.BackendModule = v
	}
	if v := os.Getenv("YANGGEN_CACHE_PATH"); v != "" {
		cfg.Snapshot.CachePath = v
	}
	if v := os.Getenv("YANGGEN_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Generator.IdentityParam == "" {
		cfg.Generator.IdentityParam = "router_name"
	}
	if cfg.Generator.MaxDepth == 0 {
		cfg.Generator.MaxDepth = 64
	}
	if cfg.Generator.ServicePredicate == "" {
		cfg.Generator.ServicePredicate = PredicateCreateAndDelete
	}

	if cfg.Emit.BackendModule == "" {
		cfg.Emit.BackendModule = "yanggen_backend"
	}

	if cfg.Snapshot.CachePath == "" {
		cfg.Snapshot.CachePath = "yanggen.db"
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
}

func validate(cfg *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	if cfg.Generator.MaxDepth < 1 {
		return fmt.Errorf("generator.max_depth must be positive, got %d", cfg.Generator.MaxDepth)
	}

	validPredicates := map[string]bool{
		PredicateCreateAndDelete: true,
		PredicateCreateOnly:      true,
		PredicateAny:             true,
	}
	if !validPredicates[cfg.Generator.ServicePredicate] {
		return fmt.Errorf("generator.service_predicate must be one of: create-and-delete, create-only, any, got %q",
			cfg.Generator.ServicePredicate)
	}

	for token, canonical := range cfg.Generator.TypeOverrides {
		if !schema.ParamType(canonical).Valid() {
			return fmt.Errorf("generator.type_overrides[%q]: unknown canonical type %q", token, canonical)
		}
	}

	validFormats := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("output.format must be one of: table, json, yaml, got %q", cfg.Output.Format)
	}

	return nil
}
