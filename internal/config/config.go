// Package config holds the logos reasoning service's configuration:
// engine budgets, session defaults, and model-finder defaults, loadable
// from YAML with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all logos service configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Engine  EngineConfig  `yaml:"engine"`
	Session SessionConfig `yaml:"session"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig bounds proof search effort (spec.md §5 resource limits).
type EngineConfig struct {
	MaxInferences   int    `yaml:"max_inferences"`
	MaxClauses      int    `yaml:"max_clauses"`
	MaxClauseSize   int    `yaml:"max_clause_size"`
	ClausifyTimeout string `yaml:"clausify_timeout"`
	ProveTimeout    string `yaml:"prove_timeout"`
}

// SessionConfig bounds session lifecycle (spec.md §3 Session, §7 limits).
type SessionConfig struct {
	DefaultTTL  string `yaml:"default_ttl"`
	MaxTTL      string `yaml:"max_ttl"`
	MaxSessions int    `yaml:"max_sessions"`
}

// ModelConfig bounds the finite model finder (spec.md §4.J).
type ModelConfig struct {
	MaxDomainSize         int `yaml:"max_domain_size"`
	SATGroundingThreshold int `yaml:"sat_grounding_threshold"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the service's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "logos",
		Version: "0.1.0",

		Engine: EngineConfig{
			MaxInferences:   100_000,
			MaxClauses:      50_000,
			MaxClauseSize:   64,
			ClausifyTimeout: "5s",
			ProveTimeout:    "30s",
		},

		Session: SessionConfig{
			DefaultTTL:  "30m",
			MaxTTL:      "24h",
			MaxSessions: 1000,
		},

		Model: ModelConfig{
			MaxDomainSize:         10,
			SATGroundingThreshold: 6,
		},

		Logging: LoggingConfig{
			Debug: false,
		},
	}
}

// Load reads a YAML config file, falling back to defaults if it does not
// exist, then applies environment overrides either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies LOGOS_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOGOS_MAX_INFERENCES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.MaxInferences = n
		}
	}
	if v := os.Getenv("LOGOS_MAX_CLAUSES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Engine.MaxClauses = n
		}
	}
	if v := os.Getenv("LOGOS_PROVE_TIMEOUT"); v != "" {
		c.Engine.ProveTimeout = v
	}
	if v := os.Getenv("LOGOS_CLAUSIFY_TIMEOUT"); v != "" {
		c.Engine.ClausifyTimeout = v
	}
	if v := os.Getenv("LOGOS_SESSION_TTL"); v != "" {
		c.Session.DefaultTTL = v
	}
	if v := os.Getenv("LOGOS_MAX_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.MaxSessions = n
		}
	}
	if v := os.Getenv("LOGOS_MAX_DOMAIN_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Model.MaxDomainSize = n
		}
	}
	if v := os.Getenv("LOGOS_DEBUG"); v != "" {
		c.Logging.Debug = v == "1" || v == "true"
	}
}

// ProveTimeoutDuration parses EngineConfig.ProveTimeout, defaulting to 30s
// on a malformed value.
func (c *Config) ProveTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Engine.ProveTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ClausifyTimeoutDuration parses EngineConfig.ClausifyTimeout, defaulting
// to 5s on a malformed value.
func (c *Config) ClausifyTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Engine.ClausifyTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// SessionTTLDuration parses SessionConfig.DefaultTTL, defaulting to 30m on
// a malformed value.
func (c *Config) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Session.DefaultTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// SessionMaxTTLDuration parses SessionConfig.MaxTTL, defaulting to 24h on
// a malformed value.
func (c *Config) SessionMaxTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Session.MaxTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
