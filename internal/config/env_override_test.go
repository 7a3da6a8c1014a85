package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides_Engine(t *testing.T) {
	t.Run("LOGOS_MAX_INFERENCES overrides default", func(t *testing.T) {
		t.Setenv("LOGOS_MAX_INFERENCES", "42")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 42, cfg.Engine.MaxInferences)
	})

	t.Run("malformed LOGOS_MAX_CLAUSES is ignored", func(t *testing.T) {
		t.Setenv("LOGOS_MAX_CLAUSES", "not-a-number")
		cfg := DefaultConfig()
		before := cfg.Engine.MaxClauses
		cfg.applyEnvOverrides()
		assert.Equal(t, before, cfg.Engine.MaxClauses)
	})

	t.Run("LOGOS_PROVE_TIMEOUT overrides default", func(t *testing.T) {
		t.Setenv("LOGOS_PROVE_TIMEOUT", "90s")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "90s", cfg.Engine.ProveTimeout)
	})
}

func TestEnvOverrides_Session(t *testing.T) {
	t.Run("LOGOS_SESSION_TTL overrides default", func(t *testing.T) {
		t.Setenv("LOGOS_SESSION_TTL", "1h")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "1h", cfg.Session.DefaultTTL)
	})

	t.Run("LOGOS_MAX_SESSIONS overrides default", func(t *testing.T) {
		t.Setenv("LOGOS_MAX_SESSIONS", "5")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, 5, cfg.Session.MaxSessions)
	})
}

func TestEnvOverrides_Debug(t *testing.T) {
	t.Run("LOGOS_DEBUG=true enables debug logging", func(t *testing.T) {
		t.Setenv("LOGOS_DEBUG", "true")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.Debug)
	})

	t.Run("unset LOGOS_DEBUG leaves default", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Logging.Debug)
	})
}

func TestDurationHelpersFallBackOnMalformedValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.ProveTimeout = "garbage"
	cfg.Engine.ClausifyTimeout = "garbage"
	cfg.Session.DefaultTTL = "garbage"
	cfg.Session.MaxTTL = "garbage"

	assert.Equal(t, 30_000_000_000, int(cfg.ProveTimeoutDuration()))
	assert.Equal(t, 5_000_000_000, int(cfg.ClausifyTimeoutDuration()))
	assert.Equal(t, 30*60_000_000_000, int(cfg.SessionTTLDuration()))
	assert.Equal(t, 24*3600*1_000_000_000, int(cfg.SessionMaxTTLDuration()))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/logos.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "logos", cfg.Name)
}
