package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comparison-cli/internal/scorer"
)

// Validate checks the settings a command mode depends on. Modes are
// "report", "serve" and "runs".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "report":
		errs = append(errs, c.validateFetch()...)
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateFetch()...)
		errs = append(errs, c.validateStore()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	case "runs":
		errs = append(errs, c.validateStore()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if err := scorer.ValidateWeights(c.Scoring.Weights); err != nil {
		errs = append(errs, "scoring.weights: "+err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateFetch() []string {
	var errs []string
	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, "api.timeout_secs must be > 0")
	}
	if c.API.MaxRetries < 0 || c.API.MaxRetries > 10 {
		errs = append(errs, "api.max_retries must be between 0 and 10")
	}
	if c.API.RatePerSec < 0 {
		errs = append(errs, "api.rate_per_sec must be >= 0")
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			errs = append(errs, "cache.redis_url is required for the redis driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("cache.driver must be memory or redis, got %q", c.Cache.Driver))
	}
	if c.Cache.TTLSecs <= 0 {
		errs = append(errs, "cache.ttl_secs must be > 0")
	}
	if c.Cache.MaxEntries <= 0 {
		errs = append(errs, "cache.max_entries must be > 0")
	}
	return errs
}

func (c *Config) validateStore() []string {
	switch strings.ToLower(c.Store.Driver) {
	case "sqlite", "postgres", "postgresql", "pgx":
	default:
		return []string{fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver)}
	}
	if c.Store.DatabaseURL == "" {
		return []string{"store.database_url is required"}
	}
	return nil
}
