package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/jisho-backend/internal/kana"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed database.max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if _, ok := kana.ParseHalfWidthMode(c.Kana.HalfWidthMode); !ok {
		return fmt.Errorf("kana.half_width_mode must be legacy or fold (got %q)", c.Kana.HalfWidthMode)
	}

	if c.Deinflect.MaxDepth <= 0 {
		return fmt.Errorf("deinflect.max_depth must be > 0 (got %d)", c.Deinflect.MaxDepth)
	}

	if c.Importer.BatchSize <= 0 {
		return fmt.Errorf("importer.batch_size must be > 0 (got %d)", c.Importer.BatchSize)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0 when limiting is enabled (got %d)", c.RateLimit.Burst)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}
