package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig controls the token bucket applied to public write
// endpoints (booking form, review form, newsletter signup).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	KeyTTL         time.Duration
}

func envInt(key string, def int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables. Disabled unless
// RATE_LIMIT_ENABLED is truthy, matching how the rest of the optional
// infrastructure degrades.
func LoadRateLimitConfig() RateLimitConfig {
	enabled := false
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")); raw != "" {
		enabled = strings.EqualFold(raw, "true") || raw == "1"
	}
	return RateLimitConfig{
		Enabled:        enabled,
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: time.Duration(envInt("RATE_LIMIT_REFILL_SECONDS", 6)) * time.Second,
		KeyTTL:         time.Duration(envInt("RATE_LIMIT_TTL_SECONDS", 600)) * time.Second,
	}
}
