package config

import "time"

// PrefetchConfig drives the response warmer that preloads the
// upstream calls a visitor is likely to make after landing on a
// page.
type PrefetchConfig struct {
	Enabled      bool
	TTL          time.Duration
	MaxBodyBytes int
}

// LoadPrefetchConfig reads environment variables to build a
// PrefetchConfig.
func LoadPrefetchConfig() PrefetchConfig {
	return PrefetchConfig{
		Enabled:      envBool("PREFETCH_ENABLED", true),
		TTL:          envDur("PREFETCH_TTL", time.Minute),
		MaxBodyBytes: envInt("PREFETCH_MAX_BODY_BYTES", 64<<10),
	}
}
