package config

import "time"

// ThrottleConfig bounds login and OTP attempts per client address:
// a fixed window of Window length admitting at most Limit attempts.
type ThrottleConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadThrottleConfig reads environment variables to build a
// ThrottleConfig.
func LoadThrottleConfig() ThrottleConfig {
	cfg := ThrottleConfig{
		Enabled: envBool("LOGIN_THROTTLE_ENABLED", true),
		Limit:   envInt("LOGIN_THROTTLE_LIMIT", 10),
		Window:  envDur("LOGIN_THROTTLE_WINDOW", time.Minute),
		Prefix:  envStr("LOGIN_THROTTLE_PREFIX", "throttle"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
