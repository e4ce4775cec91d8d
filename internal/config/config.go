package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
	"time"     // time parses duration-valued variables
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Upstream settings shape
// the API client; the DB block is optional and only enables the
// notification history when a host is configured.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	UpstreamBaseURL string        // base URL of the myNGO REST API
	UpstreamTimeout time.Duration // per-request timeout for upstream calls
	UpstreamRetries int           // additional attempts after the first
	SessionTTL      time.Duration // lifetime of persisted session state
	SessionCookie   string        // name of the device session cookie
	DBUser          string        // database username (optional)
	DBPass          string        // database password (optional)
	DBHost          string        // database host; empty disables the history store
	DBPort          string        // database port number
	DBName          string        // database name
}

// Load reads configuration from environment variables. Required
// variables are enforced by must() and missing values cause the
// program to exit with a fatal log message; everything else has a
// default.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		UpstreamBaseURL: must("UPSTREAM_BASE_URL"),
		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamRetries: envInt("UPSTREAM_RETRIES", 3),
		SessionTTL:      envDur("SESSION_TTL", 720*time.Hour),
		SessionCookie:   envStr("SESSION_COOKIE", "myngo_session"),
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          envStr("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
	}
}

// HistoryEnabled reports whether the MySQL-backed notification
// history is configured.
func (c Config) HistoryEnabled() bool { return c.DBHost != "" && c.DBName != "" }

// must retrieves the value of a required environment variable. If
// the variable is unset or empty, the application logs a fatal
// error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
