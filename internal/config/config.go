package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	LogLevel             string
	LogFormat            string
	BreachSearchURL      string
	PwnedRangeURL        string
	HIBPUserAgent        string
	HIBPAPIKey           string
	UpstreamTimeoutS     int
	RangePadding         bool
	CircuitFailThreshold int
	CircuitOpenS         int
	MetricsEnabled       bool
	OTELServiceName      string
	MaxBodySize          int64
}

// UpstreamTimeout is the bound applied to every breach-service call.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutS) * time.Second
}

// CircuitOpenDuration is how long a tripped upstream stays open.
func (c *Config) CircuitOpenDuration() time.Duration {
	return time.Duration(c.CircuitOpenS) * time.Second
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads configuration from the provided map. If env is nil, all
// values come from os.Getenv.
func LoadFrom(env map[string]string) (*Config, error) {
	get := func(key string) string {
		if env != nil {
			return env[key]
		}
		return os.Getenv(key)
	}

	cfg := &Config{}

	// Strings with defaults
	cfg.Port = getOrDefault(get, "PORT", "8090")
	cfg.LogLevel = getOrDefault(get, "LOG_LEVEL", "info")
	cfg.LogFormat = getOrDefault(get, "LOG_FORMAT", "text")
	cfg.BreachSearchURL = getOrDefault(get, "BREACH_SEARCH_URL", "https://haveibeenpwned.com/unifiedsearch")
	cfg.PwnedRangeURL = getOrDefault(get, "PWNED_RANGE_URL", "https://api.pwnedpasswords.com")
	cfg.HIBPUserAgent = getOrDefault(get, "HIBP_USER_AGENT", "PasswordSecurityChecker")
	cfg.OTELServiceName = getOrDefault(get, "OTEL_SERVICE_NAME", "breach-checker")

	// Optional strings
	cfg.HIBPAPIKey = get("HIBP_API_KEY")

	// Ints with defaults
	var err error
	cfg.UpstreamTimeoutS, err = getIntOrDefault(get, "UPSTREAM_TIMEOUT", 5)
	if err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeoutS <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive (got %d)", cfg.UpstreamTimeoutS)
	}
	cfg.CircuitFailThreshold, err = getIntOrDefault(get, "CIRCUIT_FAIL_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	cfg.CircuitOpenS, err = getIntOrDefault(get, "CIRCUIT_OPEN_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodySize, err = getInt64OrDefault(get, "MAX_BODY_SIZE", 65536)
	if err != nil {
		return nil, err
	}
	if cfg.MaxBodySize <= 0 {
		return nil, fmt.Errorf("MAX_BODY_SIZE must be positive (got %d)", cfg.MaxBodySize)
	}

	// Bools with defaults
	cfg.RangePadding = getBoolOrDefault(get, "RANGE_PADDING", true)
	cfg.MetricsEnabled = getBoolOrDefault(get, "METRICS_ENABLED", true)

	if cfg.BreachSearchURL, err = validateBaseURL("BREACH_SEARCH_URL", cfg.BreachSearchURL); err != nil {
		return nil, err
	}
	if cfg.PwnedRangeURL, err = validateBaseURL("PWNED_RANGE_URL", cfg.PwnedRangeURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateBaseURL checks that raw is an absolute HTTP(S) URL with a host and
// returns it without a trailing slash.
func validateBaseURL(key, raw string) (string, error) {
	if len(raw) > 2000 {
		return "", fmt.Errorf("%s must be at most 2000 characters", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%s must use http or https scheme", key)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%s must have a valid host", key)
	}
	return strings.TrimRight(raw, "/"), nil
}

func getOrDefault(get func(string) string, key, defaultVal string) string {
	if v := get(key); v != "" {
		return v
	}
	return defaultVal
}

func getBoolOrDefault(get func(string) string, key string, defaultVal bool) bool {
	v := get(key)
	if v == "" {
		return defaultVal
	}
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

func getIntOrDefault(get func(string) string, key string, defaultVal int) (int, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}

func getInt64OrDefault(get func(string) string, key string, defaultVal int64) (int64, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}
