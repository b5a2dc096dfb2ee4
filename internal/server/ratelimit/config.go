package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one method and path. A Path ending in "/" matches by prefix.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; zero or less means unlimited
	Window time.Duration
	Burst  int // bucket capacity, Limit when zero
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleAfter       time.Duration
	Whitelist       map[string]bool
	Rules           []Rule
}

// DefaultConfig limits the generation endpoints to generatePerMinute requests per client
func DefaultConfig(generatePerMinute int) *Config {
	if generatePerMinute <= 0 {
		generatePerMinute = 10
	}
	burst := min(generatePerMinute, 3)
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleAfter:       time.Hour,
		Whitelist:       map[string]bool{},
		Rules: []Rule{
			{Method: "GET", Path: "/health"},
			{Method: "GET", Path: "/metrics"},
			{Method: "POST", Path: "/api/generate-summary", Limit: generatePerMinute, Window: time.Minute, Burst: burst},
			{Method: "POST", Path: "/api/generate-bullets", Limit: generatePerMinute, Window: time.Minute, Burst: burst},
			{Method: "POST", Path: "/api/resume/generate-summary", Limit: generatePerMinute, Window: time.Minute, Burst: burst},
			{Method: "GET", Path: "/api/resume/export", Limit: 30, Window: time.Minute, Burst: 5},
		},
	}
}

// LoadConfig starts from DefaultConfig and applies RATE_LIMIT_* environment overrides
func LoadConfig(generatePerMinute int) *Config {
	cfg := DefaultConfig(generatePerMinute)
	if v, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
		cfg.Enabled = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_DEFAULT_LIMIT")); err == nil && v > 0 {
		cfg.DefaultLimit = v
	}
	if v, err := time.ParseDuration(os.Getenv("RATE_LIMIT_DEFAULT_WINDOW")); err == nil && v > 0 {
		cfg.DefaultWindow = v
	}
	for _, ip := range strings.Split(os.Getenv("RATE_LIMIT_WHITELIST"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			cfg.Whitelist[ip] = true
		}
	}
	return cfg
}

// Match returns the rule for method and path, exact matches first, or nil
func (c *Config) Match(method, path string) *Rule {
	for i := range c.Rules {
		if r := &c.Rules[i]; r.Method == method && r.Path == path {
			return r
		}
	}
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}
