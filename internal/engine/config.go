package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HTTPTimeout          time.Duration
	TitleTimeout         time.Duration // oEmbed title lookup budget
	HTTPRetries          int           // 0 = every remote call is attempted once
	OutputDir            string
	DefaultLanguages     []string // used instead of auto-selection when non-empty
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = watch page fetched with HTTPClient
}

// DefaultConfig is what tests and the MCP server start from when main did not call Init.
func DefaultConfig() Config {
	return Config{
		HTTPTimeout:          15 * time.Second,
		TitleTimeout:         10 * time.Second,
		OutputDir:            ".",
		CacheMaxEntries:      500,
		CacheCleanupInterval: 5 * time.Minute,
		HTTPClient:           &http.Client{Timeout: 15 * time.Second},
	}
}

var cfg = DefaultConfig()

// Cfg exposes the engine configuration for sub-packages (sources, cli).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.HTTPTimeout}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	cfg = c
	Cfg = &cfg
}

// Retry returns the retry policy for remote calls.
// MaxRetries follows HTTPRetries, so the default is a single attempt.
func (c *Config) Retry() RetryConfig {
	rc := DefaultRetryConfig
	rc.MaxRetries = max(c.HTTPRetries, 0)
	return rc
}
