package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultEntryRole = "Police"
	defaultLogLevel  = "info"
	defaultSpoolDir  = "print-spool"
)

// Client captures the configuration of the citation client.
type Client struct {
	// BaseURL is the single API root every endpoint hangs off.
	BaseURL string
	// HTTPTimeout of zero leaves the HTTP client's default (no timeout).
	HTTPTimeout time.Duration
	// EntryRole selects which auth stack the navigation graph starts in.
	EntryRole   string
	LogLevel    string
	MetricsAddr string
	// PrintSpoolDir receives rendered ticket documents.
	PrintSpoolDir string
}

// FromEnv builds a Client config from environment variables so main stays lean.
func FromEnv() Client {
	cfg := Client{
		BaseURL:       defaultBaseURL,
		EntryRole:     defaultEntryRole,
		LogLevel:      defaultLogLevel,
		PrintSpoolDir: defaultSpoolDir,
	}

	if v := os.Getenv("TCIS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TCIS_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("TCIS_ENTRY_ROLE"); v != "" {
		cfg.EntryRole = v
	}
	if v := os.Getenv("TCIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.MetricsAddr = os.Getenv("TCIS_METRICS_ADDR")
	if v := os.Getenv("TCIS_PRINT_SPOOL"); v != "" {
		cfg.PrintSpoolDir = v
	}

	cfg.BaseURL = NormalizeBaseURL(cfg.BaseURL)
	return cfg
}

// NormalizeBaseURL strips trailing slashes so paths can be appended verbatim.
func NormalizeBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
