package webhook

import (
	"os"
	"strconv"
	"strings"
)

// Endpoint identifies one of the remote webhooks.
type Endpoint string

const (
	EndpointQA      Endpoint = "qa"
	EndpointProject Endpoint = "project"
)

// EndpointConfig holds per-endpoint parameters.
type EndpointConfig struct {
	URL       string
	TimeoutMs int // overrides global if > 0
}

// Config holds all configuration for the webhook gateway.
type Config struct {
	LogCalls   bool
	Token      string
	TimeoutMs  int
	MaxRetries int
	Endpoints  map[Endpoint]EndpointConfig
}

// DefaultConfig returns a Config with no endpoints configured.
// Every call short-circuits to local fallbacks until URLs are set.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  15000,
		MaxRetries: 1,
		Endpoints: map[Endpoint]EndpointConfig{
			EndpointQA:      {TimeoutMs: 20000},
			EndpointProject: {TimeoutMs: 10000},
		},
	}
}

// LoadConfig reads gateway configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LEADFLOW_WEBHOOK_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LEADFLOW_WEBHOOK_TOKEN"); v != "" {
		cfg.Token = strings.TrimSpace(v)
	}
	if v := os.Getenv("LEADFLOW_WEBHOOK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LEADFLOW_WEBHOOK_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyEndpointEnv(&cfg, EndpointQA, "LEADFLOW_QA_WEBHOOK_URL", "LEADFLOW_QA_TIMEOUT_MS")
	applyEndpointEnv(&cfg, EndpointProject, "LEADFLOW_PROJECT_WEBHOOK_URL", "LEADFLOW_PROJECT_TIMEOUT_MS")

	return cfg
}

// Configured reports whether a URL is present for the endpoint.
func (c Config) Configured(e Endpoint) bool {
	return c.URL(e) != ""
}

// URL returns the endpoint URL, or "" when unconfigured.
func (c Config) URL(e Endpoint) string {
	return strings.TrimSpace(c.Endpoints[e].URL)
}

// EndpointTimeout returns the effective timeout for an endpoint.
// Uses the endpoint-specific timeout if set, otherwise the global timeout.
func (c Config) EndpointTimeout(e Endpoint) int {
	if ec, ok := c.Endpoints[e]; ok && ec.TimeoutMs > 0 {
		return ec.TimeoutMs
	}
	return c.TimeoutMs
}

func applyEndpointEnv(cfg *Config, e Endpoint, urlEnv, timeoutEnv string) {
	ec := cfg.Endpoints[e]
	if v := strings.TrimSpace(os.Getenv(urlEnv)); v != "" {
		ec.URL = v
	}
	if v := os.Getenv(timeoutEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ec.TimeoutMs = n
		}
	}
	cfg.Endpoints[e] = ec
}
