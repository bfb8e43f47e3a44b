package strava

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when Config.BaseURL is unset.
	DefaultBaseURL = "https://www.strava.com"
	// DefaultHTTPTimeout controls the default HTTP client timeout if no
	// transport is provided.
	DefaultHTTPTimeout = 30 * time.Second
)

// Config encapsulates the options required to instantiate a Client. It is an
// explicit, owned object; the SDK keeps no package-level state.
type Config struct {
	// AccessToken seeds the client with an existing bearer token. Optional:
	// ExchangeToken installs one later, and SetCredentials can replace it.
	AccessToken string
	// BaseURL overrides the Strava host, primarily for tests.
	BaseURL string
	// HTTPClient performs the actual network calls. Defaults to an
	// http.Client with Timeout applied.
	HTTPClient HTTPClient
	// Timeout applies to the default HTTP client only.
	Timeout time.Duration
	// RateLimitFunc is invoked after every response that carries rate-limit
	// headers. Advisory: the client never throttles on its own.
	RateLimitFunc func(RateLimit)
	// Logger receives debug-level request diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// Validate performs basic sanity checks on the configuration and fills
// defaults for optional fields.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid BaseURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid BaseURL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid BaseURL: missing host in %q", baseURL)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")

	if c.Timeout < 0 {
		return errors.New("Timeout cannot be negative")
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultHTTPTimeout
	}

	return nil
}
