package strava

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigValidateFillsDefaults(t *testing.T) {
	cfg := Config{}

	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultHTTPTimeout, cfg.Timeout)
}

func TestConfigValidateRespectsCustomValues(t *testing.T) {
	cfg := Config{
		BaseURL: "https://stub.test/strava/",
		Timeout: 5 * time.Second,
	}

	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://stub.test/strava", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfigValidateRejectsNonHTTPScheme(t *testing.T) {
	cfg := Config{BaseURL: "ftp://stub.test"}
	require.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsMissingHost(t *testing.T) {
	cfg := Config{BaseURL: "https://"}
	require.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := Config{Timeout: -time.Second}
	require.Error(t, cfg.Validate())
}
