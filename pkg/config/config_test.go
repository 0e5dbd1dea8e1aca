package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 10, cfg.Search.TimeoutSec)
	assert.Equal(t, 24, cfg.Domains.FreshnessMonths)
	assert.Equal(t, 5, cfg.RateLimit.SearchCallsPerMinute)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadDefaultDomainLists(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, cfg.Domains.Priority)
	assert.Equal(t, "incois.gov.in", cfg.Domains.Priority[0])
	assert.Equal(t, "argo.ucsd.edu", cfg.Domains.Priority[1])
	assert.Contains(t, cfg.Domains.Denied, "facebook.com")
	assert.Contains(t, cfg.Domains.Denied, "contentfarm")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FLOATCHAT_SERVER_PORT", "9100")
	t.Setenv("FLOATCHAT_SEARCH_MAXRESULTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Search.MaxResults)
}
