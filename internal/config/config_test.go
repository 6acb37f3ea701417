package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"PRIMARY_COUNTRY", "OTHER_COUNTRIES", "CACHE_BACKEND",
		"CACHE_TTL_SECONDS", "FETCH_TIMEOUT_SECONDS", "PER_SOURCE_LIMIT",
		"PORT", "RSS_ENABLED",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "in", cfg.PrimaryCountry)
	assert.Equal(t, []string{"us", "ae", "gb", "ca", "au", "sg"}, cfg.OtherCountries)
	assert.Equal(t, BackendMemory, cfg.CacheBackend)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.PerCallTimeout)
	assert.Equal(t, 50, cfg.PerSourceLimit)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, true, cfg.RSSEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PRIMARY_COUNTRY", "us")
	t.Setenv("OTHER_COUNTRIES", "GB, ca")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("RSS_ENABLED", "false")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "us", cfg.PrimaryCountry)
	assert.Equal(t, []string{"gb", "ca"}, cfg.OtherCountries)
	assert.Equal(t, 120*time.Second, cfg.CacheTTL)
	assert.Equal(t, false, cfg.RSSEnabled)
}

func TestLoadRedisBackendRequiresURL(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.NotEqual(t, nil, err)

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	assert.Equal(t, nil, err)
	assert.Equal(t, BackendRedis, cfg.CacheBackend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.NotEqual(t, nil, err)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "soon")

	_, err := Load()
	assert.NotEqual(t, nil, err)
}
