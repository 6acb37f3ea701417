// Package config loads the service configuration from the environment.
// Everything here is read once at startup and treated as immutable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	// Per-provider credentials; an empty key disables the provider.
	NewsAPIKey    string
	GNewsAPIKey   string
	MediastackKey string
	CurrentsKey   string

	// Per-adapter enable switches on top of credential presence.
	RSSEnabled bool

	PrimaryCountry string
	OtherCountries []string

	CacheTTL     time.Duration
	CacheBackend string
	RedisURL     string

	PerCallTimeout time.Duration
	PerSourceLimit int

	Port        int
	FrontendURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		NewsAPIKey:    os.Getenv("NEWS_API_KEY"),
		GNewsAPIKey:   os.Getenv("GNEWS_API_KEY"),
		MediastackKey: os.Getenv("MEDIASTACK_API_KEY"),
		CurrentsKey:   os.Getenv("CURRENTS_API_KEY"),

		RSSEnabled: envBool("RSS_ENABLED", true),

		PrimaryCountry: envString("PRIMARY_COUNTRY", "in"),
		OtherCountries: envList("OTHER_COUNTRIES", []string{"us", "ae", "gb", "ca", "au", "sg"}),

		CacheBackend: envString("CACHE_BACKEND", BackendMemory),
		RedisURL:     os.Getenv("REDIS_URL"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	var err error
	if cfg.CacheTTL, err = envSeconds("CACHE_TTL_SECONDS", 600*time.Second); err != nil {
		return nil, err
	}
	if cfg.PerCallTimeout, err = envSeconds("FETCH_TIMEOUT_SECONDS", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.PerSourceLimit, err = envInt("PER_SOURCE_LIMIT", 50); err != nil {
		return nil, err
	}
	if cfg.Port, err = envInt("PORT", 8080); err != nil {
		return nil, err
	}

	switch cfg.CacheBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config: CACHE_BACKEND=redis requires REDIS_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}

	return cfg, nil
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envBool(name string, fallback bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func envInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return n, nil
}

func envSeconds(name string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return time.Duration(n) * time.Second, nil
}

func envList(name string, fallback []string) []string {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
