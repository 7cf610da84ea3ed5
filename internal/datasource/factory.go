package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/config"
)

// Client bundles the source the dashboard reads from and the writer used for profiles.
type Client struct {
	Source  Source
	Profile ProfileWriter
	http    *RateLimitedHTTPClient
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// NewClient builds the API client described by cfg, wrapping reads in a
// freshness cache when cache_ttl_seconds is positive.
func NewClient(cfg config.ClientConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("client api_url is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxRetries >= 0 {
		httpCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		httpCfg.RateLimit = cfg.RateLimit
	}
	if cfg.CircuitBreakerMax > 0 {
		httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax
	}
	if cfg.CircuitBreakerCooldownSeconds > 0 {
		httpCfg.CircuitBreakerCooldown = time.Duration(cfg.CircuitBreakerCooldownSeconds) * time.Second
	}

	httpClient := NewRateLimitedHTTPClient(httpCfg, logger)
	api := NewAPISource(httpClient, cfg.APIURL, cfg.LeaderboardLimit, logger)

	var source Source = api
	if cfg.CacheTTLSeconds > 0 {
		source = NewCachedSource(api, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger)
		if logger != nil {
			logger.WithField("ttl_seconds", cfg.CacheTTLSeconds).Debug("Freshness cache enabled")
		}
	}

	return &Client{Source: source, Profile: api, http: httpClient}, nil
}
