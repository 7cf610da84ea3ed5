package datasource

import (
	"context"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/metrics"
	"github.com/yourusername/pickscout/internal/models"
)

// CachedSource wraps a Source with a short freshness window. Entries are
// keyed by operation and filter; failures are never cached.
type CachedSource struct {
	source Source
	cache  *cache.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewCachedSource creates a cached source with the given freshness window.
func NewCachedSource(source Source, ttl time.Duration, logger *logrus.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
		logger: logger,
	}
}

// GetLeaderboard implements Source.
func (c *CachedSource) GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error) {
	key := "leaderboard:" + criteria.Key()
	if cached, found := c.cache.Get(key); found {
		if cappers, ok := cached.([]models.Capper); ok {
			c.hit(key)
			return cloneCappers(cappers), nil
		}
	}
	c.miss(key)

	cappers, err := c.source.GetLeaderboard(ctx, criteria)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, cloneCappers(cappers), c.ttl)
	return cappers, nil
}

// GetTodaysPicks implements Source.
func (c *CachedSource) GetTodaysPicks(ctx context.Context, criteria models.FilterCriteria) ([]models.TodaysPick, error) {
	key := "today:" + criteria.Key()
	if cached, found := c.cache.Get(key); found {
		if picks, ok := cached.([]models.TodaysPick); ok {
			c.hit(key)
			return clonePicks(picks), nil
		}
	}
	c.miss(key)

	picks, err := c.source.GetTodaysPicks(ctx, criteria)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, clonePicks(picks), c.ttl)
	return picks, nil
}

// GetRecentPicks implements Source.
func (c *CachedSource) GetRecentPicks(ctx context.Context, days int) ([]models.TodaysPick, error) {
	key := "recent:" + strconv.Itoa(days)
	if cached, found := c.cache.Get(key); found {
		if picks, ok := cached.([]models.TodaysPick); ok {
			c.hit(key)
			return clonePicks(picks), nil
		}
	}
	c.miss(key)

	picks, err := c.source.GetRecentPicks(ctx, days)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, clonePicks(picks), c.ttl)
	return picks, nil
}

// Invalidate drops every cached entry.
func (c *CachedSource) Invalidate() {
	c.cache.Flush()
}

// ItemCount returns the number of items in cache
func (c *CachedSource) ItemCount() int {
	return c.cache.ItemCount()
}

func (c *CachedSource) hit(key string) {
	metrics.RecordFeedCacheLookup(true)
	if c.logger != nil {
		c.logger.WithField("cache_key", key).Debug("Cache hit")
	}
}

func (c *CachedSource) miss(key string) {
	metrics.RecordFeedCacheLookup(false)
	if c.logger != nil {
		c.logger.WithField("cache_key", key).Debug("Cache miss, fetching from source")
	}
}

// Callers may reorder or filter what they receive, so the cache hands out copies.
func cloneCappers(in []models.Capper) []models.Capper {
	if in == nil {
		return nil
	}
	out := make([]models.Capper, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].ActivePicks = append([]models.Pick(nil), in[i].ActivePicks...)
	}
	return out
}

func clonePicks(in []models.TodaysPick) []models.TodaysPick {
	if in == nil {
		return nil
	}
	return append([]models.TodaysPick(nil), in...)
}
