package service

import (
	"context"
	"encoding/json"
	"time"

	"kisan_backend/internal/mandi/scraper"
	"kisan_backend/platform/cache"
	"kisan_backend/platform/logger"
)

const identifiersCacheKey = "agmarknet:identifiers"

// IdentifierSource resolves the crop and region option lists.
type IdentifierSource interface {
	ResolveIdentifiers(ctx context.Context) (scraper.Identifiers, error)
}

// CachedIdentifiers reads identifiers through a TTL cache. Cache failures are
// logged and treated as misses.
type CachedIdentifiers struct {
	source IdentifierSource
	cache  cache.Cache
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedIdentifiers wraps source. A nil cache or non-positive ttl
// disables caching.
func NewCachedIdentifiers(source IdentifierSource, c cache.Cache, ttl time.Duration, log *logger.Logger) *CachedIdentifiers {
	return &CachedIdentifiers{source: source, cache: c, ttl: ttl, log: log}
}

// ResolveIdentifiers implements IdentifierSource.
func (c *CachedIdentifiers) ResolveIdentifiers(ctx context.Context) (scraper.Identifiers, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.source.ResolveIdentifiers(ctx)
	}
	log := c.log.WithContext(ctx)

	if data, ok, err := c.cache.Get(ctx, identifiersCacheKey); err != nil {
		log.Warn("identifier cache read failed", "error", err)
	} else if ok {
		var ids scraper.Identifiers
		decodeErr := json.Unmarshal(data, &ids)
		if decodeErr == nil {
			return ids, nil
		}
		log.Warn("identifier cache entry undecodable", "error", decodeErr)
	}

	ids, err := c.source.ResolveIdentifiers(ctx)
	if err != nil {
		return scraper.Identifiers{}, err
	}

	data, err := json.Marshal(ids)
	if err != nil {
		log.Warn("identifier cache encode failed", "error", err)
		return ids, nil
	}
	if err := c.cache.Set(ctx, identifiersCacheKey, data, c.ttl); err != nil {
		log.Warn("identifier cache write failed", "error", err)
	}
	return ids, nil
}
