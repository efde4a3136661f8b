package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache stores finished translations. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

const MEMORY_CACHE_SIZE = 2048

// MemoryCache is an in-process LRU. Entries are evicted past size or once
// ttl elapses.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryCache falls back to MEMORY_CACHE_SIZE when size is not positive.
// A non-positive ttl keeps entries until they are evicted by size.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = MEMORY_CACHE_SIZE
	}
	return &MemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m *MemoryCache) Set(_ context.Context, key, value string) {
	m.lru.Add(key, value)
}

func (m *MemoryCache) Len() int {
	return m.lru.Len()
}

// CachedTranslator consults each cache in order before calling the wrapped
// translator. Only successful translations are stored.
type CachedTranslator struct {
	next   Translator
	caches []Cache
}

func NewCachedTranslator(next Translator, caches ...Cache) *CachedTranslator {
	return &CachedTranslator{next: next, caches: caches}
}

func (c *CachedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := CacheKey(text, source, target)

	for i, cache := range c.caches {
		if v, ok := cache.Get(ctx, key); ok {
			// backfill the faster caches in front of the hit
			for _, front := range c.caches[:i] {
				front.Set(ctx, key, v)
			}
			slog.Debug("[CachedTranslator] Cache hit", slog.String("key", key), slog.Int("level", i))
			return v, nil
		}
	}

	translated, err := c.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	for _, cache := range c.caches {
		cache.Set(ctx, key, translated)
	}
	return translated, nil
}

func CacheKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(text))
	return "translation:" + source + ":" + target + ":" + hex.EncodeToString(sum[:])
}
