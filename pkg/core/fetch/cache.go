package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis"

	"investilearn/pkg/models"
)

// Cache is the TTL key-value store behind CachingFetcher. Get reports a
// miss with false; Set failures are logged by the caller and otherwise
// ignored.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration) error
}

// memoryCache is the default in-process cache. Expiry is lazy: stale
// entries are dropped on the next Get.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// NewMemoryCache builds an in-process TTL cache.
func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (c *memoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

func (c *memoryCache) Set(key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

// redisCache backs the cache with a Redis instance so multiple API
// processes share one fetch budget.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis at addr and verifies the connection
// with a ping.
func NewRedisCache(addr string) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(key string) (string, bool) {
	val, err := c.client.Get(key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		fmt.Printf("[CACHE] redis get failed for %s: %v\n", key, err)
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(key, value string, ttl time.Duration) error {
	return c.client.Set(key, value, ttl).Err()
}

// CachingFetcher wraps a Fetcher with a TTL cache. Hits skip the vendor
// entirely; not-found results are never cached so a transient outage
// does not pin a ticker as missing.
type CachingFetcher struct {
	inner Fetcher
	cache Cache
	ttl   time.Duration
}

// NewCachingFetcher wraps inner with cache. A zero ttl defaults to one
// hour.
func NewCachingFetcher(inner Fetcher, cache Cache, ttl time.Duration) *CachingFetcher {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachingFetcher{inner: inner, cache: cache, ttl: ttl}
}

var _ Fetcher = (*CachingFetcher)(nil)

func (f *CachingFetcher) CompanyInfo(ctx context.Context, ticker string) (*models.CompanyMetrics, error) {
	key := "profile:" + ticker
	if raw, ok := f.cache.Get(key); ok {
		var m models.CompanyMetrics
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return &m, nil
		}
	}

	m, err := f.inner.CompanyInfo(ctx, ticker)
	if err != nil {
		return nil, err
	}
	f.store(key, m)
	return m, nil
}

func (f *CachingFetcher) Statements(ctx context.Context, ticker string) StatementSet {
	key := "statements:" + ticker
	if raw, ok := f.cache.Get(key); ok {
		var set StatementSet
		if err := json.Unmarshal([]byte(raw), &set); err == nil {
			return set
		}
	}

	set := f.inner.Statements(ctx, ticker)
	if set.Income != nil || set.Balance != nil || set.CashFlow != nil {
		f.store(key, set)
	}
	return set
}

func (f *CachingFetcher) News(ctx context.Context, ticker string, maxItems int) []models.NewsItem {
	key := fmt.Sprintf("news:%s:%d", ticker, maxItems)
	if raw, ok := f.cache.Get(key); ok {
		var items []models.NewsItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return items
		}
	}

	items := f.inner.News(ctx, ticker, maxItems)
	if len(items) > 0 {
		f.store(key, items)
	}
	return items
}

func (f *CachingFetcher) HistoricalPrices(ctx context.Context, ticker string, period string) []models.PricePoint {
	key := fmt.Sprintf("prices:%s:%s", ticker, period)
	if raw, ok := f.cache.Get(key); ok {
		var points []models.PricePoint
		if err := json.Unmarshal([]byte(raw), &points); err == nil {
			return points
		}
	}

	points := f.inner.HistoricalPrices(ctx, ticker, period)
	if len(points) > 0 {
		f.store(key, points)
	}
	return points
}

func (f *CachingFetcher) store(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := f.cache.Set(key, string(raw), f.ttl); err != nil {
		fmt.Printf("[CACHE] set failed for %s: %v\n", key, err)
	}
}
