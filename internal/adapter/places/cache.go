package places

import (
	"context"
	"fmt"
	"sync"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/cleankitchen-nyc/grading-service/internal/observability"
)

// CachedSearcher wraps a PlaceSearcher with an in-memory LRU cache for the
// lookups with stable keys. Details and reverse geocode results for a given
// place do not change between requests; text search is forwarded untouched
// because free-text queries rarely repeat exactly.
type CachedSearcher struct {
	inner   domain.PlaceSearcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSearcher creates a cache decorator around a place searcher.
func NewCachedSearcher(inner domain.PlaceSearcher, maxEntries int, metrics *observability.Metrics) *CachedSearcher {
	return &CachedSearcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSearcher) TextSearch(ctx context.Context, query string) ([]domain.Place, error) {
	return c.inner.TextSearch(ctx, query)
}

func (c *CachedSearcher) Details(ctx context.Context, placeID string) (domain.Place, error) {
	key := "det:" + placeID
	if v, ok := c.cache.get(key); ok {
		c.metrics.PlacesCache.WithLabelValues("details", "hit").Inc()
		return v.(domain.Place), nil
	}
	c.metrics.PlacesCache.WithLabelValues("details", "miss").Inc()

	place, err := c.inner.Details(ctx, placeID)
	if err != nil {
		return place, err
	}
	if place.PlaceID != "" {
		c.cache.put(key, place)
	}
	return place, nil
}

func (c *CachedSearcher) ReverseGeocode(ctx context.Context, lat, lng float64) (domain.AddressParts, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lng)
	if v, ok := c.cache.get(key); ok {
		c.metrics.PlacesCache.WithLabelValues("geocode", "hit").Inc()
		return v.(domain.AddressParts), nil
	}
	c.metrics.PlacesCache.WithLabelValues("geocode", "miss").Inc()

	parts, err := c.inner.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return parts, err
	}
	// Only cache non-empty results so transient lookup misses can be retried.
	if parts.Zipcode != "" || parts.Borough != "" {
		c.cache.put(key, parts)
	}
	return parts, nil
}

// lruCache is a simple thread-safe LRU cache.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value any
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
