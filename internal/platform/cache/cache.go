package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Options struct {
	TTL                  time.Duration
	StaleWhileRevalidate time.Duration
	MaxEntries           int
}

// MetricsHooks receive the key prefix (text before the first ':') so label
// cardinality stays bounded.
type MetricsHooks struct {
	OnHit   func(prefix string)
	OnMiss  func(prefix string)
	OnStale func(prefix string)
	OnEvict func(prefix string)
}

type entry struct {
	value     interface{}
	expiresAt time.Time
	staleAt   time.Time
}

// Cache is an in-process read-through cache. Concurrent loads of one key are
// collapsed with singleflight; errors are never stored.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*entry
	order   []string
	gen     uint64
	opts    Options
	metrics MetricsHooks
	sf      singleflight.Group
}

type Loader func(ctx context.Context) (interface{}, error)

func New(opts Options, hooks MetricsHooks) *Cache {
	return &Cache{
		items:   make(map[string]*entry),
		order:   make([]string, 0, 128),
		opts:    opts,
		metrics: hooks,
	}
}

// Get returns the cached value for key or runs loader. A zero TTL disables
// caching but keeps load collapsing.
func (c *Cache) Get(ctx context.Context, key string, loader Loader) (interface{}, error) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.items[key]
	gen := c.gen
	c.mu.RUnlock()

	if ok {
		if now.Before(e.expiresAt) {
			c.hook(c.metrics.OnHit, key)
			return e.value, nil
		}
		if now.Before(e.staleAt) {
			c.hook(c.metrics.OnStale, key)
			go func() {
				_, _, _ = c.sf.Do(flightKey("refresh:"+key, gen), func() (interface{}, error) {
					val, err := loader(context.WithoutCancel(ctx))
					if err == nil {
						c.store(key, val, gen)
					}
					return nil, nil
				})
			}()
			return e.value, nil
		}
		c.Delete(key)
	}

	c.hook(c.metrics.OnMiss, key)
	val, err, _ := c.sf.Do(flightKey(key, gen), func() (interface{}, error) {
		val, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, val, gen)
		return val, nil
	})
	return val, err
}

// flightKey scopes load collapsing to one cache generation so callers
// arriving after an invalidation never share a load that began before it.
func flightKey(key string, gen uint64) string {
	return key + "#" + strconv.FormatUint(gen, 10)
}

// store drops the value when an invalidation happened after the load began.
func (c *Cache) store(key string, val interface{}, gen uint64) {
	if c.opts.TTL <= 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
	}
	c.items[key] = &entry{
		value:     val,
		expiresAt: now.Add(c.opts.TTL),
		staleAt:   now.Add(c.opts.TTL + c.opts.StaleWhileRevalidate),
	}
	c.evictIfNeeded()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.items[key]; ok {
		delete(c.items, key)
		c.removeFromOrder(key)
	}
	c.mu.Unlock()
}

// DeletePrefix removes every key starting with one of the prefixes and
// returns how many entries were dropped. In-flight loads started before the
// call will not populate the cache.
func (c *Cache) DeletePrefix(prefixes ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	removed := 0
	kept := c.order[:0]
	for _, k := range c.order {
		if hasAnyPrefix(k, prefixes) {
			delete(c.items, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	c.order = kept
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// FIFO eviction.
func (c *Cache) evictIfNeeded() {
	if c.opts.MaxEntries <= 0 {
		return
	}
	for len(c.items) > c.opts.MaxEntries && len(c.order) > 0 {
		victim := c.order[0]
		c.order = c.order[1:]
		delete(c.items, victim)
		c.hook(c.metrics.OnEvict, victim)
	}
}

func (c *Cache) hook(fn func(string), key string) {
	if fn == nil {
		return
	}
	fn(Prefix(key))
}

// Prefix returns the namespace portion of a key.
func Prefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
