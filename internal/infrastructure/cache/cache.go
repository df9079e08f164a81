// Package cache implementa ports.SummaryCache: Redis cuando hay REDIS_ADDR, Memory
// con el store en memoria y Noop con PostgreSQL sin Redis.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/merchbydz/backoffice/internal/application/ports"
)

var (
	_ ports.SummaryCache = NoopCache{}
	_ ports.SummaryCache = (*MemoryCache)(nil)
	_ ports.SummaryCache = (*RedisCache)(nil)
)

// NoopCache nunca guarda nada.
type NoopCache struct{}

func (NoopCache) Generation(context.Context) (int64, error)                    { return 0, nil }
func (NoopCache) Get(context.Context, int64, string, any) (bool, error)        { return false, nil }
func (NoopCache) Set(context.Context, int64, string, any, time.Duration) error { return nil }
func (NoopCache) Invalidate(context.Context) error                             { return nil }

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryCache caché en proceso con TTL. Serializa a JSON igual que Redis para que
// los valores devueltos nunca compartan memoria con los guardados.
type MemoryCache struct {
	mu      sync.Mutex
	gen     int64
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *MemoryCache) Get(_ context.Context, gen int64, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if gen != c.gen {
		ok = false
	} else if ok && !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.payload, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set descarta el valor si gen ya no es la generación vigente.
func (c *MemoryCache) Set(_ context.Context, gen int64, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{payload: payload}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	c.gen++
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
