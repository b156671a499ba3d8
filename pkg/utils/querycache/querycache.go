// Package querycache is a short-lived read-through cache for query results.
// Entries are grouped by namespace; Invalidate drops a whole namespace at once
// and must be called by every write to the data behind it.
package querycache

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const defaultMaxBytes = 32 * 1024 * 1024

// Cache stores JSON encoded results in fastcache behind an expiry header.
// A nil *Cache or a non-positive TTL disables caching.
type Cache struct {
	fc  *fastcache.Cache
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	gens map[string]uint64
}

type config struct {
	maxBytes int
	now      func() time.Time
}

// Option configures New.
type Option func(*config)

// WithMaxBytes sets the memory budget of the cache.
func WithMaxBytes(n int) Option {
	return func(c *config) {
		c.maxBytes = n
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func New(ttl time.Duration, opts ...Option) *Cache {
	cfg := &config{
		maxBytes: defaultMaxBytes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Cache{
		fc:   fastcache.New(cfg.maxBytes),
		ttl:  ttl,
		now:  cfg.now,
		gens: make(map[string]uint64),
	}
}

func (c *Cache) enabled() bool {
	return c != nil && c.ttl > 0
}

// TTL returns how long an entry stays valid.
func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// Invalidate drops every entry of namespace. Old entries become unreachable
// and are evicted by fastcache as space is needed.
func (c *Cache) Invalidate(namespace string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.gens[namespace]++
	c.mu.Unlock()
}

// Reset drops every entry.
func (c *Cache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fc.Reset()
	for ns := range c.gens {
		c.gens[ns]++
	}
}

func (c *Cache) fullKey(namespace, key string) []byte {
	c.mu.Lock()
	gen := c.gens[namespace]
	c.mu.Unlock()
	return []byte(namespace + "\x00" + strconv.FormatUint(gen, 10) + "\x00" + key)
}

// lookup returns the payload for k if it exists and has not expired.
func (c *Cache) lookup(k []byte) ([]byte, bool) {
	buf := c.fc.GetBig(nil, k)
	if len(buf) < 8 {
		return nil, false
	}
	expires := int64(binary.BigEndian.Uint64(buf[:8]))
	if c.now().UnixNano() >= expires {
		return nil, false
	}
	return buf[8:], true
}

func (c *Cache) store(k, payload []byte) {
	buf := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint64(buf[:8], uint64(c.now().Add(c.ttl).UnixNano()))
	copy(buf[8:], payload)
	c.fc.SetBig(k, buf)
}

// Get returns the cached result of key in namespace, calling load on a miss.
// Results are decoded fresh on every hit so callers may modify them.
func Get[T any](ctx context.Context, c *Cache, namespace, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if !c.enabled() {
		return load(ctx)
	}

	logger := logging.From(ctx)
	k := c.fullKey(namespace, key)

	if payload, ok := c.lookup(k); ok {
		var v T
		err := json.Unmarshal(payload, &v)
		if err == nil {
			logger.Debug("query cache hit", "namespace", namespace, "key", key)
			return v, nil
		}
		logger.Warn("failed to decode cached query", "namespace", namespace, "key", key, logging.ErrAttr(err))
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		logger.Warn("failed to encode query result", "namespace", namespace, "key", key,
			logging.ErrAttr(goerr.Wrap(err, "failed to marshal cache entry")))
		return v, nil
	}
	c.store(k, payload)
	logger.Debug("query cache stored", "namespace", namespace, "key", key)
	return v, nil
}
