/*
Package cache keeps serialized API responses that can never change, such as
closed deposits. Redis is used when configured, otherwise the responses are
kept in memory.
*/
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iov-one/savingbank/errors"
	"github.com/redis/go-redis/v9"
)

// Cache stores raw values under string keys. Values never expire, but a
// bounded cache may evict them.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// keyPrefix namespaces every key written to redis.
const keyPrefix = "savingbank:"

// RedisCache is a Cache backed by a redis server.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache returns a cache using the redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

// Get returns false on a miss, and also when redis cannot be reached: a cache
// failure only costs a node query.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Close releases the connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// DefaultMemoryEntries bounds the in-memory cache used when no redis server
// is configured.
const DefaultMemoryEntries = 4096

// MemoryCache is a Cache kept in the process memory. The least recently used
// entries are evicted once it holds size values.
type MemoryCache struct {
	entries *lru.Cache[string, []byte]
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache returns a cache holding at most size values.
func NewMemoryCache(size int) (*MemoryCache, error) {
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cache size %d: %s", size, err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return m.entries.Get(key)
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	m.entries.Add(key, append([]byte(nil), value...))
	return nil
}

// Len returns the number of cached values.
func (m *MemoryCache) Len() int {
	return m.entries.Len()
}
