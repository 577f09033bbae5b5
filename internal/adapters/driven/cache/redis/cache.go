// Package redis provides a web search result cache backed by Redis.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure SearchCache implements the interface.
var _ driven.SearchCache = (*SearchCache)(nil)

// keyPrefix namespaces cache entries in a shared Redis.
const keyPrefix = "kcc:websearch:"

// Default configuration values.
const (
	DefaultTTL         = time.Hour
	DefaultDialTimeout = 2 * time.Second
)

// Config holds configuration for the Redis cache.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password is optional.
	Password string

	// DB selects the Redis database.
	DB int

	// TTL is how long an outcome stays cached (default: 1h).
	TTL time.Duration

	// DialTimeout bounds connection attempts (default: 2s).
	DialTimeout time.Duration
}

// SearchCache stores fallback outcomes as JSON under a hashed query key.
type SearchCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewSearchCache creates a cache for the given server.
func NewSearchCache(cfg Config) (*SearchCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: redis address is empty", domain.ErrInvalidInput)
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  -1,
	})
	return NewSearchCacheWithClient(client, cfg.TTL), nil
}

// NewSearchCacheWithClient wraps an existing client.
func NewSearchCacheWithClient(client goredis.UniversalClient, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchCache{client: client, ttl: ttl}
}

// Get returns a cached outcome and true on a hit.
func (c *SearchCache) Get(ctx context.Context, key string) (*domain.FallbackOutcome, bool, error) {
	raw, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var outcome domain.FallbackOutcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return nil, false, fmt.Errorf("decode cached outcome: %w", err)
	}
	return &outcome, true, nil
}

// Set stores an outcome under key with the configured TTL.
// Unavailable outcomes are not cached.
func (c *SearchCache) Set(ctx context.Context, key string, outcome *domain.FallbackOutcome) error {
	if outcome == nil || outcome.Unavailable {
		return nil
	}
	raw, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if err := c.client.Set(ctx, redisKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks the server is reachable.
func (c *SearchCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *SearchCache) Close() error {
	return c.client.Close()
}

func redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return keyPrefix + hex.EncodeToString(sum[:])
}
