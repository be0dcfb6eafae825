// Package cache is a small read-through entity cache on Redis. Values are
// JSON-encoded and expire after a configured TTL. The cache is strictly an
// accelerator: every operation degrades to a no-op when Redis is absent or
// failing, and callers must never depend on a hit.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTTL = 5 * time.Minute

type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = strings.Trim(prefix, ":") }
}

func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// New builds a store around an existing Redis client. A nil client yields a
// disabled store whose methods all no-op, so callers need no branching.
func New(rdb *redis.Client, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		rdb:    rdb,
		prefix: "taskhive",
		ttl:    defaultTTL,
		log:    logger.With().Str("component", "cache").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key renders the canonical cache key for an entity.
func (s *Store) Key(kind string, id int64) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s:%d", s.prefix, kind, id)
}

// Get loads a cached value into dest. Returns false on miss, decode failure
// or Redis trouble; failures are logged, never surfaced.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if s == nil || s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache decode failed")
		return false
	}
	return true
}

// Set stores a value with the configured TTL, best effort.
func (s *Store) Set(ctx context.Context, key string, v any) {
	if s == nil || s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate drops keys after a mutation, best effort.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidate failed")
	}
}
