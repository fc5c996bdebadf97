package sharecard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultCacheTTL bounds how long a cached record is served. Records are
// immutable after creation, so the TTL only limits cache growth.
const defaultCacheTTL = 15 * time.Minute

// CachedSource is a Redis read-through cache over another Source.
// Cache faults degrade to the inner source and are logged, never returned:
// a broken cache must not break share resolution.
type CachedSource struct {
	inner Source
	rdb   redis.UniversalClient
	ttl   time.Duration
	log   *slog.Logger
}

// CachedSourceOption configures a CachedSource.
type CachedSourceOption func(*CachedSource)

// WithCacheTTL sets how long records stay cached.
func WithCacheTTL(ttl time.Duration) CachedSourceOption {
	return func(s *CachedSource) {
		s.ttl = ttl
	}
}

// WithCacheLogger sets the logger for cache fault diagnostics.
func WithCacheLogger(log *slog.Logger) CachedSourceOption {
	return func(s *CachedSource) {
		s.log = log
	}
}

// NewCachedSource wraps inner with a Redis read-through cache.
func NewCachedSource(inner Source, rdb redis.UniversalClient, opts ...CachedSourceOption) *CachedSource {
	s := &CachedSource{
		inner: inner,
		rdb:   rdb,
		ttl:   defaultCacheTTL,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record returns the cached record on a hit, otherwise consults the inner
// source and backfills the cache. Negative results are not cached: an ID
// unknown now may exist moments later, since creation is out-of-band.
func (s *CachedSource) Record(ctx context.Context, id string) (Record, error) {
	key := cacheKey(id)

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var rec Record
		if jsonErr := json.Unmarshal(data, &rec); jsonErr == nil {
			return rec, nil
		}
		// Corrupt entry: drop it and fall through to the inner source.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.WarnContext(ctx, "share record cache read failed",
			slog.String("share_id", id),
			slog.String("error", err.Error()))
	}

	rec, err := s.inner.Record(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.log.WarnContext(ctx, "share record cache write failed",
				slog.String("share_id", id),
				slog.String("error", err.Error()))
		}
	}

	return rec, nil
}

func cacheKey(id string) string {
	return "sharecard:record:" + id
}
