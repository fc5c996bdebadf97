package sharecard_test

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

// countingSource records how many lookups reached it.
type countingSource struct {
	inner sharecard.Source
	calls int
}

func (c *countingSource) Record(ctx context.Context, id string) (sharecard.Record, error) {
	c.calls++
	return c.inner.Record(ctx, id)
}

func TestCachedSource_DegradesWhenRedisDown(t *testing.T) {
	t.Parallel()

	// Nothing listens here; every cache operation fails.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingSource{inner: mapSource{
		"abc": {ID: "abc", Title: "T"},
	}}
	source := sharecard.NewCachedSource(inner, rdb)

	rec, err := source.Record(context.Background(), "abc")
	require.NoError(t, err, "a broken cache must not break resolution")
	assert.Equal(t, "T", rec.Title)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_InnerErrorsPassThrough(t *testing.T) {
	t.Parallel()

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	source := sharecard.NewCachedSource(mapSource{}, rdb)

	_, err := source.Record(context.Background(), "nope")
	require.ErrorIs(t, err, sharecard.ErrNotFound)
}
