package sharecard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

// mapSource serves records from memory.
type mapSource map[string]sharecard.Record

func (m mapSource) Record(_ context.Context, id string) (sharecard.Record, error) {
	rec, ok := m[id]
	if !ok {
		return sharecard.Record{}, sharecard.ErrNotFound
	}
	return rec, nil
}

// downSource always fails as unreachable.
type downSource struct{}

func (downSource) Record(context.Context, string) (sharecard.Record, error) {
	return sharecard.Record{}, sharecard.ErrUpstreamUnavailable
}

func TestResolveMetadata_Found(t *testing.T) {
	t.Parallel()

	source := mapSource{
		"abc-123": {
			ID:        "abc-123",
			Title:     "My result",
			Caption:   "Check this out",
			CreatedAt: time.Now(),
		},
	}
	r := sharecard.NewResolver(source)

	meta := r.ResolveMetadata(context.Background(), "abc-123")

	assert.False(t, meta.Fallback)
	assert.Equal(t, "My result", meta.Title)
	assert.Equal(t, "Check this out", meta.Description)
	require.Len(t, meta.OpenGraph.Images, 1)
	assert.Equal(t, "/api/share/abc-123/image", meta.OpenGraph.Images[0])
	assert.Equal(t, "summary_large_image", meta.Twitter.Card)
	assert.Equal(t, meta.OpenGraph.Images, meta.Twitter.Images)
}

func TestResolveMetadata_UnknownIDFallsBack(t *testing.T) {
	t.Parallel()

	r := sharecard.NewResolver(mapSource{},
		sharecard.WithSiteName("Acme"),
		sharecard.WithFallbackDescription("Try it yourself."),
	)

	meta := r.ResolveMetadata(context.Background(), "unknown-id-123")

	assert.True(t, meta.Fallback)
	assert.Equal(t, "Acme", meta.Title)
	assert.Equal(t, "Try it yourself.", meta.Description)
	assert.Empty(t, meta.OpenGraph.Images, "fallback metadata carries no image references")
	assert.Empty(t, meta.Twitter.Images)
}

func TestResolveMetadata_UpstreamDownFallsBack(t *testing.T) {
	t.Parallel()

	r := sharecard.NewResolver(downSource{})

	meta := r.ResolveMetadata(context.Background(), "any")

	assert.True(t, meta.Fallback)
	assert.Empty(t, meta.OpenGraph.Images)
}

func TestResolveMetadata_SanitizesUpstreamText(t *testing.T) {
	t.Parallel()

	source := mapSource{
		"x": {
			ID:      "x",
			Title:   `<script>alert(1)</script>Hello`,
			Caption: `<img src=x onerror=alert(1)>plain`,
		},
	}
	r := sharecard.NewResolver(source)

	meta := r.ResolveMetadata(context.Background(), "x")

	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, "plain", meta.Description)
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	t.Run("relative by default", func(t *testing.T) {
		t.Parallel()

		r := sharecard.NewResolver(mapSource{})
		assert.Equal(t, "/api/share/id-1/image", r.ImageURL("id-1"))
	})

	t.Run("absolute with base URL", func(t *testing.T) {
		t.Parallel()

		r := sharecard.NewResolver(mapSource{}, sharecard.WithBaseURL("https://example.com/"))
		assert.Equal(t, "https://example.com/api/share/id-1/image", r.ImageURL("id-1"))
	})

	t.Run("path-escapes the id", func(t *testing.T) {
		t.Parallel()

		r := sharecard.NewResolver(mapSource{})
		assert.Equal(t, "/api/share/a%2Fb/image", r.ImageURL("a/b"))
	})
}

func TestSourceFunc(t *testing.T) {
	t.Parallel()

	var called bool
	src := sharecard.SourceFunc(func(context.Context, string) (sharecard.Record, error) {
		called = true
		return sharecard.Record{}, errors.New("boom")
	})

	_, err := src.Record(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, called)
}
