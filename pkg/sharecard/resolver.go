package sharecard

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// twitterCardType is the fixed card flag for share previews with an image.
const twitterCardType = "summary_large_image"

// Resolver turns share IDs into preview metadata.
// It never fails: any lookup fault degrades to fallback metadata.
type Resolver struct {
	source       Source
	baseURL      string
	siteName     string
	fallbackText string
	policy       *bluemonday.Policy
	log          *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBaseURL makes image URLs absolute, e.g. "https://example.com".
// Without it, image URLs are site-relative paths.
func WithBaseURL(base string) ResolverOption {
	return func(r *Resolver) {
		r.baseURL = strings.TrimRight(base, "/")
	}
}

// WithSiteName sets the title used for fallback metadata.
func WithSiteName(name string) ResolverOption {
	return func(r *Resolver) {
		r.siteName = name
	}
}

// WithFallbackDescription sets the description used for fallback metadata.
func WithFallbackDescription(text string) ResolverOption {
	return func(r *Resolver) {
		r.fallbackText = text
	}
}

// WithLogger sets the diagnostic sink.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a Resolver over the given record source.
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:       source,
		siteName:     "Shared result",
		fallbackText: "See what this is about.",
		policy:       bluemonday.StrictPolicy(),
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveMetadata resolves the preview metadata for a share ID. It does not
// return an error: an unknown ID or an unreachable share service yields
// generic fallback metadata with no image references, and the fault is
// emitted to the diagnostic sink.
func (r *Resolver) ResolveMetadata(ctx context.Context, id string) Metadata {
	rec, err := r.source.Record(ctx, id)
	if err != nil {
		return r.fallback(ctx, id, err)
	}

	title := r.policy.Sanitize(rec.Title)
	if title == "" {
		title = r.siteName
	}
	desc := r.policy.Sanitize(rec.Caption)
	if desc == "" {
		desc = r.fallbackText
	}

	img := r.ImageURL(rec.ID)

	return Metadata{
		Title:       title,
		Description: desc,
		OpenGraph:   OpenGraph{Type: "website", Images: []string{img}},
		Twitter:     Twitter{Card: twitterCardType, Images: []string{img}},
	}
}

// ImageURL returns the deterministic image endpoint target for a share ID.
// The path shape is /api/share/{id}/image; the endpoint itself answers with
// a permanent redirect to the generated asset.
func (r *Resolver) ImageURL(id string) string {
	return r.baseURL + "/api/share/" + url.PathEscape(id) + "/image"
}

// fallback builds the generic metadata served when a lookup fails.
func (r *Resolver) fallback(ctx context.Context, id string, err error) Metadata {
	attrs := []any{
		slog.String("share_id", id),
		slog.String("error", err.Error()),
	}
	if errors.Is(err, ErrUpstreamUnavailable) {
		attrs = append(attrs, slog.Bool("retryable", true))
		r.log.WarnContext(ctx, "share service unavailable, serving fallback metadata", attrs...)
	} else {
		r.log.WarnContext(ctx, "share record not found, serving fallback metadata", attrs...)
	}

	return Metadata{
		Title:       r.siteName,
		Description: r.fallbackText,
		OpenGraph:   OpenGraph{Type: "website"},
		Twitter:     Twitter{Card: "summary"},
		Fallback:    true,
	}
}
