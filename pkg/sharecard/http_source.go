package sharecard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultLookupTimeout bounds a single record lookup.
const defaultLookupTimeout = 5 * time.Second

// HTTPSource reads share records from the share service's JSON API.
// One lookup is exactly one GET {base}/records/{id}; there is no retry loop.
type HTTPSource struct {
	base   string
	client *http.Client
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// NewHTTPSource creates a Source over the share service at base,
// e.g. "https://share.internal.example.com/api".
func NewHTTPSource(base string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: defaultLookupTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record fetches one share record. A 404 maps to ErrNotFound; transport
// faults and 5xx responses map to ErrUpstreamUnavailable.
func (s *HTTPSource) Record(ctx context.Context, id string) (Record, error) {
	u := s.base + "/records/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Decoded below.
	case resp.StatusCode == http.StatusNotFound:
		return Record{}, ErrNotFound
	case resp.StatusCode >= 500:
		return Record{}, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	default:
		return Record{}, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("%w: decode: %w", ErrUpstreamUnavailable, err)
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}
