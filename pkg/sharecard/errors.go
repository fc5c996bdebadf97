package sharecard

import "errors"

var (
	// ErrNotFound means the ID has no record behind it.
	ErrNotFound = errors.New("sharecard: record not found")
	// ErrUpstreamUnavailable means the share service could not be reached.
	ErrUpstreamUnavailable = errors.New("sharecard: upstream unavailable")
)
