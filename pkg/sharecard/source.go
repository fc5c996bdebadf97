package sharecard

import (
	"context"
	"time"
)

// Record is a share card as created by the share service. Read-only at
// resolution time; this subsystem never updates or deletes records.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// Source looks up a share record by its opaque ID.
//
// Implementations return ErrNotFound when the ID has no record and
// ErrUpstreamUnavailable (possibly wrapped) when the backing service cannot
// be reached. A single lookup is one request/response; retries, if any,
// belong to the backing service.
type Source interface {
	Record(ctx context.Context, id string) (Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, id string) (Record, error)

// Record calls f.
func (f SourceFunc) Record(ctx context.Context, id string) (Record, error) {
	return f(ctx, id)
}
