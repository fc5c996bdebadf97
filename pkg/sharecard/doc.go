// Package sharecard resolves opaque share identifiers into social preview
// metadata.
//
// Share records are created out-of-band by the share service; this package
// only reads them. A Source abstracts where records come from (the share
// service's HTTP API, its Postgres read replica, or a Redis read-through
// cache over either). The Resolver turns a record into OpenGraph/Twitter
// metadata pointing at the image endpoint, and degrades to generic fallback
// metadata on any lookup failure so a malformed or expired share link still
// renders a valid preview.
package sharecard
