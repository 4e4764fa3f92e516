// Package store holds issued challenge records for a bounded time and
// guarantees at-most-one successful retrieval per challenge.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports a backend failure. It is never conflated with a
// missing record: callers surface it as a service-unavailable condition,
// not as a failed verification.
var ErrUnavailable = errors.New("challenge store unavailable")

// Store is the challenge lifecycle contract, polymorphic over backends.
//
// Records are write-once, read-once: Put stores an opaque payload under a
// collision-free id, and Take atomically fetches and deletes it. Two
// concurrent Takes of the same id can never both observe the record; that
// atomicity is what makes a captured challenge id unreplayable. Unread
// records expire after their TTL, after which Take returns nil.
type Store interface {
	Put(ctx context.Context, id string, payload []byte, ttl time.Duration) error
	// Take returns (nil, nil) when the id is absent or expired.
	Take(ctx context.Context, id string) ([]byte, error)
	Close() error
}
