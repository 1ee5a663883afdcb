// Package store defines persistent single-blob storage for the model cache.
//
// A Store holds at most one binary payload under one fixed key. It carries
// no metadata alongside the blob: no checksum, no timestamp, no source URL.
// A successful Put fully replaces any prior payload, and nothing in the
// loading pipeline ever deletes it — the blob persists until cleared
// externally (see Clearer).
package store

import (
	"context"
	"errors"
)

// Errors reported by Store implementations. Implementations wrap these so
// callers can classify failures with errors.Is.
var (
	// ErrUnavailable is returned when the underlying store cannot be
	// opened or its schema cannot be brought up.
	ErrUnavailable = errors.New("store unavailable")

	// ErrRead is returned when reading the stored blob fails. A missing
	// blob is not a read failure; Get reports absence via its ok result.
	ErrRead = errors.New("store read failed")

	// ErrWrite is returned when persisting a blob fails.
	ErrWrite = errors.New("store write failed")
)

// Store persists exactly one binary blob.
//
// Storage is all-or-nothing per call: a failed Put leaves the previous
// blob intact, and Get never returns a partial payload.
type Store interface {
	// Get returns the stored blob. ok is false when nothing has been
	// stored yet; err is non-nil only when the read itself failed.
	Get(ctx context.Context) (blob []byte, ok bool, err error)

	// Put persists blob, replacing any prior value.
	Put(ctx context.Context, blob []byte) error

	// Close releases the store's resources.
	Close() error
}

// Clearer is implemented by stores that support external clearing, the
// equivalent of wiping browser storage. The loading pipeline itself never
// calls Clear.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Opener produces a Store. Opening is part of the load sequence, so the
// orchestrator invokes the opener itself rather than taking an open store.
type Opener func(ctx context.Context) (Store, error)

// Fixed returns an Opener that always yields s. The orchestrator closes
// whatever its opener produces at the end of a load sequence, so Fixed
// shields s from that close; the caller keeps ownership.
func Fixed(s Store) Opener {
	return func(context.Context) (Store, error) {
		return nopCloser{s}, nil
	}
}

type nopCloser struct{ Store }

func (nopCloser) Close() error { return nil }
