package loader

import (
	"errors"

	"github.com/meshview/loader/fetch"
	"github.com/meshview/loader/render"
	"github.com/meshview/loader/store"
)

// ErrAllMethodsFailed is returned when both the cache path and the single
// uncached fallback fetch failed. It is terminal: no automatic retries
// follow.
var ErrAllMethodsFailed = errors.New("all load methods failed")

// Errors re-exported from store.
var (
	// ErrStorageUnavailable is returned when the persistent store cannot
	// be opened or upgraded.
	ErrStorageUnavailable = store.ErrUnavailable

	// ErrStorageRead is returned when reading the cached blob fails.
	ErrStorageRead = store.ErrRead

	// ErrStorageWrite is returned when persisting a blob fails. After a
	// successful fetch this is non-fatal and swallowed.
	ErrStorageWrite = store.ErrWrite
)

// Errors re-exported from fetch and render.
var (
	// ErrNetwork is returned when the transport fails.
	ErrNetwork = fetch.ErrNetwork

	// ErrModelParse is returned when a payload cannot be decoded as a
	// model.
	ErrModelParse = render.ErrParse
)
