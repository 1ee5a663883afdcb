package loader

import (
	"log/slog"

	"github.com/meshview/loader/fetch"
	"github.com/meshview/loader/store"
)

// Option configures a Loader.
type Option func(*Loader) error

// WithStore serves and caches the model through s. The caller keeps
// ownership of s and closes it after the session.
func WithStore(s store.Store) Option {
	return func(l *Loader) error {
		if s == nil {
			l.openStore = nil
			return nil
		}
		l.openStore = store.Fixed(s)
		return nil
	}
}

// WithStoreOpener opens the store inside the load sequence, mirroring the
// store-open suspend point. The loader closes whatever the opener yields
// when the sequence ends. An open failure degrades the sequence to the
// uncached fallback fetch.
func WithStoreOpener(open store.Opener) Option {
	return func(l *Loader) error {
		l.openStore = open
		return nil
	}
}

// WithFetcher sets the fetcher used for the primary and fallback fetches.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) error {
		l.fetcher = f
		return nil
	}
}

// WithStatusFunc registers a callback for advisory status updates, one per
// state transition.
func WithStatusFunc(fn StatusFunc) Option {
	return func(l *Loader) error {
		l.status = fn
		return nil
	}
}

// WithLogger sets a logger for the loader.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		l.logger = logger
		return nil
	}
}

func defaultFetcher() Fetcher {
	return fetch.New()
}
