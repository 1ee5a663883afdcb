package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/meshview/loader/render"
	"github.com/meshview/loader/store"
)

// Fetcher retrieves the full remote payload. *fetch.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result describes a finished load sequence.
type Result struct {
	// State is the terminal state, StateReady or StateFailed.
	State State

	// Payload is the model payload handed to the renderer. Nil when the
	// sequence failed.
	Payload []byte

	// FromCache is true when the payload was served from the store.
	FromCache bool

	// Fallback is true when the payload came from the uncached fallback
	// fetch.
	Fallback bool
}

// Loader orchestrates the cache-or-fetch load sequence for one model URL.
type Loader struct {
	url       string
	renderer  render.Renderer
	fetcher   Fetcher
	openStore store.Opener
	status    StatusFunc
	logger    *slog.Logger

	group singleflight.Group
}

// New creates a Loader for the given model URL and render collaborator.
//
// Without a store option the loader runs uncached: every Load fetches.
// Without a fetcher option a default [github.com/meshview/loader/fetch]
// fetcher is used.
func New(url string, renderer render.Renderer, opts ...Option) (*Loader, error) {
	if url == "" {
		return nil, errors.New("model url is empty")
	}
	if renderer == nil {
		return nil, errors.New("renderer is nil")
	}
	l := &Loader{
		url:      url,
		renderer: renderer,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if l.fetcher == nil {
		l.fetcher = defaultFetcher()
	}
	return l, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (l *Loader) log() *slog.Logger {
	if l.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.logger
}

// Load runs the load sequence and returns its terminal result.
//
// Exactly one sequence runs at a time: concurrent calls coalesce onto the
// in-flight sequence and share its result. On terminal failure the error
// wraps [ErrAllMethodsFailed].
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	v, err, _ := l.group.Do(l.url, func() (any, error) {
		return l.load(ctx)
	})
	res, _ := v.(*Result)
	return res, err
}

func (l *Loader) load(ctx context.Context) (*Result, error) {
	l.transition(StateCheckingCache, "checking for a cached model")

	st, err := l.openCache(ctx)
	if err != nil {
		l.log().Warn("cache store unavailable", "error", err)
		return l.fallback(ctx, err)
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				l.log().Warn("closing cache store", "error", cerr)
			}
		}()

		blob, ok, err := st.Get(ctx)
		if err != nil {
			l.log().Warn("cache read failed", "error", err)
			return l.fallback(ctx, err)
		}
		if ok {
			l.transition(StateCacheHit, "loading model from cache")
			if rerr := l.renderer.Render(blob); rerr != nil {
				l.log().Warn("cached model failed to render", "error", rerr)
				return l.fallback(ctx, rerr)
			}
			l.transition(StateReady, "model ready (cached)")
			return &Result{State: StateReady, Payload: blob, FromCache: true}, nil
		}
	}

	l.transition(StateCacheMiss, "downloading model")
	blob, err := l.fetcher.Fetch(ctx, l.url)
	if err != nil {
		l.log().Warn("primary fetch failed", "url", l.url, "error", err)
		return l.fallback(ctx, err)
	}

	// Best-effort cache write: a failure here is logged and swallowed so
	// an already-fetched model always renders.
	if st != nil {
		if werr := st.Put(ctx, blob); werr != nil {
			l.log().Warn("cache write failed", "error", werr)
		} else {
			l.log().Debug("model cached", "bytes", len(blob))
		}
	}

	if rerr := l.renderer.Render(blob); rerr != nil {
		l.log().Warn("fetched model failed to render", "error", rerr)
		return l.fallback(ctx, rerr)
	}
	l.transition(StateReady, "model ready")
	return &Result{State: StateReady, Payload: blob}, nil
}

// fallback performs the single uncached fetch attempt. Its result is never
// written to the store, and its failure is terminal.
func (l *Loader) fallback(ctx context.Context, cause error) (*Result, error) {
	l.transition(StateFallbackFetch, "retrying download without cache")

	blob, err := l.fetcher.Fetch(ctx, l.url)
	if err == nil {
		if rerr := l.renderer.Render(blob); rerr != nil {
			err = rerr
		} else {
			l.transition(StateReady, "model ready (uncached)")
			return &Result{State: StateReady, Payload: blob, Fallback: true}, nil
		}
	}

	l.log().Error("fallback fetch failed", "url", l.url, "error", err)
	l.transition(StateFailed, "model could not be loaded")
	return &Result{State: StateFailed},
		fmt.Errorf("%w: primary: %v; fallback: %v", ErrAllMethodsFailed, cause, err)
}

// openCache opens the store for this sequence. A nil opener means caching
// is disabled and the sequence proceeds straight to the primary fetch.
func (l *Loader) openCache(ctx context.Context) (store.Store, error) {
	if l.openStore == nil {
		return nil, nil
	}
	return l.openStore(ctx)
}

func (l *Loader) transition(state State, msg string) {
	l.log().Debug("state transition", "state", state.String())
	if l.status != nil {
		l.status(state, msg)
	}
}
