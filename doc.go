// Package loader implements the cache-or-fetch loading pipeline of a 3D
// model viewer.
//
// A [Loader] retrieves one binary model asset from a fixed remote URL,
// keeps a best-effort persistent cache of the downloaded bytes, and hands
// the payload to a render collaborator. The sequence per session is:
//
//	CheckingCache → CacheHit             → Ready
//	CheckingCache → CacheMiss → fetch    → Ready (payload cached best-effort)
//	any failure   → FallbackFetch        → Ready | Failed
//
// A cache hit serves the stored bytes directly. On a miss the asset is
// fetched and written back to the store; a write failure there is logged
// and swallowed, never blocking rendering. Any cache-path or primary-fetch
// failure triggers exactly one uncached fallback fetch. Only a failure of
// the fallback itself is terminal, reported as [ErrAllMethodsFailed].
//
// # Quick Start
//
//	st, err := sqlite.Open("viewer.db")
//	if err != nil {
//	    // degrade gracefully: the loader falls back to direct fetches
//	}
//	l, err := loader.New("https://assets.example.com/ship.glb", display,
//	    loader.WithStore(st),
//	    loader.WithStatusFunc(func(s loader.State, msg string) { banner.Show(msg) }),
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := l.Load(ctx)
//
// Stores live in [github.com/meshview/loader/store] with SQLite and disk
// implementations; the render collaborator contract lives in
// [github.com/meshview/loader/render].
package loader
