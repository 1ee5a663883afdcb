package loader

// State identifies a step of the load sequence. Every transition is
// reported through the loader's status callback before the next step
// begins.
type State int

const (
	// StateCheckingCache is the initial state: the store is being opened
	// and read.
	StateCheckingCache State = iota

	// StateCacheHit means the stored blob is being handed to the renderer.
	StateCacheHit

	// StateCacheMiss means nothing was stored and the primary fetch is
	// running.
	StateCacheMiss

	// StateFallbackFetch means the cache path or primary fetch failed and
	// the single uncached fallback fetch is running.
	StateFallbackFetch

	// StateReady means the model was handed to the renderer successfully.
	StateReady

	// StateFailed means the fallback also failed; no further automatic
	// attempts occur.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCheckingCache:
		return "checking-cache"
	case StateCacheHit:
		return "cache-hit"
	case StateCacheMiss:
		return "cache-miss"
	case StateFallbackFetch:
		return "fallback-fetch"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusFunc receives advisory status updates as the sequence advances.
// The message is display text for a banner, not part of the data model.
type StatusFunc func(state State, msg string)
