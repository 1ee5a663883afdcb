// Package banner implements the transient advisory status line shown while
// a model loads.
//
// The banner never blocks the pipeline: Show and ShowError return
// immediately, and error messages auto-dismiss after a fixed delay.
package banner

import (
	"sync"
	"time"
)

// DefaultErrorTTL is how long an error message stays visible before
// auto-dismissing.
const DefaultErrorTTL = 8 * time.Second

// Level classifies a banner message.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Banner holds the current advisory message.
type Banner struct {
	errorTTL time.Duration
	onChange func(msg string, level Level, visible bool)

	mu      sync.Mutex
	msg     string
	level   Level
	visible bool
	timer   *time.Timer
	seq     uint64 // bumped per message so stale dismiss timers no-op
}

// Option configures a Banner.
type Option func(*Banner)

// WithErrorTTL sets the auto-dismiss delay for error messages.
func WithErrorTTL(ttl time.Duration) Option {
	return func(b *Banner) {
		b.errorTTL = ttl
	}
}

// WithOnChange registers a callback invoked after every visible change,
// for binding the banner to a UI surface. The callback runs with the
// banner unlocked.
func WithOnChange(fn func(msg string, level Level, visible bool)) Option {
	return func(b *Banner) {
		b.onChange = fn
	}
}

// New creates a Banner.
func New(opts ...Option) *Banner {
	b := &Banner{errorTTL: DefaultErrorTTL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Show displays an informational message. It stays up until replaced or
// dismissed.
func (b *Banner) Show(msg string) {
	b.set(msg, LevelInfo)
}

// ShowError displays an error message that auto-dismisses after the
// configured TTL.
func (b *Banner) ShowError(msg string) {
	b.set(msg, LevelError)
}

// Dismiss hides the current message.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	b.dismissLocked()
}

// dismissSeq hides the message identified by seq. A timer whose message
// was already replaced finds a different sequence and does nothing.
func (b *Banner) dismissSeq(seq uint64) {
	b.mu.Lock()
	if b.seq != seq || !b.visible {
		b.mu.Unlock()
		return
	}
	b.dismissLocked()
}

// dismissLocked finishes a dismissal; it releases the mutex itself so the
// change callback runs unlocked.
func (b *Banner) dismissLocked() {
	b.stopTimerLocked()
	b.visible = false
	msg, level := b.msg, b.level
	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(msg, level, false)
	}
}

// Current returns the visible message, or ok=false if none is shown.
func (b *Banner) Current() (msg string, level Level, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.visible {
		return "", LevelInfo, false
	}
	return b.msg, b.level, true
}

func (b *Banner) set(msg string, level Level) {
	b.mu.Lock()
	b.stopTimerLocked()
	b.msg = msg
	b.level = level
	b.visible = true
	b.seq++
	if level == LevelError && b.errorTTL > 0 {
		seq := b.seq
		b.timer = time.AfterFunc(b.errorTTL, func() { b.dismissSeq(seq) })
	}
	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(msg, level, true)
	}
}

func (b *Banner) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
