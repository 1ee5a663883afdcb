package render

import (
	"errors"
	"fmt"
	"sync"
)

// Model is a decoded model whose resources can be released when it is no
// longer displayed.
type Model interface {
	Release()
}

// DecodeFunc turns a binary payload into a displayable Model. Decode
// failures should wrap [ErrParse]; Display wraps unadorned errors itself.
type DecodeFunc func(payload []byte) (Model, error)

// Display owns the currently displayed model. Each successful render
// swaps the current model in atomically and releases the previous one.
type Display struct {
	decode DecodeFunc

	mu      sync.Mutex
	current Model
}

// NewDisplay creates a Display that decodes payloads with decode.
func NewDisplay(decode DecodeFunc) *Display {
	return &Display{decode: decode}
}

// Render decodes payload and makes it the displayed model, releasing the
// model it replaces.
func (d *Display) Render(payload []byte) error {
	model, err := d.decode(payload)
	if err != nil {
		return wrapParse(err)
	}

	d.mu.Lock()
	previous := d.current
	d.current = model
	d.mu.Unlock()

	if previous != nil {
		previous.Release()
	}
	return nil
}

// Current returns the displayed model, or nil if nothing has rendered yet.
func (d *Display) Current() Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Close releases the displayed model, if any.
func (d *Display) Close() error {
	d.mu.Lock()
	current := d.current
	d.current = nil
	d.mu.Unlock()

	if current != nil {
		current.Release()
	}
	return nil
}

func wrapParse(err error) error {
	if err == nil {
		return nil
	}
	// Keep already-classified errors as-is.
	if errors.Is(err, ErrParse) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}

var _ Renderer = (*Display)(nil)
