// Package render defines the narrow interface the loading pipeline hands
// decoded model payloads to.
//
// The pipeline treats rendering as an external collaborator: it delivers
// one buffered binary payload and only cares whether the payload parsed.
// Scene setup, lighting, and the animation loop live on the other side of
// the Renderer interface.
package render

import "errors"

// ErrParse is returned when a payload cannot be decoded as a model.
var ErrParse = errors.New("model parse failed")

// Renderer consumes a model payload and displays it. A successful call
// replaces the currently displayed model; a decode failure wraps
// [ErrParse].
type Renderer interface {
	Render(payload []byte) error
}

// Func adapts a function to the Renderer interface.
type Func func(payload []byte) error

// Render calls f.
func (f Func) Render(payload []byte) error { return f(payload) }

// Default values for the optional display controls.
const (
	DefaultBrightness = 1.0
	DefaultContrast   = 1.0
	DefaultScale      = 1.0
)

// Params carries the optional numeric display controls. Absent controls
// are fine: zero values normalize to defaults, and the pipeline never
// blocks loading on them.
type Params struct {
	Brightness float64
	Contrast   float64
	Scale      float64
}

// Normalize replaces unset (zero or negative) controls with defaults.
func (p Params) Normalize() Params {
	if p.Brightness <= 0 {
		p.Brightness = DefaultBrightness
	}
	if p.Contrast <= 0 {
		p.Contrast = DefaultContrast
	}
	if p.Scale <= 0 {
		p.Scale = DefaultScale
	}
	return p
}
