package render

import (
	"errors"
	"fmt"
	"testing"
)

type countingModel struct {
	released int
}

func (m *countingModel) Release() { m.released++ }

func TestDisplaySwapReleasesPrevious(t *testing.T) {
	t.Parallel()

	first := &countingModel{}
	second := &countingModel{}
	models := []*countingModel{first, second}
	d := NewDisplay(func([]byte) (Model, error) {
		m := models[0]
		models = models[1:]
		return m, nil
	})

	if err := d.Render([]byte("a")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if d.Current() != first {
		t.Fatal("Current() != first model")
	}
	if first.released != 0 {
		t.Fatal("first model released prematurely")
	}

	if err := d.Render([]byte("b")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if d.Current() != second {
		t.Fatal("Current() != second model")
	}
	if first.released != 1 {
		t.Fatalf("first model released %d times, want 1", first.released)
	}
	if second.released != 0 {
		t.Fatal("second model released prematurely")
	}
}

func TestDisplayDecodeFailureKeepsCurrent(t *testing.T) {
	t.Parallel()

	model := &countingModel{}
	calls := 0
	d := NewDisplay(func([]byte) (Model, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("unexpected bytes")
		}
		return model, nil
	})

	if err := d.Render([]byte("good")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	err := d.Render([]byte("bad"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Render() error = %v, want ErrParse", err)
	}
	if d.Current() != model {
		t.Fatal("failed render must not replace the displayed model")
	}
	if model.released != 0 {
		t.Fatal("displayed model must not be released on a failed render")
	}
}

func TestDisplayPreservesClassifiedParseErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("%w: bad chunk", ErrParse)
	d := NewDisplay(func([]byte) (Model, error) {
		return nil, wrapped
	})

	err := d.Render([]byte("x"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Render() error = %v, want ErrParse", err)
	}
}

func TestDisplayClose(t *testing.T) {
	t.Parallel()

	model := &countingModel{}
	d := NewDisplay(func([]byte) (Model, error) { return model, nil })

	if err := d.Render([]byte("a")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if model.released != 1 {
		t.Fatalf("model released %d times, want 1", model.released)
	}
	if d.Current() != nil {
		t.Fatal("Current() != nil after Close")
	}
}

func TestParamsNormalize(t *testing.T) {
	t.Parallel()

	p := Params{}.Normalize()
	if p.Brightness != DefaultBrightness || p.Contrast != DefaultContrast || p.Scale != DefaultScale {
		t.Fatalf("Normalize() = %+v", p)
	}

	set := Params{Brightness: 0.5, Contrast: 2, Scale: 1.5}.Normalize()
	if set != (Params{Brightness: 0.5, Contrast: 2, Scale: 1.5}) {
		t.Fatalf("Normalize() altered set params: %+v", set)
	}
}
