package filters

import (
	"errors"
	"fmt"
	"slices"

	"filtergram/internal/opencv/conversion"

	"gocv.io/x/gocv"
)

// Input keys a filter may declare.
const (
	KeyImage     = "inputImage"
	KeyIntensity = "inputIntensity"
	KeyRadius    = "inputRadius"
	KeyScale     = "inputScale"
	KeyLevels    = "inputLevels"
)

var ErrNoInput = errors.New("no input image bound")

// Handle is an instantiated filter: it is bound to one source Mat and keeps
// its own keyed values. Handles are not safe for concurrent use.
type Handle interface {
	Kind() Kind
	// InputKeys lists the keys the filter consumes, image key included.
	InputKeys() []string
	// SetInput binds src without taking ownership of it.
	SetInput(src gocv.Mat)
	// SetValue stores value under key. Keys the filter does not declare are
	// ignored.
	SetValue(key string, value float64)
	Value(key string) float64
	// Output renders the filter into a new Mat owned by the caller.
	Output() (gocv.Mat, error)
}

type renderFunc func(src gocv.Mat, value func(string) float64) (gocv.Mat, error)

type handle struct {
	kind     Kind
	keys     []string
	values   map[string]float64
	render   renderFunc
	input    gocv.Mat
	hasInput bool
}

func (h *handle) Kind() Kind {
	return h.kind
}

func (h *handle) InputKeys() []string {
	return slices.Clone(h.keys)
}

func (h *handle) SetInput(src gocv.Mat) {
	h.input = src
	h.hasInput = true
}

func (h *handle) SetValue(key string, value float64) {
	if key == KeyImage || !slices.Contains(h.keys, key) {
		return
	}
	h.values[key] = value
}

func (h *handle) Value(key string) float64 {
	return h.values[key]
}

func (h *handle) Output() (gocv.Mat, error) {
	if !h.hasInput {
		return gocv.NewMat(), ErrNoInput
	}
	if err := conversion.ValidateMat(h.input, h.kind.String()); err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %w", ErrNoInput, err)
	}

	out, err := h.render(h.input, h.Value)
	if err != nil {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("%s: %w", h.kind, err)
	}
	return out, nil
}
