package pipeline

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"filtergram/internal/logger"
	"filtergram/internal/models"
	"filtergram/internal/opencv/conversion"
	"filtergram/internal/processing/filters"

	"gocv.io/x/gocv"
)

var (
	ErrNoImage = errors.New("no image")
	ErrClosed  = errors.New("pipeline closed")
)

// Renderer evaluates a bound filter handle into a raster.
type Renderer interface {
	Render(h filters.Handle) (image.Image, error)
}

// Pipeline owns the current photo, the active filter and the processed
// output. Every mutation recomputes the output before returning.
type Pipeline struct {
	mu       sync.RWMutex
	registry *filters.Registry
	renderer Renderer
	logger   logger.Logger

	params *models.ParameterSet
	kind   filters.Kind
	handle filters.Handle

	source    *models.ImageData
	sourceMat gocv.Mat
	output    image.Image
	loaded    bool
	closed    bool
}

// New builds an empty pipeline with kind selected. params is shared with
// the caller; a nil set starts from the defaults.
func New(registry *filters.Registry, renderer Renderer, params *models.ParameterSet, kind filters.Kind, log logger.Logger) (*Pipeline, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid filter kind %d", int(kind))
	}
	if params == nil {
		params = models.NewParameterSet()
	}

	return &Pipeline{
		registry: registry,
		renderer: renderer,
		logger:   log,
		params:   params,
		kind:     kind,
		handle:   registry.Instantiate(kind),
	}, nil
}

// SelectImage replaces the source photo and recomputes the output. On
// error the pipeline is left as it was.
func (p *Pipeline) SelectImage(img *models.ImageData) error {
	if img.Empty() {
		return ErrNoImage
	}

	mat, err := conversion.ImageToMat(img.Image)
	if err != nil {
		return fmt.Errorf("failed to convert source image: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		mat.Close()
		return ErrClosed
	}

	previous, hadSource := p.sourceMat, p.source != nil
	p.source = img
	p.sourceMat = mat
	p.handle.SetInput(mat)
	if hadSource {
		previous.Close()
	}

	p.recompute()
	p.loaded = true

	p.logger.Info("Pipeline", "image selected", map[string]interface{}{
		"name":   img.Name,
		"format": img.Format,
		"width":  img.Width,
		"height": img.Height,
	})
	return nil
}

// SelectFilter swaps in a fresh handle for kind. The parameter set is
// kept; values stored on the previous handle are not.
func (p *Pipeline) SelectFilter(kind filters.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid filter kind %d", int(kind))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.kind = kind
	p.handle = p.registry.Instantiate(kind)
	if p.source != nil && !p.closed {
		p.handle.SetInput(p.sourceMat)
	}
	p.recompute()

	p.logger.Debug("Pipeline", "filter selected", map[string]interface{}{
		"filter": kind.String(),
		"params": filters.SupportedParameters(p.handle),
	})
	return nil
}

// SetParameter clamps value into the parameter set and recomputes.
func (p *Pipeline) SetParameter(param models.Parameter, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.params.Set(param, value)
	p.recompute()
}

// recompute pushes the parameter set into the handle and renders. The
// caller holds the write lock.
func (p *Pipeline) recompute() {
	if p.source == nil || p.closed {
		return
	}

	for _, param := range filters.SupportedParameters(p.handle) {
		p.handle.SetValue(filters.KeyFor(param), drivenValue(param, p.params))
	}

	out, err := p.renderer.Render(p.handle)
	if err != nil {
		p.logger.Warning("Pipeline", "render failed, keeping previous output", map[string]interface{}{
			"filter": p.kind.String(),
			"error":  err.Error(),
		})
		return
	}
	p.output = out
}

// drivenValue is the value pushed into the handle key for param. All three
// keys follow the intensity control; the radius and scale controls are
// stored but not read here.
func drivenValue(param models.Parameter, ps *models.ParameterSet) float64 {
	switch param {
	case models.Radius:
		return ps.Intensity * 200
	default:
		return ps.Intensity
	}
}

// Output is the processed image, or nil before any image was selected.
func (p *Pipeline) Output() image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.output
}

func (p *Pipeline) Source() *models.ImageData {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// Loaded reports whether an image has ever been selected.
func (p *Pipeline) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

func (p *Pipeline) Kind() filters.Kind {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.kind
}

// SupportedParameters lists the controls the active filter consumes.
func (p *Pipeline) SupportedParameters() []models.Parameter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return filters.SupportedParameters(p.handle)
}

// Parameters returns a copy of the current parameter set.
func (p *Pipeline) Parameters() models.ParameterSet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return *p.params
}

// Close releases the source Mat. The last output stays readable.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.source != nil {
		p.sourceMat.Close()
	}
}

func (p *Pipeline) Shutdown() {
	p.Close()
	p.logger.Info("Pipeline", "pipeline released", nil)
}
