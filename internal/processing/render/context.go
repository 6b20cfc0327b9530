package render

import (
	"fmt"
	"image"
	"time"

	"filtergram/internal/logger"
	"filtergram/internal/opencv/conversion"
	"filtergram/internal/processing/filters"
)

// Context turns bound filter handles into rasters. It holds no per-render
// state, so one instance serves the whole process.
type Context struct {
	logger logger.Logger
}

func NewContext(log logger.Logger) *Context {
	return &Context{logger: log}
}

// Render evaluates h and returns its output as an *image.RGBA.
func (c *Context) Render(h filters.Handle) (image.Image, error) {
	start := time.Now()

	mat, err := h.Output()
	defer mat.Close()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", h.Kind(), err)
	}

	img, err := conversion.MatToImage(mat)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", h.Kind(), err)
	}

	c.logger.Debug("RenderContext", "filter rendered", map[string]interface{}{
		"filter":   h.Kind().String(),
		"width":    img.Bounds().Dx(),
		"height":   img.Bounds().Dy(),
		"duration": time.Since(start).String(),
	})

	return img, nil
}
