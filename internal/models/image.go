package models

import (
	"image"
	"time"
)

// ImageData is a decoded source photo with the metadata gathered while
// loading it.
type ImageData struct {
	Image    image.Image
	Width    int
	Height   int
	Format   string
	Name     string
	FileSize int64
	LoadTime time.Time
	// Scaled is set when the photo was shrunk to fit the configured
	// maximum dimension.
	Scaled bool
}

func NewImageData(img image.Image, format, name string) *ImageData {
	data := &ImageData{
		Image:    img,
		Format:   format,
		Name:     name,
		LoadTime: time.Now(),
	}
	if img != nil {
		bounds := img.Bounds()
		data.Width = bounds.Dx()
		data.Height = bounds.Dy()
	}
	return data
}

// Empty reports whether there is no usable raster.
func (d *ImageData) Empty() bool {
	return d == nil || d.Image == nil || d.Image.Bounds().Empty()
}
