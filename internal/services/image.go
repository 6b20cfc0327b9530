package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"filtergram/internal/logger"
	"filtergram/internal/models"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageService decodes picked photos and encodes processed ones.
type ImageService struct {
	maxDimension int
	logger       logger.Logger
}

// NewImageService returns a service that shrinks decoded photos so neither
// side exceeds maxDimension. Zero disables the limit.
func NewImageService(maxDimension int, log logger.Logger) *ImageService {
	return &ImageService{
		maxDimension: maxDimension,
		logger:       log,
	}
}

// Decode reads a whole photo from r. EXIF orientation is applied so the
// raster matches what a photo picker would show.
func (s *ImageService) Decode(r io.Reader, name string) (*models.ImageData, error) {
	startTime := time.Now()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, name, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	scaled := false
	if b := img.Bounds(); s.maxDimension > 0 && (b.Dx() > s.maxDimension || b.Dy() > s.maxDimension) {
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
		scaled = true
	}

	imageData := models.NewImageData(img, format, name)
	imageData.FileSize = int64(len(data))
	imageData.Scaled = scaled

	s.logger.Info("ImageService", "image decoded", map[string]interface{}{
		"name":     name,
		"format":   format,
		"width":    imageData.Width,
		"height":   imageData.Height,
		"bytes":    len(data),
		"scaled":   scaled,
		"duration": time.Since(startTime).String(),
	})

	return imageData, nil
}

// Encode writes img to w as format ("jpeg", "jpg" or "png").
func (s *ImageService) Encode(w io.Writer, img image.Image, format string, jpegQuality int) error {
	f, err := encodeFormat(format)
	if err != nil {
		return err
	}

	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func encodeFormat(format string) (imaging.Format, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "jpeg", "jpg":
		return imaging.JPEG, nil
	case "png":
		return imaging.PNG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Extension returns the file extension used when saving in format.
func Extension(format string) string {
	f, err := encodeFormat(format)
	if err != nil {
		return ""
	}
	if f == imaging.JPEG {
		return ".jpg"
	}
	return ".png"
}

// ImageExtensions lists the file extensions Decode understands.
func ImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}
