package conversion

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var (
	ErrNilImage        = errors.New("input image is nil")
	ErrEmptyMat        = errors.New("mat is empty")
	ErrUnsupportedType = errors.New("unsupported mat type")
)

// ValidateMat checks that m holds 8-bit BGR pixels the filters can work on.
func ValidateMat(m gocv.Mat, operation string) error {
	if m.Empty() {
		return fmt.Errorf("%s: %w", operation, ErrEmptyMat)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return fmt.Errorf("%s: invalid dimensions %dx%d: %w", operation, m.Cols(), m.Rows(), ErrEmptyMat)
	}
	if m.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%s: type %v: %w", operation, m.Type(), ErrUnsupportedType)
	}
	return nil
}

// ImageToMat converts a Go image into a BGR Mat owned by the caller.
// Alpha is dropped.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), ErrNilImage
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return gocv.NewMat(), fmt.Errorf("image has invalid dimensions %dx%d: %w", width, height, ErrEmptyMat)
	}

	buf := make([]byte, width*height*3)

	switch typed := img.(type) {
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			row := typed.Pix[typed.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			packRow(buf[y*width*3:], row, width)
		}
	case *image.RGBA:
		for y := 0; y < height; y++ {
			row := typed.Pix[typed.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			packRow(buf[y*width*3:], row, width)
		}
	default:
		for y := 0; y < height; y++ {
			out := buf[y*width*3:]
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				out[x*3+0] = uint8(b >> 8)
				out[x*3+1] = uint8(g >> 8)
				out[x*3+2] = uint8(r >> 8)
			}
		}
	}

	view, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, buf)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to create Mat from pixels: %w", err)
	}
	defer view.Close()

	// view aliases buf; the clone owns its memory.
	return view.Clone(), nil
}

// packRow copies one row of 4-byte RGBA-ordered pixels into BGR order.
func packRow(dst, src []byte, width int) {
	for x := 0; x < width; x++ {
		dst[x*3+0] = src[x*4+2]
		dst[x*3+1] = src[x*4+1]
		dst[x*3+2] = src[x*4+0]
	}
}

// MatToImage converts a BGR Mat into a fresh opaque RGBA image.
func MatToImage(m gocv.Mat) (*image.RGBA, error) {
	if err := ValidateMat(m, "Mat to image conversion"); err != nil {
		return nil, err
	}

	width, height := m.Cols(), m.Rows()
	data := m.ToBytes()
	if len(data) < width*height*3 {
		return nil, fmt.Errorf("Mat to image conversion: short pixel buffer (%d bytes): %w", len(data), ErrEmptyMat)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := data[y*width*3:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			dst[x*4+0] = src[x*3+2]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+0]
			dst[x*4+3] = 0xff
		}
	}

	return img, nil
}
