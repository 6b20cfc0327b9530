package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestImageToMatStoresBGR(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	m, err := ImageToMat(img)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, gocv.MatTypeCV8UC3, m.Type())
	assert.Equal(t, 1, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, []byte{10, 100, 200, 3, 2, 1}, m.ToBytes())
}

func TestRoundTripKeepsPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}

	m, err := ImageToMat(src)
	require.NoError(t, err)
	defer m.Close()

	out, err := MatToImage(m)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestRoundTripHonoursSubImageBounds(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(base.Pix); i += 4 {
		base.Pix[i] = 0xff
	}
	base.SetRGBA(2, 2, color.RGBA{R: 255, A: 255})
	sub := base.SubImage(image.Rect(2, 2, 4, 4))

	m, err := ImageToMat(sub)
	require.NoError(t, err)
	defer m.Close()

	out, err := MatToImage(m)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(1, 1))
}

func TestImageToMatGenericPath(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 90})

	m, err := ImageToMat(img)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, []byte{90, 90, 90}, m.ToBytes())
}

func TestImageToMatRejectsNil(t *testing.T) {
	m, err := ImageToMat(nil)
	defer m.Close()
	assert.ErrorIs(t, err, ErrNilImage)
}

func TestImageToMatRejectsZeroSize(t *testing.T) {
	m, err := ImageToMat(image.NewRGBA(image.Rectangle{}))
	defer m.Close()
	assert.ErrorIs(t, err, ErrEmptyMat)
}

func TestMatToImageRejectsEmpty(t *testing.T) {
	m := gocv.NewMat()
	defer m.Close()

	_, err := MatToImage(m)
	assert.ErrorIs(t, err, ErrEmptyMat)
}

func TestMatToImageRejectsGray(t *testing.T) {
	m := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC1)
	defer m.Close()

	_, err := MatToImage(m)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
