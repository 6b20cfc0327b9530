package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"

	"filtergram/internal/config"
	"filtergram/internal/logger"
	"filtergram/internal/models"
	"filtergram/internal/processing/filters"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	cfg := config.Default()
	cfg.AlbumDir = t.TempDir()
	cfg.SaveFormat = "png"
	cfg.DefaultFilter = "Edges"

	a, err := New(fyneApp, cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func pngPhoto(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func TestNewUsesConfiguredFilter(t *testing.T) {
	a := newTestApplication(t)

	assert.Equal(t, filters.Edges, a.pipeline.Kind())
	assert.Equal(t, "FilterGram", a.window.Title())
	assert.False(t, a.pipeline.Loaded())
}

func TestSelectEditAndSave(t *testing.T) {
	a := newTestApplication(t)

	a.controller.ImageSelected(pngPhoto(t), "photo.png")
	require.True(t, a.pipeline.Loaded())

	a.controller.FilterChosen(filters.Vignette)
	a.controller.ParameterChanged(models.Intensity, 0.9)
	a.controller.Save()
	a.library.Wait()

	entries, err := os.ReadDir(a.library.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestShutdownReleasesPipeline(t *testing.T) {
	a := newTestApplication(t)
	a.controller.ImageSelected(pngPhoto(t), "photo.png")

	done := make(chan struct{})
	go func() {
		a.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not finish")
	}
	assert.Error(t, a.pipeline.SelectImage(models.NewImageData(image.NewRGBA(image.Rect(0, 0, 1, 1)), "png", "x")))
}
