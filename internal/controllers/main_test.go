package controllers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"filtergram/internal/logger"
	"filtergram/internal/models"
	"filtergram/internal/pipeline"
	"filtergram/internal/processing/filters"
	"filtergram/internal/processing/render"
	"filtergram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alert struct {
	title, message string
}

type fakeView struct {
	mu      sync.Mutex
	image   image.Image
	filter  string
	alerts  []alert
	status  []string
	updates int
}

func (v *fakeView) SetImage(img image.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.image = img
	v.updates++
}

func (v *fakeView) SetFilterName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = name
}

func (v *fakeView) ShowAlert(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, alert{title, message})
}

func (v *fakeView) UpdateStatus(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = append(v.status, status)
}

type fakeSaver struct {
	err   error
	saved []image.Image
}

func (s *fakeSaver) WriteToPhotoAlbum(img image.Image, onSuccess func(string), onError func(error)) {
	if s.err != nil {
		onError(s.err)
		return
	}
	s.saved = append(s.saved, img)
	onSuccess("/album/FilterGram_1.jpg")
}

func setup(t *testing.T) (*MainController, *fakeView, *fakeSaver) {
	t.Helper()
	log := logger.NewNop()
	p, err := pipeline.New(filters.NewRegistry(), render.NewContext(log), nil, filters.SepiaTone, log)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	saver := &fakeSaver{}
	mc := NewMainController(p, services.NewImageService(0, log), saver, log)
	view := &fakeView{}
	mc.SetView(view)
	return mc, view, saver
}

func photo(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func TestSetViewShowsInitialFilter(t *testing.T) {
	_, view, _ := setup(t)

	assert.Equal(t, "Sepia Tone", view.filter)
	assert.Nil(t, view.image)
}

func TestSaveWithoutImageAlerts(t *testing.T) {
	mc, view, saver := setup(t)

	mc.Save()

	require.Len(t, view.alerts, 1)
	assert.Equal(t, alert{"Error:", "Image has not been loaded, please select an image"}, view.alerts[0])
	assert.Empty(t, saver.saved)
	assert.Empty(t, view.status)
}

func TestImageSelectedShowsOutput(t *testing.T) {
	mc, view, _ := setup(t)

	mc.ImageSelected(photo(t), "photo.png")

	assert.Empty(t, view.alerts)
	require.NotNil(t, view.image)
	assert.Equal(t, image.Rect(0, 0, 6, 6), view.image.Bounds())
}

func TestImageSelectedDecodeFailure(t *testing.T) {
	mc, view, _ := setup(t)

	mc.ImageSelected(strings.NewReader("nope"), "broken.png")

	require.Len(t, view.alerts, 1)
	assert.Equal(t, "Error:", view.alerts[0].title)
	assert.Contains(t, view.alerts[0].message, "broken.png")
	assert.Nil(t, view.image)

	mc.Save()
	assert.Len(t, view.alerts, 2)
}

func TestSaveReportsSuccess(t *testing.T) {
	mc, view, saver := setup(t)
	mc.ImageSelected(photo(t), "photo.png")

	mc.Save()

	require.Len(t, saver.saved, 1)
	assert.Same(t, view.image, saver.saved[0])
	assert.Equal(t, []string{"Success!"}, view.status)
}

func TestSaveReportsFailure(t *testing.T) {
	mc, view, saver := setup(t)
	saver.err = errors.New("disk full")
	mc.ImageSelected(photo(t), "photo.png")

	mc.Save()

	assert.Equal(t, []string{"Oops: disk full"}, view.status)
	assert.Empty(t, view.alerts)
}

func TestFilterChosenUpdatesNameAndImage(t *testing.T) {
	mc, view, _ := setup(t)
	mc.ImageSelected(photo(t), "photo.png")
	before := view.updates

	mc.FilterChosen(filters.Pixellate)

	assert.Equal(t, "Pixellate", view.filter)
	assert.Equal(t, filters.Pixellate, mc.Filter())
	assert.Equal(t, before+1, view.updates)
}

func TestParameterChangedKeepsValue(t *testing.T) {
	mc, view, _ := setup(t)

	mc.ParameterChanged(models.Intensity, 0.3)
	mc.ParameterChanged(models.Scale, 0.8)

	assert.Equal(t, 0.3, mc.Parameters().Intensity)
	assert.Equal(t, 0.8, mc.Parameters().Scale)
	assert.Nil(t, view.image)
}
