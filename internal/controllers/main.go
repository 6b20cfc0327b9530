package controllers

import (
	"fmt"
	"image"
	"io"

	"filtergram/internal/logger"
	"filtergram/internal/models"
	"filtergram/internal/pipeline"
	"filtergram/internal/processing/filters"
)

const (
	AlertTitleError   = "Error:"
	MessageNotLoaded  = "Image has not been loaded, please select an image"
	StatusSaved       = "Success!"
	statusErrorPrefix = "Oops: "
)

// View is the surface the controller drives. UpdateStatus may be called
// from a background goroutine; the other methods are called on the UI
// thread.
type View interface {
	SetImage(img image.Image)
	SetFilterName(name string)
	ShowAlert(title, message string)
	UpdateStatus(status string)
}

type Decoder interface {
	Decode(r io.Reader, name string) (*models.ImageData, error)
}

type Saver interface {
	WriteToPhotoAlbum(img image.Image, onSuccess func(path string), onError func(err error))
}

// MainController glues view events to the pipeline and the photo library.
type MainController struct {
	pipeline *pipeline.Pipeline
	decoder  Decoder
	saver    Saver
	logger   logger.Logger
	view     View
}

func NewMainController(p *pipeline.Pipeline, decoder Decoder, saver Saver, log logger.Logger) *MainController {
	return &MainController{
		pipeline: p,
		decoder:  decoder,
		saver:    saver,
		logger:   log,
	}
}

// SetView attaches the view and pushes the initial state into it.
func (mc *MainController) SetView(view View) {
	mc.view = view
	view.SetFilterName(mc.pipeline.Kind().String())
	mc.refresh()
}

// ImageSelected decodes a picked photo and makes it the source image.
func (mc *MainController) ImageSelected(r io.Reader, name string) {
	img, err := mc.decoder.Decode(r, name)
	if err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{"name": name})
		mc.view.ShowAlert(AlertTitleError, fmt.Sprintf("Could not open %s: %v", name, err))
		return
	}

	if err := mc.pipeline.SelectImage(img); err != nil {
		mc.logger.Error("MainController", err, map[string]interface{}{"name": name})
		mc.view.ShowAlert(AlertTitleError, fmt.Sprintf("Could not use %s: %v", name, err))
		return
	}
	mc.refresh()
}

func (mc *MainController) FilterChosen(kind filters.Kind) {
	if err := mc.pipeline.SelectFilter(kind); err != nil {
		mc.logger.Error("MainController", err, nil)
		return
	}
	mc.view.SetFilterName(kind.String())
	mc.refresh()
}

func (mc *MainController) ParameterChanged(p models.Parameter, value float64) {
	mc.pipeline.SetParameter(p, value)
	mc.refresh()
}

// Save writes the processed photo to the album. Without a loaded image it
// only raises the alert.
func (mc *MainController) Save() {
	if !mc.pipeline.Loaded() {
		mc.view.ShowAlert(AlertTitleError, MessageNotLoaded)
		return
	}

	output := mc.pipeline.Output()
	if output == nil {
		return
	}

	view := mc.view
	mc.saver.WriteToPhotoAlbum(output,
		func(string) {
			view.UpdateStatus(StatusSaved)
		},
		func(err error) {
			view.UpdateStatus(statusErrorPrefix + err.Error())
		},
	)
}

// Parameters returns the current slider values.
func (mc *MainController) Parameters() models.ParameterSet {
	return mc.pipeline.Parameters()
}

func (mc *MainController) Filter() filters.Kind {
	return mc.pipeline.Kind()
}

func (mc *MainController) refresh() {
	if out := mc.pipeline.Output(); out != nil {
		mc.view.SetImage(out)
	}
}
