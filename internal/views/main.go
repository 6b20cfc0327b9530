package views

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"filtergram/internal/models"
	"filtergram/internal/processing/filters"
	"filtergram/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const Title = "FilterGram"

// MainView is the single FilterGram screen.
type MainView struct {
	window       fyne.Window
	imageDisplay *components.ImageDisplay
	controls     *components.Controls
	statusBar    *components.StatusBar
	sheet        *filterSheet
	extensions   []string

	imageSelectedHandler   func(io.Reader, string)
	filterChosenHandler    func(filters.Kind)
	parameterChangeHandler func(models.Parameter, float64)
	saveHandler            func()
}

// NewMainView builds the screen into window. extensions limits the file
// picker; an empty list shows every file.
func NewMainView(window fyne.Window, params models.ParameterSet, filter filters.Kind, extensions []string) *MainView {
	mv := &MainView{
		window:     window,
		extensions: extensions,
	}

	mv.imageDisplay = components.NewImageDisplay(mv.ShowImagePicker)
	mv.controls = components.NewControls(params, filter.String())
	mv.statusBar = components.NewStatusBar()
	mv.sheet = newFilterSheet(window, mv.chooseFilter)

	mv.controls.SetParameterHandler(func(p models.Parameter, value float64) {
		if mv.parameterChangeHandler != nil {
			mv.parameterChangeHandler(p, value)
		}
	})
	mv.controls.SetFilterHandler(mv.ShowFilterSheet)
	mv.controls.SetSaveHandler(mv.save)

	mv.buildLayout()
	window.SetMainMenu(mv.mainMenu())
	return mv
}

func (mv *MainView) buildLayout() {
	content := container.NewBorder(
		nil,
		container.NewVBox(mv.controls.GetContainer(), widget.NewSeparator(), mv.statusBar.GetContainer()),
		nil, nil,
		mv.imageDisplay,
	)
	mv.window.SetContent(container.NewPadded(content))
}

func (mv *MainView) mainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo...", mv.ShowImagePicker),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mv.save),
	)

	filterItems := make([]*fyne.MenuItem, 0, len(filters.Kinds()))
	for _, kind := range filters.Kinds() {
		filterItems = append(filterItems, fyne.NewMenuItem(kind.String(), func() {
			mv.chooseFilter(kind)
		}))
	}

	return fyne.NewMainMenu(fileMenu, fyne.NewMenu("Filter", filterItems...))
}

// Event handler setters, called during wiring.

func (mv *MainView) SetImageSelectedHandler(handler func(io.Reader, string)) {
	mv.imageSelectedHandler = handler
}

func (mv *MainView) SetFilterChosenHandler(handler func(filters.Kind)) {
	mv.filterChosenHandler = handler
}

func (mv *MainView) SetParameterChangeHandler(handler func(models.Parameter, float64)) {
	mv.parameterChangeHandler = handler
}

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.saveHandler = handler
}

// ShowImagePicker opens the file dialog. The chosen file is read off the
// UI thread and handed to the image handler back on it.
func (mv *MainView) ShowImagePicker() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mv.window)
			return
		}
		if reader == nil {
			return
		}
		go mv.readPicked(reader)
	}, mv.window)

	if len(mv.extensions) > 0 {
		picker.SetFilter(storage.NewExtensionFileFilter(mv.extensions))
	}
	picker.Show()
}

func (mv *MainView) readPicked(reader fyne.URIReadCloser) {
	defer reader.Close()

	name := reader.URI().Name()
	data, err := io.ReadAll(reader)

	fyne.Do(func() {
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read %s: %w", name, err), mv.window)
			return
		}
		mv.imageSelected(bytes.NewReader(data), name)
	})
}

func (mv *MainView) imageSelected(r io.Reader, name string) {
	if mv.imageSelectedHandler != nil {
		mv.imageSelectedHandler(r, name)
	}
}

func (mv *MainView) ShowFilterSheet() {
	mv.sheet.Show()
}

func (mv *MainView) chooseFilter(kind filters.Kind) {
	if mv.filterChosenHandler != nil {
		mv.filterChosenHandler(kind)
	}
}

func (mv *MainView) save() {
	if mv.saveHandler != nil {
		mv.saveHandler()
	}
}

// UI update methods, called by the controller.

func (mv *MainView) SetImage(img image.Image) {
	mv.imageDisplay.SetImage(img)
	if img != nil {
		b := img.Bounds()
		mv.statusBar.SetImageInfo(b.Dx(), b.Dy())
	}
}

func (mv *MainView) SetFilterName(name string) {
	mv.controls.SetFilterName(name)
}

func (mv *MainView) ShowAlert(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// UpdateStatus is safe to call from any goroutine.
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) Show() {
	mv.window.Show()
}
