package components

import (
	"math"

	"filtergram/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const sliderStep = 0.01

// Controls holds the three parameter sliders and the filter and save
// buttons under the photo.
type Controls struct {
	container    *fyne.Container
	sliders      map[models.Parameter]*widget.Slider
	filterButton *widget.Button
	saveButton   *widget.Button

	parameterHandler func(models.Parameter, float64)
	filterHandler    func()
	saveHandler      func()
}

func NewControls(initial models.ParameterSet, filterName string) *Controls {
	c := &Controls{
		sliders: make(map[models.Parameter]*widget.Slider),
	}
	c.createComponents(initial, filterName)
	c.buildLayout()
	return c
}

func (c *Controls) createComponents(initial models.ParameterSet, filterName string) {
	for _, p := range models.Parameters() {
		slider := widget.NewSlider(0, 1)
		slider.Step = sliderStep
		slider.Value = sliderValue(initial.Get(p))

		param := p
		slider.OnChanged = func(value float64) {
			if c.parameterHandler != nil {
				c.parameterHandler(param, value)
			}
		}
		c.sliders[p] = slider
	}

	c.filterButton = widget.NewButton(filterName, func() {
		if c.filterHandler != nil {
			c.filterHandler()
		}
	})

	c.saveButton = widget.NewButton("Save", func() {
		if c.saveHandler != nil {
			c.saveHandler()
		}
	})
	c.saveButton.Importance = widget.HighImportance
}

func (c *Controls) buildLayout() {
	form := container.New(layout.NewFormLayout())
	for _, p := range models.Parameters() {
		form.Add(widget.NewLabel(p.Label()))
		form.Add(c.sliders[p])
	}

	c.container = container.NewVBox(
		form,
		container.NewHBox(c.filterButton, layout.NewSpacer(), c.saveButton),
	)
}

// sliderValue maps a stored parameter onto the [0,1] slider track. Scale
// may be stored above the track's end.
func sliderValue(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (c *Controls) SetParameterHandler(handler func(models.Parameter, float64)) {
	c.parameterHandler = handler
}

func (c *Controls) SetFilterHandler(handler func()) {
	c.filterHandler = handler
}

func (c *Controls) SetSaveHandler(handler func()) {
	c.saveHandler = handler
}

func (c *Controls) SetFilterName(name string) {
	c.filterButton.SetText(name)
}

func (c *Controls) FilterName() string {
	return c.filterButton.Text
}

func (c *Controls) Slider(p models.Parameter) *widget.Slider {
	return c.sliders[p]
}

func (c *Controls) FilterButton() *widget.Button {
	return c.filterButton
}

func (c *Controls) SaveButton() *widget.Button {
	return c.saveButton
}

func (c *Controls) GetContainer() *fyne.Container {
	return c.container
}
