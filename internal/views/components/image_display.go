package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 600
	ImageAreaHeight = 450

	PlaceholderText = "Tap to select a picture"
)

// ImageDisplay shows the processed photo, or a grey placeholder asking the
// user to pick one. Tapping anywhere on it calls OnTapped.
type ImageDisplay struct {
	widget.BaseWidget

	OnTapped func()

	background  *canvas.Rectangle
	placeholder *canvas.Text
	image       *canvas.Image
}

func NewImageDisplay(onTapped func()) *ImageDisplay {
	d := &ImageDisplay{OnTapped: onTapped}

	d.background = canvas.NewRectangle(color.NRGBA{R: 142, G: 142, B: 147, A: 255})
	d.background.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	d.placeholder = canvas.NewText(PlaceholderText, color.White)
	d.placeholder.TextSize = theme.TextHeadingSize()
	d.placeholder.TextStyle = fyne.TextStyle{Bold: true}

	d.image = canvas.NewImageFromImage(nil)
	d.image.FillMode = canvas.ImageFillContain
	d.image.ScaleMode = canvas.ImageScaleSmooth
	d.image.Hide()

	d.ExtendBaseWidget(d)
	return d
}

func (d *ImageDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(
		d.background,
		container.NewCenter(d.placeholder),
		d.image,
	))
}

func (d *ImageDisplay) Tapped(*fyne.PointEvent) {
	if d.OnTapped != nil {
		d.OnTapped()
	}
}

// SetImage replaces the shown photo; nil brings the placeholder back.
func (d *ImageDisplay) SetImage(img image.Image) {
	d.image.Image = img
	if img != nil {
		d.background.Hide()
		d.placeholder.Hide()
		d.image.Show()
	} else {
		d.image.Hide()
		d.background.Show()
		d.placeholder.Show()
	}
	d.Refresh()
}

func (d *ImageDisplay) Image() image.Image {
	return d.image.Image
}

func (d *ImageDisplay) PlaceholderVisible() bool {
	return d.placeholder.Visible()
}
