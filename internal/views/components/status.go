package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the outcome of the last save and details of the photo.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel: widget.NewLabel(""),
		imageInfo:   widget.NewLabel("No image loaded"),
	}
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.container = container.NewBorder(nil, nil, nil, sb.imageInfo, sb.statusLabel)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetImageInfo(width, height int) {
	sb.imageInfo.SetText(fmt.Sprintf("%d×%d px", width, height))
}

func (sb *StatusBar) ImageInfo() string {
	return sb.imageInfo.Text
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
