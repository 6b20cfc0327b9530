package views

import (
	"filtergram/internal/processing/filters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const filterSheetTitle = "Select a filter"

// filterSheet is the modal listing every filter plus Cancel.
type filterSheet struct {
	dialog  *dialog.CustomDialog
	buttons []*widget.Button
	cancel  *widget.Button
}

func newFilterSheet(parent fyne.Window, onSelect func(filters.Kind)) *filterSheet {
	sheet := &filterSheet{}
	list := container.NewVBox()

	for _, kind := range filters.Kinds() {
		button := widget.NewButton(kind.String(), func() {
			sheet.dialog.Hide()
			onSelect(kind)
		})
		sheet.buttons = append(sheet.buttons, button)
		list.Add(button)
	}

	sheet.cancel = widget.NewButton("Cancel", func() {
		sheet.dialog.Hide()
	})
	sheet.cancel.Importance = widget.LowImportance
	list.Add(widget.NewSeparator())
	list.Add(sheet.cancel)

	sheet.dialog = dialog.NewCustomWithoutButtons(filterSheetTitle, list, parent)
	return sheet
}

func (s *filterSheet) Show() {
	s.dialog.Show()
}
