package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ShowAddDialog asks for an executable path and an optional display name.
// onSubmit receives the trimmed values when the user confirms.
func ShowAddDialog(parent fyne.Window, onSubmit func(path, name string)) {
	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder(`C:\Program Files\App\app.exe`)
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Derived from the file name")

	browse := widget.NewButton("Browse...", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			pathEntry.SetText(rc.URI().Path())
			rc.Close()
		}, parent)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".exe", ".lnk", ".bat", ".cmd", ""}))
		fd.Show()
	})

	items := []*widget.FormItem{
		widget.NewFormItem("File", container.NewBorder(nil, nil, nil, browse, pathEntry)),
		widget.NewFormItem("Name", nameEntry),
	}
	d := dialog.NewForm("Add application", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		path := strings.TrimSpace(pathEntry.Text)
		if path == "" {
			return
		}
		onSubmit(path, strings.TrimSpace(nameEntry.Text))
	}, parent)
	d.Resize(fyne.NewSize(560, 220))
	d.Show()
}
