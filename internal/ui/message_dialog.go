package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"toolbox/internal/apps"
)

// ShowMessageDialog displays a simple OK dialog with a title and message.
// It returns immediately after showing.
func ShowMessageDialog(parent fyne.Window, title, message string) {
	d := dialog.NewInformation(title, message, parent)
	d.Show()
}

// ShowAddResult reports the outcome of adding an application.
func ShowAddResult(parent fyne.Window, res apps.AddResult) {
	title := "Add application"
	switch {
	case res.Success:
		title = "Application added"
	case res.AlreadyExists:
		title = "Already added"
	}
	ShowMessageDialog(parent, title, res.Message)
}

// ShowErrorDialog displays err in an error dialog.
func ShowErrorDialog(parent fyne.Window, err error) {
	dialog.ShowError(err, parent)
}

// ConfirmRemove asks before removing e and calls onConfirm when accepted.
func ConfirmRemove(parent fyne.Window, e apps.Entry, onConfirm func()) {
	dialog.ShowConfirm("Remove application",
		"Remove \""+e.Name+"\" from the toolbox?",
		func(ok bool) {
			if ok && onConfirm != nil {
				onConfirm()
			}
		}, parent)
}
