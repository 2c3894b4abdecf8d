package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"toolbox/internal/jobs"
)

// SaveQueueDialog lists pending and finished background writes and lets
// the user cancel a pending one.
type SaveQueueDialog struct {
	manager     *jobs.Manager
	list        *widget.List
	bind        binding.StringList
	items       []jobs.JobSnapshot
	selectedIdx int
	selectedID  int64
	details     *widget.Label
	dialog      dialog.Dialog
	subscribed  bool
}

// NewSaveQueueDialog creates a dialog over m.
func NewSaveQueueDialog(m *jobs.Manager) *SaveQueueDialog {
	sd := &SaveQueueDialog{manager: m, selectedIdx: -1}
	sd.bind = binding.NewStringList()
	sd.list = widget.NewListWithData(sd.bind,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			s, _ := item.(binding.String).Get()
			if l, ok := obj.(*widget.Label); ok {
				l.SetText(s)
			}
		},
	)
	sd.details = widget.NewLabel("")
	sd.details.Wrapping = fyne.TextWrapWord
	sd.list.OnSelected = func(id widget.ListItemID) {
		sd.selectedIdx = int(id)
		if id >= 0 && int(id) < len(sd.items) {
			sd.selectedID = sd.items[id].ID
		}
		sd.updateDetails()
	}
	return sd
}

// Show opens the dialog on parent.
func (sd *SaveQueueDialog) Show(parent fyne.Window) {
	cancelBtn := widget.NewButton("Cancel Selected", func() {
		if sd.selectedID != 0 {
			sd.manager.Cancel(sd.selectedID)
			sd.refresh()
		}
	})
	closeBtn := widget.NewButton("Close", func() {
		if sd.dialog != nil {
			sd.dialog.Hide()
		}
	})

	header := widget.NewLabel("Save Queue")
	header.TextStyle.Bold = true
	split := container.NewVSplit(sd.list, container.NewVScroll(sd.details))
	split.Offset = 0.7
	bottom := container.NewHBox(layout.NewSpacer(), cancelBtn, closeBtn)
	content := container.NewBorder(header, bottom, nil, nil, split)

	if !sd.subscribed {
		sd.manager.Subscribe(func() { fyne.Do(sd.refresh) })
		sd.subscribed = true
	}
	sd.dialog = dialog.NewCustomWithoutButtons("Saves", content, parent)
	sd.dialog.Resize(fyne.NewSize(640, 420))
	sd.dialog.Show()
	sd.refresh()
}

func (sd *SaveQueueDialog) refresh() {
	sd.items = sd.manager.List()
	sd.bind.Set(FormatJobLines(sd.items))
	sd.list.Refresh()
	if sd.selectedIdx >= len(sd.items) {
		sd.selectedIdx = -1
		sd.selectedID = 0
	}
	sd.updateDetails()
}

func (sd *SaveQueueDialog) updateDetails() {
	if sd.selectedIdx < 0 || sd.selectedIdx >= len(sd.items) {
		sd.details.SetText("")
		return
	}
	it := sd.items[sd.selectedIdx]
	b := &strings.Builder{}
	fmt.Fprintf(b, "Job #%d %s\nTarget: %s\nStatus: %s\n", it.ID, it.Kind, it.Target, it.Status)
	if it.Coalesced > 0 {
		fmt.Fprintf(b, "Merged requests: %d\n", it.Coalesced)
	}
	if it.Error != "" {
		fmt.Fprintf(b, "Error: %s\n", it.Error)
	}
	sd.details.SetText(b.String())
}

// FormatJobLines renders one summary line per job.
func FormatJobLines(items []jobs.JobSnapshot) []string {
	lines := make([]string, len(items))
	for i, it := range items {
		when := it.EnqueuedAt
		if it.Status == jobs.StatusRunning && !it.StartedAt.IsZero() {
			when = it.StartedAt
		}
		lines[i] = fmt.Sprintf("[%s] %s  (%s)", when.Format("15:04:05"), it.Kind, it.Status)
		if it.Status == jobs.StatusFailed {
			lines[i] += "  ERROR"
		}
	}
	return lines
}
