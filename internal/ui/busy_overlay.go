package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// busyBlocker covers the window and swallows taps while visible.
type busyBlocker struct {
	widget.BaseWidget
	content fyne.CanvasObject
}

func newBusyBlocker(content fyne.CanvasObject) *busyBlocker {
	b := &busyBlocker{content: content}
	b.ExtendBaseWidget(b)
	return b
}

func (b *busyBlocker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.content)
}

func (b *busyBlocker) Tapped(_ *fyne.PointEvent)          {}
func (b *busyBlocker) TappedSecondary(_ *fyne.PointEvent) {}

// BusyOverlay dims the window with a progress bar and a status line. It is
// shown while the registry loads. All methods must run on the UI thread.
type BusyOverlay struct {
	spinner *widget.ProgressBarInfinite
	label   *widget.Label
	root    *fyne.Container
}

// NewBusyOverlay returns a hidden overlay showing text once visible.
func NewBusyOverlay(text string) *BusyOverlay {
	spinner := widget.NewProgressBarInfinite()
	spinner.Stop()

	lbl := widget.NewLabel(text)
	lbl.Alignment = fyne.TextAlignCenter
	lbl.Importance = widget.HighImportance

	backdrop := canvas.NewRectangle(color.NRGBA{A: 96})
	panel := container.NewCenter(container.NewPadded(container.NewVBox(spinner, lbl)))

	root := container.NewStack(newBusyBlocker(container.NewStack(backdrop, panel)))
	root.Hide()

	return &BusyOverlay{spinner: spinner, label: lbl, root: root}
}

// Container returns the object to stack above the window content.
func (bo *BusyOverlay) Container() *fyne.Container { return bo.root }

// Show makes the overlay visible. An empty text keeps the current one.
func (bo *BusyOverlay) Show(text string) {
	if text != "" {
		bo.label.SetText(text)
	}
	if bo.root.Visible() {
		return
	}
	bo.spinner.Start()
	bo.root.Show()
}

// Hide removes the overlay and stops the animation.
func (bo *BusyOverlay) Hide() {
	if !bo.root.Visible() {
		return
	}
	bo.spinner.Stop()
	bo.root.Hide()
}

// IsVisible reports whether the overlay is shown.
func (bo *BusyOverlay) IsVisible() bool { return bo.root.Visible() }
