package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"toolbox/internal/apps"
	customtheme "toolbox/internal/theme"
)

// TappableIcon is a custom icon widget that can handle tap events
type TappableIcon struct {
	widget.BaseWidget
	icon     *widget.Icon
	onTapped func()
}

// NewTappableIcon creates a new tappable icon widget
func NewTappableIcon(resource fyne.Resource, onTapped func()) *TappableIcon {
	ti := &TappableIcon{
		icon:     widget.NewIcon(resource),
		onTapped: onTapped,
	}
	ti.ExtendBaseWidget(ti)
	return ti
}

// Tapped handles tap events on the icon
func (ti *TappableIcon) Tapped(_ *fyne.PointEvent) {
	if ti.onTapped != nil {
		ti.onTapped()
	}
}

// SetResource sets the icon resource
func (ti *TappableIcon) SetResource(resource fyne.Resource) {
	ti.icon.SetResource(resource)
	ti.Refresh()
}

// SetOnTapped sets the tap handler function
func (ti *TappableIcon) SetOnTapped(onTapped func()) {
	ti.onTapped = onTapped
}

// CreateRenderer creates the widget renderer
func (ti *TappableIcon) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ti.icon)
}

// Tile shows one entry as a colored square with its glyph and name. A tap
// calls OnTapped, a secondary tap OnSecondary.
type Tile struct {
	widget.BaseWidget
	OnTapped    func()
	OnSecondary func()

	bg    *canvas.Rectangle
	glyph *canvas.Text
	name  *widget.Label
}

// NewTile creates a tile for e.
func NewTile(e apps.Entry, size float32) *Tile {
	t := &Tile{
		bg:    canvas.NewRectangle(color.Transparent),
		glyph: canvas.NewText("", color.White),
		name:  widget.NewLabel(""),
	}
	t.bg.CornerRadius = size / 6
	t.bg.SetMinSize(fyne.NewSize(size, size))
	t.glyph.TextSize = size / 2
	t.glyph.TextStyle.Bold = true
	t.glyph.Alignment = fyne.TextAlignCenter
	t.name.Alignment = fyne.TextAlignCenter
	t.name.Truncation = fyne.TextTruncateEllipsis
	t.SetEntry(e)
	t.ExtendBaseWidget(t)
	return t
}

// SetEntry updates the tile to show e.
func (t *Tile) SetEntry(e apps.Entry) {
	t.bg.FillColor = customtheme.TagColor(e.Background)
	t.glyph.Text = GlyphText(e)
	t.name.SetText(e.Name)
	t.bg.Refresh()
	t.glyph.Refresh()
}

func (t *Tile) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

func (t *Tile) TappedSecondary(_ *fyne.PointEvent) {
	if t.OnSecondary != nil {
		t.OnSecondary()
	}
}

func (t *Tile) CreateRenderer() fyne.WidgetRenderer {
	square := container.NewStack(t.bg, container.NewCenter(t.glyph))
	return widget.NewSimpleRenderer(container.NewVBox(container.NewCenter(square), t.name))
}
