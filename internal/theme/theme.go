package theme

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"toolbox/internal/config"
)

// CustomTheme implements fyne.Theme with configurable variant and font size
type CustomTheme struct {
	config *config.Config
}

// NewCustomTheme creates a new custom theme with the given configuration
func NewCustomTheme(config *config.Config) *CustomTheme {
	return &CustomTheme{config: config}
}

func (t *CustomTheme) base() fyne.Theme {
	if t.config.Theme.Dark {
		return theme.DarkTheme()
	}
	return theme.LightTheme()
}

// Color methods from the selected base theme
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base().Color(name, variant)
}

// Icon methods from the selected base theme
func (t *CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base().Icon(name)
}

// Font from the selected base theme
func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base().Font(style)
}

// Size method with custom font size support
func (t *CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.config.Theme.FontSize > 0 {
		return float32(t.config.Theme.FontSize)
	}
	return t.base().Size(name)
}

// tagColors maps background tags used by entries and collections to colors.
var tagColors = map[string]color.NRGBA{
	"blue":           {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"green":          {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"red":            {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"purple":         {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"orange":         {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"darkblue":       {R: 0x00, G: 0x00, B: 0x8b, A: 0xff},
	"darkcyan":       {R: 0x00, G: 0x8b, B: 0x8b, A: 0xff},
	"brown":          {R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff},
	"crimson":        {R: 0xdc, G: 0x14, B: 0x3c, A: 0xff},
	"gold":           {R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	"forestgreen":    {R: 0x22, G: 0x8b, B: 0x22, A: 0xff},
	"darkorange":     {R: 0xff, G: 0x8c, B: 0x00, A: 0xff},
	"mediumpurple":   {R: 0x93, G: 0x70, B: 0xdb, A: 0xff},
	"darkmagenta":    {R: 0x8b, G: 0x00, B: 0x8b, A: 0xff},
	"maroon":         {R: 0x80, G: 0x00, B: 0x00, A: 0xff},
	"teal":           {R: 0x00, G: 0x80, B: 0x80, A: 0xff},
	"lightblue":      {R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
	"gray":           {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"cornflowerblue": {R: 0x64, G: 0x95, B: 0xed, A: 0xff},
	"darkslateblue":  {R: 0x48, G: 0x3d, B: 0x8b, A: 0xff},
	"darkgreen":      {R: 0x00, G: 0x64, B: 0x00, A: 0xff},
}

// TagColor returns the color for a background tag, ignoring case. Unknown
// tags are gray.
func TagColor(tag string) color.NRGBA {
	if c, ok := tagColors[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return tagColors["gray"]
}
