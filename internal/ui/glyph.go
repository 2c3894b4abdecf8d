package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"toolbox/internal/apps"
)

// GlyphText returns what a tile shows as its icon. Icon font code points
// such as "&#xE8FC;" cannot be rendered with the bundled fonts, so those
// entries show the initial of their name instead.
func GlyphText(e apps.Entry) string {
	icon := strings.TrimSpace(e.Icon)
	if icon != "" && !strings.HasPrefix(icon, "&#") {
		return icon
	}
	for _, r := range e.Name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
	}
	if r, _ := utf8.DecodeRuneInString(e.Name); r != utf8.RuneError {
		return string(r)
	}
	return "?"
}
