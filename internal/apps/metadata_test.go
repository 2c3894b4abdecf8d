package apps

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"toolbox/internal/constants"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`C:\Program Files\App\app.exe`, "app"},
		{"/usr/local/bin/tool", "tool"},
		{"/opt/archive.tar.gz", "archive.tar"},
		{"/home/u/.hidden", ".hidden"},
		{strings.Repeat("x", 50) + ".exe", strings.Repeat("x", 50)},
		{strings.Repeat("y", 51) + ".exe", strings.Repeat("y", 47) + "..."},
		{strings.Repeat("é", 60) + ".exe", strings.Repeat("é", 47) + "..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayName(tt.path), tt.path)
	}
}

func TestExtractEntry(t *testing.T) {
	restore := randomBackground
	randomBackground = func() string { return "Teal" }
	defer func() { randomBackground = restore }()

	e := extractEntry("/apps/Some Long Application Name That Keeps Going And Going.exe", "")
	assert.Equal(t, "Some Long Application Name That Keeps Going And Going", e.Name, "names are not shortened when added")
	assert.Equal(t, constants.DefaultAppIcon, e.Icon)
	assert.Equal(t, "Teal", e.Background)
	assert.False(t, e.IsFavorite)
	if runtime.GOOS != "windows" {
		assert.Equal(t, constants.DefaultAppDescription, e.Description)
	}

	custom := extractEntry("/apps/x.exe", "Custom")
	assert.Equal(t, "Custom", custom.Name)
	assert.Equal(t, "/apps/x.exe", custom.Path)
}

func TestShortcutIsRegisteredAsIs(t *testing.T) {
	e := extractEntry(`C:\Users\me\Desktop\Editor.LNK`, "")
	assert.Equal(t, "Editor", e.Name)
	assert.Equal(t, `C:\Users\me\Desktop\Editor.LNK`, e.Path)
}

func TestRandomBackgroundUsesPalette(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Contains(t, constants.BackgroundPalette, randomBackground())
	}
}
