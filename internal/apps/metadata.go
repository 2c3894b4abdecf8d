package apps

import (
	"math/rand/v2"
	"path/filepath"
	"strings"

	"toolbox/internal/constants"
)

// DisplayName derives an entry name from path: the file name without its
// extension, shortened to MaxDisplayNameLength runes. Both slash styles are
// accepted so that files written on another OS still load.
func DisplayName(path string) string {
	return truncateName(fileStem(path))
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) <= constants.MaxDisplayNameLength {
		return name
	}
	return string(r[:constants.MaxDisplayNameLength-3]) + "..."
}

// randomBackground picks a background tag for a new user entry.
var randomBackground = func() string {
	return constants.BackgroundPalette[rand.IntN(len(constants.BackgroundPalette))]
}

// resolveShortcut returns the target of a .lnk file, or "" when the target
// is unknown. Shortcut targets are not read yet, so the shortcut itself is
// registered.
func resolveShortcut(path string) string {
	return ""
}

// extractEntry builds the entry registered for the file at path.
func extractEntry(path, customName string) Entry {
	name := customName
	if name == "" {
		name = fileStem(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".lnk") {
		if target := resolveShortcut(path); target != "" {
			path = target
			if customName == "" {
				name = fileStem(target)
			}
		}
	}

	description := constants.DefaultAppDescription
	if d := strings.TrimSpace(fileDescription(path)); d != "" {
		description = d
	}

	return Entry{
		Name:        name,
		Icon:        constants.DefaultAppIcon,
		Background:  randomBackground(),
		Description: description,
		Path:        path,
	}
}

// fileStem is the file name without extension, not truncated.
func fileStem(path string) string {
	name := baseName(path)
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return name
}
