//go:build windows

package launch

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// openPath starts p with ShellExecute and the "open" verb, which runs
// executables and follows .lnk shortcuts.
func openPath(p string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(p)
	if err != nil {
		return err
	}
	dir, err := windows.UTF16PtrFromString(filepath.Dir(p))
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verb, file, nil, dir, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("ShellExecute %s: %w", p, err)
	}
	return nil
}
