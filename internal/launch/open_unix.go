//go:build !windows

package launch

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// openPath runs p directly when it is executable, otherwise hands it to the
// desktop opener.
func openPath(p string) error {
	if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0 {
		cmd := exec.Command(p)
		cmd.Dir = filepath.Dir(p)
		if err := cmd.Start(); err != nil {
			return err
		}
		go cmd.Wait()
		return nil
	}

	candidates := [][]string{
		{"xdg-open", p},
		{"gio", "open", p},
		{"open", p},
		{"kde-open", p},
	}
	var lastErr error
	for _, args := range candidates {
		path, lookErr := exec.LookPath(args[0])
		if lookErr != nil {
			continue
		}
		cmd := exec.Command(path, args[1:]...)
		if err := cmd.Start(); err != nil {
			lastErr = err
			continue
		}
		go cmd.Wait()
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no suitable opener found (xdg-open/gio/open)")
	}
	return lastErr
}
