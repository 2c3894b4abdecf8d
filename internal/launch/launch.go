// Package launch starts registered applications with the operating system.
package launch

import (
	"os"

	"go.uber.org/zap"

	"toolbox/internal/apps"
	apperrors "toolbox/internal/errors"
	"toolbox/internal/logging"
)

// Launcher starts entries.
type Launcher struct {
	logger *zap.Logger
	open   func(path string) error
}

// New returns a launcher using the platform opener.
func New(logger *zap.Logger) *Launcher {
	return &Launcher{
		logger: logging.OrNop(logger).Named("launch"),
		open:   openPath,
	}
}

// Launch starts the executable behind e. Preset entries have no executable
// and yield a validation error.
func (l *Launcher) Launch(e apps.Entry) error {
	if e.IsPreset() {
		return apperrors.NewValidationError("launch", "", e.Name+" is a catalogue entry without a file")
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		return apperrors.NewLaunchError("launch", e.Path, "file not accessible", err)
	}
	if info.IsDir() {
		return apperrors.NewLaunchError("launch", e.Path, "path is a directory", nil)
	}

	if err := l.open(e.Path); err != nil {
		l.logger.Error("launch failed", zap.String("name", e.Name), zap.String("path", e.Path), zap.Error(err))
		return apperrors.NewLaunchError("launch", e.Path, "failed to start application", err)
	}
	l.logger.Info("launched", zap.String("name", e.Name), zap.String("path", e.Path))
	return nil
}
