// Package archive bundles the toolbox data files into a tar.gz archive.
package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archives"

	"toolbox/internal/constants"
	apperrors "toolbox/internal/errors"
)

// Root is the directory name the files are stored under inside the bundle.
const Root = constants.ApplicationName

// DataFiles lists the registry files of a data directory that go into a bundle.
var DataFiles = []string{
	constants.UserAppsFileName,
	constants.FavoritesFileName,
}

var format = archives.CompressedArchive{
	Compression: archives.Gz{},
	Archival:    archives.Tar{},
	Extraction:  archives.Tar{},
}

// Sources returns the files a bundle is built from: the registry files in
// dataDir followed by the config file at configPath, which usually lives in
// a different directory. An empty configPath leaves the config out.
func Sources(dataDir, configPath string) []string {
	paths := make([]string, 0, len(DataFiles)+1)
	for _, name := range DataFiles {
		paths = append(paths, filepath.Join(dataDir, name))
	}
	if configPath != "" {
		paths = append(paths, configPath)
	}
	return paths
}

// Export writes the given files to out under Root and returns how many were
// included. Missing files are skipped, as is a file whose base name is
// already taken.
func Export(ctx context.Context, paths []string, out io.Writer) (int, error) {
	names := make(map[string]string)
	taken := make(map[string]bool)
	for _, p := range paths {
		if info, err := os.Stat(p); err != nil || !info.Mode().IsRegular() {
			continue
		}
		name := Root + "/" + filepath.Base(p)
		if taken[name] {
			continue
		}
		taken[name] = true
		names[p] = name
	}
	if len(names) == 0 {
		return 0, apperrors.NewValidationError("export", "", "no data files to export")
	}

	files, err := archives.FilesFromDisk(ctx, nil, names)
	if err != nil {
		return 0, apperrors.NewPersistenceError("export", "", "failed to collect files", err)
	}
	if err := format.Archive(ctx, out, files); err != nil {
		return 0, apperrors.NewPersistenceError("export", "", "failed to write archive", err)
	}
	return len(files), nil
}

// ExportFile writes the bundle to dest, replacing it if present.
func ExportFile(ctx context.Context, paths []string, dest string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, apperrors.NewPersistenceError("export", dest, "failed to create destination directory", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return 0, apperrors.NewPersistenceError("export", dest, "failed to create archive", err)
	}
	n, err := Export(ctx, paths, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = apperrors.NewPersistenceError("export", dest, "failed to close archive", cerr)
	}
	if err != nil {
		os.Remove(dest)
		return 0, err
	}
	return n, nil
}

// ListFile returns the names stored in the bundle at path.
func ListFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list_archive", path, "failed to open archive", err)
	}
	defer f.Close()
	return List(ctx, f)
}

// List returns the names stored in a bundle read from r.
func List(ctx context.Context, r io.Reader) ([]string, error) {
	var names []string
	err := format.Extract(ctx, r, func(ctx context.Context, f archives.FileInfo) error {
		if !f.IsDir() {
			names = append(names, f.NameInArchive)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewCorruptError("list_archive", "", "failed to read archive", err)
	}
	return names, nil
}
