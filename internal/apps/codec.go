package apps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"toolbox/internal/constants"
	apperrors "toolbox/internal/errors"
	"toolbox/internal/logging"
)

// userAppsDocument is the on-disk form of user-apps.json. The favorite flag
// is not part of it.
type userAppsDocument struct {
	UserApps     []storedEntry `json:"UserApps"`
	LastModified time.Time     `json:"LastModified"`
	Version      string        `json:"Version"`
}

type storedEntry struct {
	Name        string `json:"Name"`
	Icon        string `json:"Icon"`
	Background  string `json:"Background"`
	Description string `json:"Description"`
	Path        string `json:"Path"`
}

// favoritesDocument is the on-disk form of favorites.json.
type favoritesDocument struct {
	FavoriteApps []Marker  `json:"FavoriteApps"`
	LastModified time.Time `json:"LastModified"`
	Version      string    `json:"Version"`
}

// Codec reads and writes the two registry documents in one directory.
type Codec struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewCodec returns a codec rooted at dir. The directory is created on the
// first write or by EnsureDir.
func NewCodec(dir string, logger *zap.Logger) *Codec {
	return &Codec{
		dir:    dir,
		logger: logging.OrNop(logger).Named("codec"),
		now:    time.Now,
	}
}

// Dir returns the data directory.
func (c *Codec) Dir() string { return c.dir }

// UserAppsPath returns the full path of user-apps.json.
func (c *Codec) UserAppsPath() string {
	return filepath.Join(c.dir, constants.UserAppsFileName)
}

// FavoritesPath returns the full path of favorites.json.
func (c *Codec) FavoritesPath() string {
	return filepath.Join(c.dir, constants.FavoritesFileName)
}

// EnsureDir creates the data directory if needed.
func (c *Codec) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return apperrors.NewPersistenceError("ensure_dir", c.dir, "failed to create data directory", err)
	}
	return nil
}

// LoadUserApps reads user-apps.json. A missing file yields no entries. An
// unreadable or unparseable file is renamed to a timestamped backup and a
// corrupt error is returned together with an empty list.
func (c *Codec) LoadUserApps() ([]Entry, error) {
	path := c.UserAppsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Debug("user apps file not found", zap.String("path", path))
			return nil, nil
		}
		return nil, c.backupCorrupt(path, err)
	}

	var doc userAppsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, c.backupCorrupt(path, err)
	}
	c.checkVersion(path, doc.Version)

	entries := make([]Entry, 0, len(doc.UserApps))
	for _, s := range doc.UserApps {
		if s.Path == "" {
			c.logger.Warn("skipping user entry without path", zap.String("name", s.Name))
			continue
		}
		entries = append(entries, normalizeStored(s))
	}
	c.logger.Debug("user apps loaded", zap.Int("count", len(entries)))
	return entries, nil
}

// normalizeStored fills fields an older or hand-edited file may lack.
func normalizeStored(s storedEntry) Entry {
	e := Entry{
		Name:        s.Name,
		Icon:        s.Icon,
		Background:  s.Background,
		Description: s.Description,
		Path:        s.Path,
	}
	if e.Name == "" {
		e.Name = DisplayName(e.Path)
	}
	if e.Icon == "" {
		e.Icon = constants.DefaultAppIcon
	}
	if e.Background == "" {
		e.Background = constants.FallbackBackground
	}
	if e.Description == "" {
		e.Description = constants.DefaultAppDescription
	}
	return e
}

// SaveUserApps overwrites user-apps.json with entries.
func (c *Codec) SaveUserApps(entries []Entry) error {
	doc := userAppsDocument{
		UserApps:     make([]storedEntry, 0, len(entries)),
		LastModified: c.now(),
		Version:      constants.DocumentVersion,
	}
	for _, e := range entries {
		doc.UserApps = append(doc.UserApps, storedEntry{
			Name:        e.Name,
			Icon:        e.Icon,
			Background:  e.Background,
			Description: e.Description,
			Path:        e.Path,
		})
	}
	if err := c.writeDocument(c.UserAppsPath(), doc); err != nil {
		return err
	}
	c.logger.Debug("user apps saved", zap.Int("count", len(entries)))
	return nil
}

// LoadFavorites reads favorites.json. A missing file yields nil; an existing
// document always yields a non-nil slice.
func (c *Codec) LoadFavorites() ([]Marker, error) {
	path := c.FavoritesPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Debug("favorites file not found", zap.String("path", path))
			return nil, nil
		}
		return nil, apperrors.NewPersistenceError("load_favorites", path, "failed to read favorites", err)
	}

	var doc favoritesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewCorruptError("load_favorites", path, "failed to parse favorites", err)
	}
	c.checkVersion(path, doc.Version)
	if doc.FavoriteApps == nil {
		doc.FavoriteApps = []Marker{}
	}
	c.logger.Debug("favorites loaded", zap.Int("count", len(doc.FavoriteApps)))
	return doc.FavoriteApps, nil
}

// SaveFavorites overwrites favorites.json with markers.
func (c *Codec) SaveFavorites(markers []Marker) error {
	if markers == nil {
		markers = []Marker{}
	}
	doc := favoritesDocument{
		FavoriteApps: markers,
		LastModified: c.now(),
		Version:      constants.DocumentVersion,
	}
	if err := c.writeDocument(c.FavoritesPath(), doc); err != nil {
		return err
	}
	c.logger.Debug("favorites saved", zap.Int("count", len(markers)))
	return nil
}

func (c *Codec) checkVersion(path, version string) {
	if version != constants.DocumentVersion {
		c.logger.Warn("unexpected document version; reading as-is",
			zap.String("path", path),
			zap.String("version", version),
			zap.String("expected", constants.DocumentVersion))
	}
}

// writeDocument replaces path with the indented JSON of v. The data goes to
// a temporary file in the same directory first so readers never see a
// partial document.
func (c *Codec) writeDocument(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.NewPersistenceError("encode", path, "failed to encode document", err)
	}

	if err := c.EnsureDir(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.NewPersistenceError("write", path, "failed to create temporary file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("write", path, "failed to write temporary file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("write", path, "failed to close temporary file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("write", path, "failed to replace document", err)
	}
	return nil
}

// backupCorrupt moves a damaged document aside as
// <name>.backup.YYYYMMDD_HHMMSS and reports it as corrupt.
func (c *Codec) backupCorrupt(path string, cause error) error {
	backup := path + constants.BackupSuffix + c.now().Format(constants.BackupTimeLayout)
	if err := os.Rename(path, backup); err != nil {
		c.logger.Error("failed to back up corrupt file",
			zap.String("path", path), zap.String("backup", backup), zap.Error(err))
		return apperrors.NewCorruptError("load_user_apps", path,
			fmt.Sprintf("unreadable document, backup failed: %v", err), cause)
	}
	c.logger.Warn("corrupt user apps file moved aside",
		zap.String("path", path), zap.String("backup", backup), zap.Error(cause))
	return apperrors.NewCorruptError("load_user_apps", path, "unreadable document moved to "+filepath.Base(backup), cause)
}
