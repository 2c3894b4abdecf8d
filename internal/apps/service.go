package apps

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"toolbox/internal/constants"
	apperrors "toolbox/internal/errors"
	"toolbox/internal/jobs"
	"toolbox/internal/logging"
)

// Options configures a Service.
type Options struct {
	// DataDir holds user-apps.json and favorites.json. Required.
	DataDir string
	Logger  *zap.Logger
	// Jobs runs the scheduled saves. When nil the service starts its own
	// manager and stops it in Close.
	Jobs *jobs.Manager
	// Dispatcher applies restored favorites on the UI thread. It may also be
	// attached later with AttachDispatcher.
	Dispatcher Dispatcher
	// Catalogue replaces the built-in catalogue when set.
	Catalogue *Catalogue
}

// Service is the application registry.
type Service struct {
	mu              sync.Mutex
	st              store
	dispatcher      Dispatcher
	pending         []Entry
	hasPending      bool
	userLoaded      bool
	favoritesLoaded bool

	codec     *Codec
	jobs      *jobs.Manager
	ownsJobs  bool
	catalogue Catalogue
	logger    *zap.Logger

	subMu       sync.Mutex
	subscribers []func(Event)

	initOnce sync.Once
	ready    chan struct{}
	result   InitResult
}

// NewService builds a registry. Nothing is loaded until Start or Initialize.
func NewService(opts Options) (*Service, error) {
	if strings.TrimSpace(opts.DataDir) == "" {
		return nil, apperrors.NewValidationError("new_service", "", "data directory is required")
	}
	logger := logging.OrNop(opts.Logger).Named("apps")

	s := &Service{
		dispatcher: opts.Dispatcher,
		codec:      NewCodec(opts.DataDir, logger),
		jobs:       opts.Jobs,
		catalogue:  DefaultCatalogue(),
		logger:     logger,
		ready:      make(chan struct{}),
	}
	if opts.Catalogue != nil {
		s.catalogue = *opts.Catalogue
	}
	if s.jobs == nil {
		s.jobs = jobs.NewManager(logger.Named("jobs"), constants.SaveHistoryMax)
		s.ownsJobs = true
	}
	s.st.rebuildLooping()
	logger.Debug("service created", zap.String("dir", opts.DataDir))
	return s, nil
}

// DataDir returns the directory the registry files live in.
func (s *Service) DataDir() string { return s.codec.Dir() }

// Jobs returns the manager running the scheduled saves.
func (s *Service) Jobs() *jobs.Manager { return s.jobs }

// Subscribe registers fn for registry events. fn runs on the goroutine that
// caused the change and must marshal to the UI thread itself.
func (s *Service) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.subMu.Unlock()
}

func (s *Service) emit(events ...Event) {
	s.subMu.Lock()
	subs := append([]func(Event){}, s.subscribers...)
	s.subMu.Unlock()
	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

func changed(seqs ...Sequence) []Event {
	out := make([]Event, 0, len(seqs))
	for _, seq := range seqs {
		out = append(out, Event{Kind: EventCollectionChanged, Seq: seq})
		if seq == SeqLooping {
			out = append(out, Event{Kind: EventLoopingRebuilt, Seq: SeqLooping})
		}
	}
	return out
}

// AllEntries returns a copy of every registered entry.
func (s *Service) AllEntries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.st.all)
}

// Favorites returns a copy of the favorite entries in order.
func (s *Service) Favorites() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.st.favorites)
}

// LoopingFavorites returns a copy of the looping favorites list.
func (s *Service) LoopingFavorites() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.st.looping)
}

// UserEntries returns a copy of the user-added entries.
func (s *Service) UserEntries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.st.user)
}

// Collections returns a deep copy of the collections.
func (s *Service) Collections() []Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Collection, 0, len(s.st.collections))
	for _, c := range s.st.collections {
		out = append(out, c.clone())
	}
	return out
}

// Lookup returns the entry registered under path.
func (s *Service) Lookup(path string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.lookupPath(path)
}

// AddApplication registers the file at path. customName overrides the name
// derived from the file when non-empty.
func (s *Service) AddApplication(ctx context.Context, path, customName string) AddResult {
	path = strings.TrimSpace(path)
	if path == "" {
		return AddResult{Message: "No file path given"}
	}
	if err := ctx.Err(); err != nil {
		return AddResult{Message: fmt.Sprintf("Add cancelled: %v", err)}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.logger.Debug("add rejected", zap.String("path", path), zap.Error(err))
		return AddResult{Message: "File does not exist or the path is invalid"}
	}

	if existing, ok := s.Lookup(path); ok {
		return alreadyExists(existing)
	}

	entry := extractEntry(path, strings.TrimSpace(customName))

	s.mu.Lock()
	added, ok := s.st.addEntry(entry)
	if !ok {
		s.mu.Unlock()
		return alreadyExists(added)
	}
	s.scheduleUserSaveLocked()
	s.mu.Unlock()

	s.logger.Info("application added", zap.String("name", added.Name), zap.String("path", added.Path))
	s.emit(changed(SeqAll)...)
	return AddResult{
		Success: true,
		Message: fmt.Sprintf("Added %q", added.Name),
		Added:   &added,
	}
}

func alreadyExists(existing Entry) AddResult {
	return AddResult{
		Message:       fmt.Sprintf("%q is already in the toolbox", existing.Name),
		AlreadyExists: true,
		Existing:      &existing,
	}
}

// RemoveApplication drops e from the registry and schedules saves of both
// files. It reports whether anything was removed.
func (s *Service) RemoveApplication(e Entry) bool {
	s.mu.Lock()
	removed, wasFavorite := s.st.removeEntry(e)
	s.scheduleUserSaveLocked()
	s.scheduleFavoritesSaveLocked()
	s.mu.Unlock()

	s.logger.Info("application removed",
		zap.String("name", e.Name), zap.String("path", e.Path),
		zap.Bool("found", removed), zap.Bool("favorite", wasFavorite))
	if wasFavorite {
		s.emit(changed(SeqAll, SeqFavorites, SeqLooping)...)
	} else {
		s.emit(changed(SeqAll, SeqLooping)...)
	}
	return removed
}

// ToggleFavorite flips the favorite flag of the registered entry matching e
// and returns its new state. It returns false when e is not registered.
func (s *Service) ToggleFavorite(e Entry) (Entry, bool) {
	s.mu.Lock()
	updated, ok := s.st.toggleFavorite(e)
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("toggle favorite on unknown entry", zap.String("name", e.Name), zap.String("path", e.Path))
		return Entry{}, false
	}
	s.scheduleUserSaveLocked()
	s.scheduleFavoritesSaveLocked()
	s.mu.Unlock()

	s.logger.Debug("favorite toggled", zap.String("name", updated.Name), zap.Bool("favorite", updated.IsFavorite))
	s.emit(changed(SeqAll, SeqFavorites, SeqLooping)...)
	return updated, true
}

// RegenerateLooping rebuilds the looping favorites list.
func (s *Service) RegenerateLooping() {
	s.mu.Lock()
	s.st.rebuildLooping()
	s.mu.Unlock()
	s.emit(changed(SeqLooping)...)
}

// scheduleUserSaveLocked queues a write of the current user list. Caller
// holds s.mu so snapshots are queued in mutation order.
func (s *Service) scheduleUserSaveLocked() {
	snapshot := cloneEntries(s.st.user)
	s.jobs.Enqueue(jobs.KindUserApps, s.codec.UserAppsPath(), func(ctx context.Context) error {
		return s.codec.SaveUserApps(snapshot)
	})
}

// scheduleFavoritesSaveLocked queues a write of the current favorite
// markers. Caller holds s.mu.
func (s *Service) scheduleFavoritesSaveLocked() {
	markers := s.st.markers()
	s.jobs.Enqueue(jobs.KindFavorites, s.codec.FavoritesPath(), func(ctx context.Context) error {
		return s.codec.SaveFavorites(markers)
	})
}

// Flush waits until every scheduled save has been written.
func (s *Service) Flush(ctx context.Context) error {
	return s.jobs.Flush(ctx)
}

// Close writes pending saves. A save manager created by the service is
// stopped as well.
func (s *Service) Close() error {
	if s.ownsJobs {
		s.jobs.Close()
		return nil
	}
	return s.jobs.Flush(context.Background())
}
