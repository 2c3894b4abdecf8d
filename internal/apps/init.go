package apps

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "toolbox/internal/errors"
)

// Start runs the initialization sequence on a new goroutine. Completion is
// reported through EventInitCompleted and Ready.
func (s *Service) Start(ctx context.Context) {
	go s.Initialize(ctx)
}

// Ready is closed once initialization has finished, successfully or not.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Initialize runs the initialization sequence once and returns its result.
// Later calls wait for the first run and return the same result.
func (s *Service) Initialize(ctx context.Context) InitResult {
	s.initOnce.Do(func() {
		res := s.runInit(ctx)
		s.result = res
		close(s.ready)
		s.emit(Event{Kind: EventInitCompleted, Init: &res})
	})
	<-s.ready
	return s.result
}

// AttachDispatcher sets the dispatcher used for restoring favorites.
func (s *Service) AttachDispatcher(d Dispatcher) {
	s.mu.Lock()
	s.dispatcher = d
	s.mu.Unlock()
}

// CompletePendingRestore applies favorites restored while no dispatcher was
// attached. It must be called on the UI thread and reports whether anything
// was pending.
func (s *Service) CompletePendingRestore() bool {
	s.mu.Lock()
	if !s.hasPending {
		s.mu.Unlock()
		return false
	}
	resolved := s.pending
	s.pending = nil
	s.hasPending = false
	s.mu.Unlock()

	s.applyFavorites(resolved)
	return true
}

func (s *Service) runInit(ctx context.Context) (res InitResult) {
	restored := -1

	defer func() {
		if r := recover(); r != nil {
			res = s.initFailed(apperrors.NewInitError("initialize", fmt.Sprintf("panic: %v", r), nil))
		}
	}()

	steps := []struct {
		name string
		run  func() error
	}{
		{"seed_favorites", s.seedFavorites},
		{"seed_catalogue", s.seedCatalogue},
		{"build_collections", s.buildCollections},
		{"load_user_apps", s.loadUserApps},
		{"load_favorites", func() error {
			n, err := s.loadFavorites()
			restored = n
			return err
		}},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return s.initFailed(apperrors.NewInitError(step.name, "initialization cancelled", err))
		}
		s.logger.Debug("init step", zap.String("step", step.name))
		if err := step.run(); err != nil {
			return s.initFailed(err)
		}
	}

	s.withLock(func() {
		res = InitResult{
			FavoriteCount:   len(s.st.favorites),
			AllCount:        len(s.st.all),
			CollectionCount: len(s.st.collections),
			Success:         true,
			Message:         "Initialization completed",
		}
	})
	if restored >= 0 {
		res.FavoriteCount = restored
	}
	s.logger.Info("registry initialized",
		zap.Int("favorites", res.FavoriteCount),
		zap.Int("apps", res.AllCount),
		zap.Int("collections", res.CollectionCount))
	return res
}

func (s *Service) initFailed(err error) InitResult {
	s.logger.Error("initialization failed", zap.Error(err))
	s.mu.Lock()
	defer s.mu.Unlock()
	return InitResult{
		FavoriteCount:   len(s.st.favorites),
		AllCount:        len(s.st.all),
		CollectionCount: len(s.st.collections),
		Success:         false,
		Message:         fmt.Sprintf("Initialization failed: %v", err),
	}
}

// withLock runs fn holding s.mu and releases it even if fn panics, so the
// failure path of runInit can still read the store.
func (s *Service) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Service) seedFavorites() error {
	s.withLock(func() { s.st.seedFavorites(s.catalogue.Favorites) })
	s.emit(changed(SeqFavorites, SeqLooping)...)
	return nil
}

func (s *Service) seedCatalogue() error {
	s.withLock(func() { s.st.seedCatalogue(s.catalogue.Apps) })
	s.emit(changed(SeqAll)...)
	return nil
}

func (s *Service) buildCollections() error {
	s.withLock(func() { s.st.seedCollections(s.catalogue.Collections) })
	s.emit(changed(SeqCollections)...)
	return nil
}

// loadUserApps merges user-apps.json into the registry. It runs at most
// once per service.
func (s *Service) loadUserApps() error {
	var done bool
	s.withLock(func() {
		done = s.userLoaded
		s.userLoaded = true
	})
	if done {
		return nil
	}

	if err := s.codec.EnsureDir(); err != nil {
		return err
	}
	entries, err := s.codec.LoadUserApps()
	if err != nil {
		// the codec has already moved the damaged file aside
		s.logger.Warn("user apps reset", zap.Error(err))
		entries = nil
	}

	var skipped []string
	s.withLock(func() { skipped = s.st.mergeUser(entries) })
	for _, p := range skipped {
		s.logger.Warn("duplicate user entry skipped", zap.String("path", p))
	}
	if len(entries) > len(skipped) {
		s.emit(changed(SeqAll)...)
	}
	return nil
}

// loadFavorites resolves favorites.json against the registry and hands the
// result to the dispatcher, or parks it until CompletePendingRestore. It
// returns the number of resolved favorites, or -1 when nothing was restored.
func (s *Service) loadFavorites() (int, error) {
	var (
		done    bool
		entries []Entry
	)
	s.withLock(func() {
		done = s.favoritesLoaded
		s.favoritesLoaded = true
		entries = cloneEntries(s.st.all)
	})
	if done {
		return -1, nil
	}

	markers, err := s.codec.LoadFavorites()
	if err != nil {
		s.logger.Warn("favorites not restored", zap.Error(err))
		return -1, nil
	}
	if markers == nil {
		return -1, nil
	}

	resolved := resolveMarkers(entries, markers)
	if dropped := len(markers) - len(resolved); dropped > 0 {
		s.logger.Info("dropped unmatched favorite markers", zap.Int("count", dropped))
	}

	var d Dispatcher
	s.withLock(func() {
		d = s.dispatcher
		if d == nil {
			s.pending = resolved
			s.hasPending = true
		}
	})

	if d == nil {
		s.logger.Debug("favorites restore pending", zap.Int("count", len(resolved)))
	} else {
		d.Do(func() { s.applyFavorites(resolved) })
	}
	return len(resolved), nil
}

func (s *Service) applyFavorites(resolved []Entry) {
	s.withLock(func() { s.st.replaceFavorites(resolved) })
	s.emit(changed(SeqAll, SeqFavorites, SeqLooping)...)
}
