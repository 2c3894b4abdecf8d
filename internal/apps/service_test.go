package apps

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/constants"
	apperrors "toolbox/internal/errors"
	"toolbox/internal/jobs"
)

func testCatalogue() *Catalogue {
	return &Catalogue{
		Favorites: []Entry{preset("Y", "y", "Blue", "seeded")},
		Apps: []Entry{
			preset("X", "x", "Red", "preset x"),
			preset("Y", "y", "Blue", "seeded"),
		},
		Collections: []Collection{{Name: "Group", Apps: []Entry{preset("X", "x", "Red", "preset x")}}},
	}
}

func TestNewServiceRequiresDataDir(t *testing.T) {
	_, err := NewService(Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestInitializeDefaultCatalogue(t *testing.T) {
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})

	res := svc.Initialize(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 0, res.FavoriteCount)
	assert.Equal(t, 13, res.AllCount)
	assert.Equal(t, 5, res.CollectionCount)
	assert.Empty(t, svc.Favorites())
	assert.Empty(t, svc.LoopingFavorites())

	cols := svc.Collections()
	require.Len(t, cols, 5)
	assert.Len(t, cols[0].Apps, 8)
	assert.Len(t, cols[1].Apps, 6)
	assert.Len(t, cols[2].Apps, 5)
	assert.Len(t, cols[3].Apps, 4)
	assert.Len(t, cols[4].Apps, 4)
}

func TestAddRemoveScenario(t *testing.T) {
	ctx := context.Background()
	exe := touch(t, t.TempDir(), "a.exe")
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})
	svc.Initialize(ctx)
	before := len(svc.AllEntries())

	first := svc.AddApplication(ctx, exe, "")
	require.True(t, first.Success, first.Message)
	require.NotNil(t, first.Added)
	assert.Equal(t, "a", first.Added.Name)
	assert.Equal(t, exe, first.Added.Path)
	assert.Equal(t, constants.DefaultAppIcon, first.Added.Icon)
	assert.Contains(t, constants.BackgroundPalette, first.Added.Background)

	second := svc.AddApplication(ctx, exe, "")
	assert.False(t, second.Success)
	assert.True(t, second.AlreadyExists)
	require.NotNil(t, second.Existing)
	assert.Equal(t, exe, second.Existing.Path)
	assert.Len(t, svc.AllEntries(), before+1)

	_, ok := svc.ToggleFavorite(*first.Added)
	require.True(t, ok)
	assert.Len(t, svc.Favorites(), 1)

	assert.True(t, svc.RemoveApplication(*first.Added))
	_, found := svc.Lookup(exe)
	assert.False(t, found)
	assert.Len(t, svc.AllEntries(), before)
	assert.Empty(t, svc.Favorites())
	assert.Empty(t, svc.LoopingFavorites())
}

func TestAddApplicationValidation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := newTestService(t, t.TempDir(), Options{})

	tests := []struct {
		name string
		path string
	}{
		{"empty", "  "},
		{"missing", filepath.Join(dir, "nope.exe")},
		{"directory", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.AddApplication(ctx, tt.path, "")
			assert.False(t, res.Success)
			assert.False(t, res.AlreadyExists)
			assert.NotEmpty(t, res.Message)
			assert.Nil(t, res.Added)
		})
	}
	assert.Empty(t, svc.UserEntries())
}

func TestAddApplicationCustomName(t *testing.T) {
	exe := touch(t, t.TempDir(), "setup-x64.exe")
	svc := newTestService(t, t.TempDir(), Options{})

	res := svc.AddApplication(context.Background(), exe, "  My Tool ")
	require.True(t, res.Success)
	assert.Equal(t, "My Tool", res.Added.Name)
}

func TestAddApplicationAcceptsShortcut(t *testing.T) {
	lnk := touch(t, t.TempDir(), "Editor.lnk")
	svc := newTestService(t, t.TempDir(), Options{})

	res := svc.AddApplication(context.Background(), lnk, "")
	require.True(t, res.Success)
	assert.Equal(t, "Editor", res.Added.Name)
	assert.Equal(t, lnk, res.Added.Path)
}

func TestToggleFavoriteTwiceRoundTrips(t *testing.T) {
	ctx := context.Background()
	exe := touch(t, t.TempDir(), "tool.exe")
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})
	svc.Initialize(ctx)
	added := svc.AddApplication(ctx, exe, "").Added

	on, ok := svc.ToggleFavorite(*added)
	require.True(t, ok)
	assert.True(t, on.IsFavorite)
	assert.Len(t, svc.LoopingFavorites(), 3)

	off, ok := svc.ToggleFavorite(*added)
	require.True(t, ok)
	assert.False(t, off.IsFavorite)
	assert.Empty(t, svc.Favorites())
	assert.Empty(t, svc.LoopingFavorites())

	e, _ := svc.Lookup(exe)
	assert.False(t, e.IsFavorite)
}

func TestRemovingFavoriteRebuildsLooping(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})
	svc.Initialize(ctx)

	var added []Entry
	for _, n := range []string{"a.exe", "b.exe", "c.exe"} {
		res := svc.AddApplication(ctx, touch(t, dir, n), "")
		require.True(t, res.Success)
		svc.ToggleFavorite(*res.Added)
		added = append(added, *res.Added)
	}
	require.Len(t, svc.LoopingFavorites(), 9)

	svc.RemoveApplication(added[1])
	favs := svc.Favorites()
	assert.Equal(t, []string{"a", "c"}, names(favs))
	looping := svc.LoopingFavorites()
	assert.Equal(t, []string{"a", "c", "a", "c", "a", "c"}, names(looping))
	for _, e := range svc.AllEntries() {
		assert.NotEqual(t, added[1].Path, e.Path)
	}
}

func TestInitializeRestoresFavoritesByReplacement(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.UserAppsFileName, `{"UserApps":[{"Name":"b","Icon":"i","Background":"Teal","Description":"d","Path":"/a/b.exe"}],"Version":"1.0"}`)
	writeFile(t, dir, constants.FavoritesFileName, `{"FavoriteApps":[
		{"Name":"X","Path":"","IsPreset":true},
		{"Name":"b","Path":"/A/B.exe","IsPreset":false},
		{"Name":"gone","Path":"/missing.exe","IsPreset":false}
	],"Version":"1.0"}`)

	svc := newTestService(t, dir, Options{Dispatcher: syncDispatcher, Catalogue: testCatalogue()})
	res := svc.Initialize(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 2, res.FavoriteCount)
	assert.Equal(t, 3, res.AllCount)
	assert.Equal(t, 1, res.CollectionCount)

	favs := svc.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, "X", favs[0].Name)
	assert.Equal(t, "/a/b.exe", favs[1].Path)
	assert.Len(t, svc.LoopingFavorites(), 6)

	for _, e := range svc.AllEntries() {
		want := e.Name == "X" || e.Path == "/a/b.exe"
		assert.Equal(t, want, e.IsFavorite, e.Name)
	}
}

func TestUnmatchedMarkerResolvesToNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.FavoritesFileName, `{"FavoriteApps":[{"Name":"gone","Path":"/nowhere.exe","IsPreset":false}],"Version":"1.0"}`)

	svc := newTestService(t, dir, Options{Dispatcher: syncDispatcher, Catalogue: testCatalogue()})
	res := svc.Initialize(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 0, res.FavoriteCount)
	assert.Empty(t, svc.Favorites())
}

func TestMissingFavoritesKeepsSeed(t *testing.T) {
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher, Catalogue: testCatalogue()})
	res := svc.Initialize(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 1, res.FavoriteCount)
	assert.Equal(t, []string{"Y"}, names(svc.Favorites()))
}

func TestPendingRestoreWithoutDispatcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.FavoritesFileName, `{"FavoriteApps":[{"Name":"X","Path":"","IsPreset":true}],"Version":"1.0"}`)

	svc := newTestService(t, dir, Options{Catalogue: testCatalogue()})
	res := svc.Initialize(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, 1, res.FavoriteCount)
	assert.Equal(t, []string{"Y"}, names(svc.Favorites()), "resolved favorites are not visible yet")

	assert.True(t, svc.CompletePendingRestore())
	assert.Equal(t, []string{"X"}, names(svc.Favorites()))
	assert.False(t, svc.CompletePendingRestore())
}

func TestAttachedDispatcherReceivesRestore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.FavoritesFileName, `{"FavoriteApps":[{"Name":"X","Path":"","IsPreset":true}],"Version":"1.0"}`)

	var queued []func()
	svc := newTestService(t, dir, Options{Catalogue: testCatalogue()})
	svc.AttachDispatcher(DispatcherFunc(func(fn func()) { queued = append(queued, fn) }))
	svc.Initialize(context.Background())

	require.Len(t, queued, 1)
	assert.Equal(t, []string{"Y"}, names(svc.Favorites()))
	queued[0]()
	assert.Equal(t, []string{"X"}, names(svc.Favorites()))
	assert.False(t, svc.CompletePendingRestore())
}

func TestInitializeRunsOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.UserAppsFileName, `{"UserApps":[{"Name":"u","Path":"/u.exe"}],"Version":"1.0"}`)

	var mu sync.Mutex
	completed := 0
	svc := newTestService(t, dir, Options{Dispatcher: syncDispatcher})
	svc.Subscribe(func(ev Event) {
		if ev.Kind == EventInitCompleted {
			mu.Lock()
			completed++
			mu.Unlock()
		}
	})

	first := svc.Initialize(context.Background())
	second := svc.Initialize(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 14, first.AllCount)
	assert.Len(t, svc.AllEntries(), 14)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, completed)
}

func TestLoadStepsAreOneShot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.UserAppsFileName, `{"UserApps":[{"Name":"u","Path":"/u.exe"}],"Version":"1.0"}`)
	writeFile(t, dir, constants.FavoritesFileName, `{"FavoriteApps":[{"Name":"u","Path":"/u.exe"}],"Version":"1.0"}`)
	svc := newTestService(t, dir, Options{Dispatcher: syncDispatcher})
	svc.Initialize(context.Background())

	require.NoError(t, svc.loadUserApps())
	n, err := svc.loadFavorites()
	require.NoError(t, err)
	assert.Equal(t, -1, n)
	assert.Len(t, svc.UserEntries(), 1)
	assert.Len(t, svc.Favorites(), 1)
}

func TestStartEmitsCompletion(t *testing.T) {
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})
	done := make(chan InitResult, 1)
	svc.Subscribe(func(ev Event) {
		if ev.Kind == EventInitCompleted {
			done <- *ev.Init
		}
	})

	svc.Start(context.Background())
	<-svc.Ready()
	res := <-done
	assert.True(t, res.Success)
	assert.Equal(t, 13, res.AllCount)
}

func TestInitializeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newTestService(t, t.TempDir(), Options{})

	res := svc.Initialize(ctx)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "cancelled")
	assert.Equal(t, 0, res.AllCount)
}

func TestInitializeUnusableDataDir(t *testing.T) {
	blocker := touch(t, t.TempDir(), "file")
	svc := newTestService(t, filepath.Join(blocker, "data"), Options{})

	res := svc.Initialize(context.Background())
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, 13, res.AllCount, "state built before the failure is kept")
	assert.Equal(t, 5, res.CollectionCount)
}

func TestInitializeRecoversFromPanic(t *testing.T) {
	svc := newTestService(t, t.TempDir(), Options{})
	svc.Subscribe(func(ev Event) {
		if ev.Kind == EventCollectionChanged && ev.Seq == SeqCollections {
			panic("subscriber failure")
		}
	})

	res := svc.Initialize(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "subscriber failure")
	assert.Equal(t, 5, res.CollectionCount)
}

func TestPanicInsideLockedStepStillReportsFailure(t *testing.T) {
	svc := newTestService(t, t.TempDir(), Options{})

	done := make(chan InitResult, 1)
	go func() {
		done <- func() (res InitResult) {
			defer func() {
				if r := recover(); r != nil {
					res = svc.initFailed(apperrors.NewInitError("seed_catalogue", "store failure", nil))
				}
			}()
			svc.withLock(func() { panic("store failure") })
			return InitResult{Success: true}
		}()
	}()

	select {
	case res := <-done:
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "store failure")
	case <-time.After(2 * time.Second):
		t.Fatal("failure path blocked on the registry lock")
	}
	require.True(t, svc.mu.TryLock())
	svc.mu.Unlock()
}

func TestCorruptUserAppsDoesNotFailStartup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, constants.UserAppsFileName, "garbage")

	svc := newTestService(t, dir, Options{Dispatcher: syncDispatcher})
	res := svc.Initialize(context.Background())
	require.True(t, res.Success, res.Message)
	assert.Empty(t, svc.UserEntries())

	backups, err := filepath.Glob(filepath.Join(dir, "user-apps.json.backup.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestPersistenceRoundTripAcrossServices(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	binDir := t.TempDir()

	first := newTestService(t, dataDir, Options{Dispatcher: syncDispatcher})
	first.Initialize(ctx)
	a := first.AddApplication(ctx, touch(t, binDir, "alpha.exe"), "").Added
	b := first.AddApplication(ctx, touch(t, binDir, "beta.exe"), "Beta Custom").Added
	first.ToggleFavorite(*b)
	first.ToggleFavorite(Entry{Name: "Chrome"})
	flushService(t, first)

	second := newTestService(t, dataDir, Options{Dispatcher: syncDispatcher})
	res := second.Initialize(ctx)
	require.True(t, res.Success)

	users := second.UserEntries()
	require.Len(t, users, 2)
	for i, want := range []Entry{*a, *b} {
		got := users[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Icon, got.Icon)
		assert.Equal(t, want.Background, got.Background)
		assert.Equal(t, want.Description, got.Description)
		assert.Equal(t, want.Path, got.Path)
	}
	assert.Equal(t, []string{"Beta Custom", "Chrome"}, names(second.Favorites()))
}

func TestRemoveAlwaysSavesBothFiles(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, dir, Options{})
	svc.RemoveApplication(Entry{Name: "nothing"})
	flushService(t, svc)

	for _, name := range []string{constants.UserAppsFileName, constants.FavoritesFileName} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestSavesShareInjectedJobManager(t *testing.T) {
	jm := jobs.NewManager(nil, 10)
	defer jm.Close()
	exe := touch(t, t.TempDir(), "app.exe")
	svc := newTestService(t, t.TempDir(), Options{Jobs: jm})

	require.True(t, svc.AddApplication(context.Background(), exe, "").Success)
	require.NoError(t, svc.Close())

	var kinds []jobs.Kind
	for _, snap := range jm.List() {
		kinds = append(kinds, snap.Kind)
		assert.Equal(t, jobs.StatusCompleted, snap.Status)
	}
	assert.Equal(t, []jobs.Kind{jobs.KindUserApps}, kinds)
}

func TestEventsForMutations(t *testing.T) {
	ctx := context.Background()
	exe := touch(t, t.TempDir(), "e.exe")
	svc := newTestService(t, t.TempDir(), Options{Dispatcher: syncDispatcher})
	svc.Initialize(ctx)

	var got []Event
	svc.Subscribe(func(ev Event) { got = append(got, ev) })

	added := svc.AddApplication(ctx, exe, "").Added
	assert.Equal(t, []Event{{Kind: EventCollectionChanged, Seq: SeqAll}}, got)

	got = nil
	svc.ToggleFavorite(*added)
	assert.Contains(t, got, Event{Kind: EventCollectionChanged, Seq: SeqFavorites})
	assert.Contains(t, got, Event{Kind: EventLoopingRebuilt, Seq: SeqLooping})

	got = nil
	svc.RegenerateLooping()
	assert.Equal(t, []Event{
		{Kind: EventCollectionChanged, Seq: SeqLooping},
		{Kind: EventLoopingRebuilt, Seq: SeqLooping},
	}, got)
}
