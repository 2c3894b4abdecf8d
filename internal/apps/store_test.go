package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userEntry(name, path string) Entry {
	return Entry{Name: name, Icon: "i", Background: "Blue", Description: "d", Path: path}
}

func TestLoopingIsFavoritesTimesThree(t *testing.T) {
	for n := 0; n <= 4; n++ {
		var s store
		for i := 0; i < n; i++ {
			e, ok := s.addEntry(userEntry(string(rune('a'+i)), "/bin/"+string(rune('a'+i))))
			require.True(t, ok)
			_, ok = s.toggleFavorite(e)
			require.True(t, ok)
		}
		require.Len(t, s.looping, 3*n)
		for i, e := range s.looping {
			assert.Equal(t, s.favorites[i%n].Path, e.Path)
		}
	}
}

func TestAddEntryRejectsDuplicatePathIgnoringCase(t *testing.T) {
	var s store
	_, ok := s.addEntry(userEntry("App", `C:\Tools\App.exe`))
	require.True(t, ok)

	existing, ok := s.addEntry(userEntry("Other", `c:\tools\app.EXE`))
	assert.False(t, ok)
	assert.Equal(t, "App", existing.Name)
	assert.Len(t, s.all, 1)
	assert.Len(t, s.user, 1)
}

func TestAddEntryNeverMarksFavorite(t *testing.T) {
	var s store
	e := userEntry("App", "/x")
	e.IsFavorite = true
	added, ok := s.addEntry(e)
	require.True(t, ok)
	assert.False(t, added.IsFavorite)
	assert.Empty(t, s.favorites)
}

func TestToggleFavoriteTwiceRestoresState(t *testing.T) {
	var s store
	e, _ := s.addEntry(userEntry("App", "/x"))

	on, ok := s.toggleFavorite(e)
	require.True(t, ok)
	assert.True(t, on.IsFavorite)
	assert.Len(t, s.favorites, 1)

	off, ok := s.toggleFavorite(e)
	require.True(t, ok)
	assert.False(t, off.IsFavorite)
	assert.Empty(t, s.favorites)
	assert.Empty(t, s.looping)
	assert.False(t, s.all[0].IsFavorite)
}

func TestToggleFavoriteUnknownEntry(t *testing.T) {
	var s store
	_, ok := s.toggleFavorite(userEntry("Ghost", "/ghost"))
	assert.False(t, ok)
	assert.Empty(t, s.favorites)
}

func TestRemoveFavoriteEntry(t *testing.T) {
	var s store
	a, _ := s.addEntry(userEntry("A", "/a"))
	b, _ := s.addEntry(userEntry("B", "/b"))
	s.toggleFavorite(a)
	s.toggleFavorite(b)
	require.Len(t, s.looping, 6)

	removed, wasFavorite := s.removeEntry(a)
	assert.True(t, removed)
	assert.True(t, wasFavorite)
	assert.Equal(t, []string{"B"}, names(s.all))
	assert.Equal(t, []string{"B"}, names(s.user))
	assert.Equal(t, []string{"B"}, names(s.favorites))
	assert.Len(t, s.looping, 3)
}

func TestRemoveFallsBackToNameForUserList(t *testing.T) {
	var s store
	s.user = []Entry{userEntry("Tool", "/old/tool.exe")}

	removed, _ := s.removeEntry(userEntry("Tool", "/new/tool.exe"))
	assert.True(t, removed)
	assert.Empty(t, s.user)
}

func TestRemovePresetLeavesUserEntriesAlone(t *testing.T) {
	var s store
	s.seedCatalogue([]Entry{preset("Git", "g", "Green", "vcs")})
	s.addEntry(userEntry("Git", "/usr/bin/git"))

	removed, _ := s.removeEntry(preset("Git", "g", "Green", "vcs"))
	assert.True(t, removed)
	assert.Len(t, s.user, 1)
	assert.Len(t, s.all, 1)
	assert.Equal(t, "/usr/bin/git", s.all[0].Path)
}

func TestSeedCatalogueKeepsFavoritesASubset(t *testing.T) {
	var s store
	s.seedFavorites([]Entry{preset("X", "", "", ""), preset("Extra", "", "", "")})
	s.seedCatalogue([]Entry{preset("X", "", "", ""), preset("Y", "", "", "")})

	assert.Equal(t, []string{"X", "Y", "Extra"}, names(s.all))
	assert.True(t, s.all[0].IsFavorite)
	assert.False(t, s.all[1].IsFavorite)
	assert.Len(t, s.looping, 6)
}

func TestMergeUserSkipsDuplicatePaths(t *testing.T) {
	var s store
	s.addEntry(userEntry("A", "/a"))
	skipped := s.mergeUser([]Entry{userEntry("A2", "/A"), userEntry("B", "/b")})

	assert.Equal(t, []string{"/A"}, skipped)
	assert.Equal(t, []string{"A", "B"}, names(s.all))
}

func TestResolveMarkers(t *testing.T) {
	entries := []Entry{
		preset("X", "", "", ""),
		userEntry("b", "/a/b.exe"),
		userEntry("X", "/x.exe"),
	}
	markers := []Marker{
		{Name: "X", IsPreset: true},
		{Name: "b", Path: "/A/B.EXE"},
		{Name: "gone", Path: "/missing.exe"},
		{Name: "X", IsPreset: true},
	}

	resolved := resolveMarkers(entries, markers)
	require.Len(t, resolved, 2)
	assert.Equal(t, "", resolved[0].Path)
	assert.Equal(t, "/a/b.exe", resolved[1].Path)
	for _, e := range resolved {
		assert.True(t, e.IsFavorite)
	}
}

func TestReplaceFavoritesSyncsFlags(t *testing.T) {
	var s store
	s.seedFavorites([]Entry{preset("Y", "", "", "")})
	s.seedCatalogue([]Entry{preset("X", "", "", ""), preset("Y", "", "", "")})

	s.replaceFavorites([]Entry{preset("X", "", "", "")})

	assert.Equal(t, []string{"X"}, names(s.favorites))
	assert.True(t, s.all[0].IsFavorite)
	assert.False(t, s.all[1].IsFavorite)
	assert.Len(t, s.looping, 3)
}

func TestMarkersFromFavorites(t *testing.T) {
	var s store
	s.seedCatalogue([]Entry{preset("X", "", "", "")})
	u, _ := s.addEntry(userEntry("U", "/u"))
	s.toggleFavorite(preset("X", "", "", ""))
	s.toggleFavorite(u)

	assert.Equal(t, []Marker{
		{Name: "X", Path: "", IsPreset: true},
		{Name: "U", Path: "/u", IsPreset: false},
	}, s.markers())
}
