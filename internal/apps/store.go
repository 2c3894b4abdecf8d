package apps

import "toolbox/internal/constants"

// store holds the registry lists. It has no locking of its own; Service
// guards every call with its mutex.
type store struct {
	all         []Entry
	favorites   []Entry
	looping     []Entry
	collections []Collection
	user        []Entry
}

func indexOf(list []Entry, e Entry) int {
	for i := range list {
		if list[i].SameAs(e) {
			return i
		}
	}
	return -1
}

func indexOfPath(list []Entry, path string) int {
	for i := range list {
		if samePath(list[i].Path, path) {
			return i
		}
	}
	return -1
}

func cloneEntries(list []Entry) []Entry {
	if list == nil {
		return []Entry{}
	}
	return append([]Entry(nil), list...)
}

func removeAt(list []Entry, i int) []Entry {
	return append(list[:i:i], list[i+1:]...)
}

// lookupPath returns the entry registered under path.
func (s *store) lookupPath(path string) (Entry, bool) {
	if i := indexOfPath(s.all, path); i >= 0 {
		return s.all[i], true
	}
	return Entry{}, false
}

// seedFavorites installs the preset favorites and rebuilds the looping list.
func (s *store) seedFavorites(list []Entry) {
	s.favorites = make([]Entry, 0, len(list))
	for _, e := range list {
		if indexOf(s.favorites, e) >= 0 {
			continue
		}
		e.IsFavorite = true
		s.favorites = append(s.favorites, e)
	}
	s.rebuildLooping()
}

// seedCatalogue appends the preset apps to the all list. Seeded favorites
// missing from the catalogue are appended too so favorites stay a subset.
func (s *store) seedCatalogue(list []Entry) {
	for _, e := range list {
		if indexOf(s.all, e) >= 0 {
			continue
		}
		e.IsFavorite = indexOf(s.favorites, e) >= 0
		s.all = append(s.all, e)
	}
	for _, f := range s.favorites {
		if indexOf(s.all, f) < 0 {
			s.all = append(s.all, f)
		}
	}
}

func (s *store) seedCollections(list []Collection) {
	s.collections = make([]Collection, 0, len(list))
	for _, c := range list {
		s.collections = append(s.collections, c.clone())
	}
}

// mergeUser appends loaded user entries, skipping paths already present.
// It returns the paths that were skipped.
func (s *store) mergeUser(list []Entry) (skipped []string) {
	for _, e := range list {
		if indexOfPath(s.all, e.Path) >= 0 {
			skipped = append(skipped, e.Path)
			continue
		}
		e.IsFavorite = false
		s.all = append(s.all, e)
		s.user = append(s.user, e)
	}
	return skipped
}

// addEntry appends e to the all and user lists unless its path is already
// registered, in which case the registered entry is returned with false.
func (s *store) addEntry(e Entry) (Entry, bool) {
	if e.Path != "" {
		if existing, ok := s.lookupPath(e.Path); ok {
			return existing, false
		}
	}
	e.IsFavorite = false
	s.all = append(s.all, e)
	s.user = append(s.user, e)
	return e, true
}

// removeEntry drops e from every list and rebuilds the looping list. The
// user list is matched by path first, then by name for non-preset entries.
func (s *store) removeEntry(e Entry) (removed, wasFavorite bool) {
	if i := indexOf(s.all, e); i >= 0 {
		s.all = removeAt(s.all, i)
		removed = true
	}

	ui := -1
	if e.Path != "" {
		ui = indexOfPath(s.user, e.Path)
		if ui < 0 {
			for i := range s.user {
				if s.user[i].Name == e.Name {
					ui = i
					break
				}
			}
		}
	}
	if ui >= 0 {
		s.user = removeAt(s.user, ui)
		removed = true
	}

	if i := indexOf(s.favorites, e); i >= 0 {
		s.favorites = removeAt(s.favorites, i)
		wasFavorite = true
	}
	s.rebuildLooping()
	return removed, wasFavorite
}

// toggleFavorite flips the favorite flag of the registered entry matching e.
func (s *store) toggleFavorite(e Entry) (Entry, bool) {
	i := indexOf(s.all, e)
	if i < 0 {
		return Entry{}, false
	}
	fav := !s.all[i].IsFavorite
	s.all[i].IsFavorite = fav
	if u := indexOf(s.user, e); u >= 0 {
		s.user[u].IsFavorite = fav
	}

	current := s.all[i]
	fi := indexOf(s.favorites, current)
	switch {
	case fav && fi < 0:
		s.favorites = append(s.favorites, current)
	case !fav && fi >= 0:
		s.favorites = removeAt(s.favorites, fi)
	}
	s.rebuildLooping()
	return current, true
}

// replaceFavorites installs resolved as the favorites list, in its order,
// and syncs the favorite flag of every registered entry.
func (s *store) replaceFavorites(resolved []Entry) {
	s.favorites = make([]Entry, 0, len(resolved))
	for i := range s.all {
		s.all[i].IsFavorite = false
	}
	for i := range s.user {
		s.user[i].IsFavorite = indexOf(resolved, s.user[i]) >= 0
	}
	for _, r := range resolved {
		ai := indexOf(s.all, r)
		if ai < 0 || indexOf(s.favorites, r) >= 0 {
			continue
		}
		s.all[ai].IsFavorite = true
		s.favorites = append(s.favorites, s.all[ai])
	}
	s.rebuildLooping()
}

// rebuildLooping regenerates the looping list as the favorites repeated
// LoopingRepeat times.
func (s *store) rebuildLooping() {
	s.looping = make([]Entry, 0, len(s.favorites)*constants.LoopingRepeat)
	for r := 0; r < constants.LoopingRepeat; r++ {
		s.looping = append(s.looping, s.favorites...)
	}
}

func (s *store) markers() []Marker {
	out := make([]Marker, 0, len(s.favorites))
	for _, f := range s.favorites {
		out = append(out, MarkerFor(f))
	}
	return out
}

// resolveMarkers matches markers against entries: preset markers by name
// among path-less entries, the rest by path. Unmatched markers are dropped.
func resolveMarkers(entries []Entry, markers []Marker) []Entry {
	resolved := make([]Entry, 0, len(markers))
	for _, m := range markers {
		idx := -1
		if m.IsPreset || m.Path == "" {
			for i := range entries {
				if entries[i].Path == "" && entries[i].Name == m.Name {
					idx = i
					break
				}
			}
		} else {
			idx = indexOfPath(entries, m.Path)
		}
		if idx < 0 || indexOf(resolved, entries[idx]) >= 0 {
			continue
		}
		e := entries[idx]
		e.IsFavorite = true
		resolved = append(resolved, e)
	}
	return resolved
}
