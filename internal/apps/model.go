package apps

import "strings"

// Entry is one launchable application, either from the preset catalogue
// (empty Path) or added by the user.
type Entry struct {
	Name        string
	Icon        string
	Background  string
	Description string
	Path        string
	IsFavorite  bool
}

// IsPreset reports whether the entry comes from the built-in catalogue.
func (e Entry) IsPreset() bool {
	return e.Path == ""
}

// SameAs reports whether e and other refer to the same application: the same
// non-empty path compared case-insensitively, or the same name when both are
// presets.
func (e Entry) SameAs(other Entry) bool {
	if e.Path != "" || other.Path != "" {
		return samePath(e.Path, other.Path)
	}
	return e.Name == other.Name
}

func samePath(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// Marker identifies a favorite independently of the full entry.
type Marker struct {
	Name     string `json:"Name"`
	Path     string `json:"Path"`
	IsPreset bool   `json:"IsPreset"`
}

// MarkerFor builds the favorite marker persisted for e.
func MarkerFor(e Entry) Marker {
	return Marker{Name: e.Name, Path: e.Path, IsPreset: e.Path == ""}
}

// Collection is a named group of entries with fixed membership.
type Collection struct {
	Name       string
	Icon       string
	Background string
	Apps       []Entry
}

func (c Collection) clone() Collection {
	c.Apps = append([]Entry(nil), c.Apps...)
	return c
}

// AddResult reports the outcome of AddApplication. Validation failures are
// reported here and never as an error.
type AddResult struct {
	Success       bool
	Message       string
	AlreadyExists bool
	Existing      *Entry
	Added         *Entry
}

// InitResult is carried by the initialization completion event.
type InitResult struct {
	FavoriteCount   int
	AllCount        int
	CollectionCount int
	Success         bool
	Message         string
}

// EventKind distinguishes registry notifications.
type EventKind int

const (
	EventInitCompleted EventKind = iota
	EventCollectionChanged
	EventLoopingRebuilt
)

func (k EventKind) String() string {
	switch k {
	case EventInitCompleted:
		return "init-completed"
	case EventCollectionChanged:
		return "collection-changed"
	case EventLoopingRebuilt:
		return "looping-rebuilt"
	default:
		return "unknown"
	}
}

// Sequence names one of the observable lists of the registry.
type Sequence int

const (
	SeqAll Sequence = iota
	SeqFavorites
	SeqLooping
	SeqCollections
)

func (s Sequence) String() string {
	switch s {
	case SeqAll:
		return "all"
	case SeqFavorites:
		return "favorites"
	case SeqLooping:
		return "looping"
	case SeqCollections:
		return "collections"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the registry changed. Init is set
// only for EventInitCompleted.
type Event struct {
	Kind EventKind
	Seq  Sequence
	Init *InitResult
}

// Dispatcher runs fn on the thread that owns the UI bindings.
type Dispatcher interface {
	Do(fn func())
}

// DispatcherFunc adapts a function such as fyne.Do to Dispatcher.
type DispatcherFunc func(fn func())

// Do calls f(fn).
func (f DispatcherFunc) Do(fn func()) { f(fn) }
