// Package apps holds the application registry of the toolbox: the preset
// catalogue, user-added entries, favorites and collections, together with
// the JSON files that persist user entries and favorite markers.
//
// A Service is built once by the composition root. Initialization runs on a
// background goroutine; favorites restored from disk are handed to the UI
// thread through a Dispatcher, or parked until CompletePendingRestore is
// called when no dispatcher is attached yet.
package apps
