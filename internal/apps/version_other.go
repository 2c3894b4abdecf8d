//go:build !windows

package apps

// fileDescription has no version resource to read outside Windows.
func fileDescription(path string) string {
	return ""
}
