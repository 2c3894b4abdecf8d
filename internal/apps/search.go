package apps

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Search returns the registered entries matching query. See Filter.
func (s *Service) Search(query string) []Entry {
	return Filter(s.AllEntries(), query)
}

// Filter returns the entries whose name or description contains query,
// ignoring case. A query with glob metacharacters is matched against the
// whole lower-cased name instead, e.g. "vs*" or "*code". An empty query
// matches everything.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(entries))
	if q == "" {
		return append(out, entries...)
	}

	glob := strings.ContainsAny(q, "*?[{") && doublestar.ValidatePattern(q)
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if glob {
			if ok, err := doublestar.Match(q, name); err == nil && ok {
				out = append(out, e)
			}
			continue
		}
		if strings.Contains(name, q) || strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}
