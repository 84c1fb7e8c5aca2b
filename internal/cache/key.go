package cache

import "strings"

// Key builds the cache key for a screen's list, e.g. Key("subtopic", id).
// Empty scope parts are skipped.
func Key(screen string, scope ...string) string {
	parts := make([]string, 0, len(scope)+1)
	parts = append(parts, strings.ToLower(strings.TrimSpace(screen)))
	for _, s := range scope {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}
