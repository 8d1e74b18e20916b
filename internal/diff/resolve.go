package diff

import "strings"

// splitPathSegments breaks a request path into its non-empty segments, e.g.
// "/todos/123" -> ["todos", "123"].
func splitPathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
