package hub

import "strings"

// PulpIDFromHref extracts the trailing UUID from a pulp href such as
// "/pulp/api/v3/repositories/ansible/ansible/<uuid>/". Returns "" when the
// href has no path segments.
func PulpIDFromHref(href string) string {
	trimmed := strings.Trim(href, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
