package render

import "strings"

// truncationMarker is appended to right-truncated text so readers know output
// was cut rather than complete.
const truncationMarker = "\n...(truncated)"

// TruncateRight bounds s to limit characters, cutting from the right and
// appending a marker. The cut backs off to the previous line boundary when one
// exists, so the output never ends mid-line. Text already within the limit is
// returned verbatim.
func TruncateRight(s string, limit int) string {
	if limit == Unlimited || len(s) <= limit {
		return s
	}
	if limit <= len(truncationMarker) {
		return s[:limit]
	}

	cut := limit - len(truncationMarker)
	if idx := strings.LastIndexByte(s[:cut], '\n'); idx > 0 {
		cut = idx
	}
	return s[:cut] + truncationMarker
}
