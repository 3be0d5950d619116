// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied text before it is
// persisted. Check-in notes, affirmations, chat messages and goal request
// text all pass through here; the mobile clients render these strings
// verbatim, so stored documents must never contain HTML.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
