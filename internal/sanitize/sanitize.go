// Package sanitize strips markup from text submitted by backends before it
// is stored. Log actions and performer names are plain text: they are
// rendered with escaping by the timeline, but stored rows also feed the JSON
// API and CLI, so any HTML is removed at the door.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes every HTML element from input and returns plain text.
// Entities produced by the sanitizer are decoded again so quotes and
// ampersands in log lines survive ("Jane Doe" stays quoted). Runs of
// whitespace are collapsed and the result is trimmed.
func Text(input string) string {
	if input == "" {
		return ""
	}
	stripped := html.UnescapeString(getPolicy().Sanitize(input))
	return strings.Join(strings.Fields(stripped), " ")
}
