// Package text cleans user-submitted article and comment bodies and
// derives plain-text excerpts for list views.
package text

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup that is unsafe to render back to readers.
// It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer allows the user-generated-content set of tags (p, a, em,
// strong, lists, code...). Links get rel="nofollow" and open in a new tab.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns html with disallowed elements and attributes removed
// and surrounding whitespace trimmed. Text is entity-escaped, and feeding
// the output back in returns it unchanged.
func (s *Sanitizer) Sanitize(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
