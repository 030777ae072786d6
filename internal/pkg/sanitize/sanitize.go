package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// Policy cleans user-supplied rich text before it is persisted.
// Report bodies and comments arrive as HTML from the editor, so
// everything outside a small allowlist (script, iframe, style,
// on* handlers) has to go.
type Policy struct {
	policy *bluemonday.Policy
}

// NewPolicy builds the allowlist policy for editor output
func NewPolicy() *Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "h2", "h3",
		"ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "u", "s",
	)

	// Links open in a new tab and never leak the referrer
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	return &Policy{policy: p}
}

// HTML returns the sanitized form of raw. Idempotent; empty in, empty out.
func (s *Policy) HTML(raw string) string {
	return s.policy.Sanitize(raw)
}
