package backend

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from user input with a strict text-only policy.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer backed by bluemonday's strict policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize removes tags from value. Entity-encoded markup is decoded first so
// the policy sees it as markup; the result is the policy's escaped text.
func (s *Sanitizer) Sanitize(value string) string {
	return s.policy.Sanitize(html.UnescapeString(value))
}
