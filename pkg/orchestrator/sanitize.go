package orchestrator

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user-entered strings before they enter a record payload.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(string) string
}

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// maxEntityPasses bounds how many layers of entity encoding are peeled off
// before the policy runs.
const maxEntityPasses = 4

// markupStripper removes every HTML element and keeps plain text. Entity
// encoded markup is decoded before the policy sees it, so "&lt;b&gt;" is
// stripped like "<b>". The only entities left after the policy are the ones
// it introduced, and those are decoded back to text.
type markupStripper struct {
	policy *bluemonday.Policy
}

func (m markupStripper) Sanitize(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	decoded := decodeEntities(raw)
	return html.UnescapeString(m.policy.Sanitize(decoded))
}

func decodeEntities(raw string) string {
	for i := 0; i < maxEntityPasses; i++ {
		next := html.UnescapeString(raw)
		if next == raw {
			break
		}
		raw = next
	}
	return raw
}

// DefaultSanitizer returns the strict, markup-stripping sanitizer used when no
// WithSanitizer option is supplied.
func DefaultSanitizer() Sanitizer {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return markupStripper{policy: valuePolicy}
}
