// Package htmlsanitize cleans organisation, country and variable names that
// come from upstream data before they are embedded in chart hover templates
// or exported SVG, both of which are rendered as markup.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element; text content is kept and HTML-escaped.
var strict = bluemonday.StrictPolicy()

// Label returns s with all markup removed and the remaining text escaped,
// safe to place inside a hover template or an SVG text node.
func Label(s string) string {
	if !strings.ContainsAny(s, "<>&\"'") {
		return s
	}
	return strict.Sanitize(s)
}
