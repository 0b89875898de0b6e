package relevance

import (
	"regexp"
	"strings"
)

// DefaultMarkerClass is the CSS class applied to highlight spans when the
// caller does not supply one.
const DefaultMarkerClass = "search-highlight"

// Highlight wraps every query-term match in text with a <mark> span carrying
// markerClass, preserving the original casing of the matched substring.
//
// The match pattern anchors a word boundary on the left edge only: "cat"
// highlights the prefix of "catalog" but leaves "bobcat" alone. Returns text
// unchanged for a blank query or empty text.
func Highlight(text, query, markerClass string) string {
	if text == "" || strings.TrimSpace(query) == "" {
		return text
	}
	terms := Tokenize(query)
	if len(terms) == 0 {
		return text
	}
	if markerClass == "" {
		markerClass = DefaultMarkerClass
	}

	escaped := make([]string, len(terms))
	for i, term := range terms {
		escaped[i] = regexp.QuoteMeta(term)
	}
	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)`)

	// The class is caller input; a literal "$" in it must not act as a
	// capture reference in the replacement template.
	class := strings.ReplaceAll(markerClass, "$", "$$")
	return pattern.ReplaceAllString(text, `<mark class="`+class+`">$1</mark>`)
}
