// Package relevance implements the search core of the review site: query
// tokenization, field-weighted scoring, match highlighting, and snippet
// extraction. Everything here is a pure function of its arguments, so
// concurrent search requests need no coordination.
package relevance

import "strings"

// Tokenize splits a raw query into normalized search terms: trimmed,
// lowercased, whitespace-delimited, empties dropped. Returns nil when the
// query is blank.
func Tokenize(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return strings.Fields(strings.ToLower(query))
}
