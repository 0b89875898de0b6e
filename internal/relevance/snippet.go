package relevance

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Defaults for ExtractSnippets when the caller passes non-positive values.
const (
	DefaultSnippetLength = 150
	DefaultMaxSnippets   = 2
)

// ExtractSnippets returns up to maxSnippets context windows around clustered
// term occurrences in text, for result previews. Windows are prefixed or
// suffixed with "..." where they truncate the source.
//
// Occurrences of each term are found left to right, advancing past each
// match so a term never overlaps itself; overlaps between different terms
// are kept. Positions within snippetLength/2 of each other share a cluster,
// and clusters are emitted in first-found order. When the query is blank,
// tokenizes to nothing, or matches nowhere, the result is a single snippet:
// text truncated to snippetLength.
func ExtractSnippets(text, query string, snippetLength, maxSnippets int) []string {
	if snippetLength <= 0 {
		snippetLength = DefaultSnippetLength
	}
	if maxSnippets <= 0 {
		maxSnippets = DefaultMaxSnippets
	}
	if text == "" || strings.TrimSpace(query) == "" {
		return []string{truncate(text, snippetLength)}
	}
	terms := Tokenize(query)
	if len(terms) == 0 {
		return []string{truncate(text, snippetLength)}
	}

	positions := findPositions(foldForSearch(text), terms)
	if len(positions) == 0 {
		return []string{truncate(text, snippetLength)}
	}

	clusters := clusterPositions(positions, snippetLength/2)
	if len(clusters) > maxSnippets {
		clusters = clusters[:maxSnippets]
	}

	snippets := make([]string, 0, len(clusters))
	for _, cluster := range clusters {
		start := cluster[0] - snippetLength/4
		if start < 0 {
			start = 0
		}
		end := cluster[len(cluster)-1] + snippetLength/2
		if end > len(text) {
			end = len(text)
		}
		// A long chain of nearby matches must not stretch a preview past
		// its budget.
		if end-start > snippetLength {
			end = start + snippetLength
		}

		snippet := text[start:end]
		if start > 0 {
			snippet = "..." + snippet
		}
		if end < len(text) {
			snippet += "..."
		}
		snippets = append(snippets, snippet)
	}
	return snippets
}

// foldForSearch lowercases text for matching while keeping every byte offset
// valid in the original string. A rune is lowered only when its lowercase
// form encodes to the same UTF-8 width; strings.ToLower can grow or shrink
// the string (U+023A lowers from 2 to 3 bytes, U+0130 from 2 to 1), which
// would make offsets found here point past or inside the wrong runes in text.
func foldForSearch(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		if utf8.RuneLen(lower) == utf8.RuneLen(r) {
			r = lower
		}
		b.WriteRune(r)
	}
	return b.String()
}

// findPositions collects the deduplicated, ascending start offsets of every
// term occurrence in lower.
func findPositions(lower string, terms []string) []int {
	seen := make(map[int]struct{})
	var positions []int

	for _, term := range terms {
		for from := 0; ; {
			idx := strings.Index(lower[from:], term)
			if idx < 0 {
				break
			}
			pos := from + idx
			if _, dup := seen[pos]; !dup {
				seen[pos] = struct{}{}
				positions = append(positions, pos)
			}
			from = pos + len(term)
		}
	}

	sort.Ints(positions)
	return positions
}

// clusterPositions groups ascending positions into runs where consecutive
// offsets are at most maxGap apart.
func clusterPositions(positions []int, maxGap int) [][]int {
	var clusters [][]int
	current := []int{positions[0]}

	for _, pos := range positions[1:] {
		if pos-current[len(current)-1] <= maxGap {
			current = append(current, pos)
			continue
		}
		clusters = append(clusters, current)
		current = []int{pos}
	}
	return append(clusters, current)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
