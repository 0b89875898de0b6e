package relevance

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultWeights maps review fields to their relevance multipliers. Fields
// not listed here score with weight 1.
var DefaultWeights = map[string]float64{
	"title":   10,
	"author":  8,
	"excerpt": 5,
	"genre":   5,
	"content": 2,
}

// Score computes the relevance of one record's fields against a query.
//
// Per (field, term) pair:
//   - field contains the whole query as a phrase: +2w
//   - term matches at a word boundary: +1.5w, plain substring: +1w
//   - field starts with the term: a further +0.5w
//
// The phrase bonus sits inside the term loop on purpose: a three-term query
// that matches as a phrase collects it three times. Scores are comparable
// only within one result set; higher is more relevant.
//
// overrides is merged over DefaultWeights per key and may be nil. A blank
// query scores 0.
func Score(fields map[string]string, query string, overrides map[string]float64) float64 {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return 0
	}
	phrase := strings.Join(terms, " ")

	boundary := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		boundary[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}

	// Sorted field order keeps float accumulation reproducible.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var total float64
	for _, name := range names {
		value := fields[name]
		if value == "" {
			continue
		}
		weight := fieldWeight(name, overrides)
		lower := strings.ToLower(value)

		for i, term := range terms {
			if strings.Contains(lower, phrase) {
				total += weight * 2
			}
			if !strings.Contains(lower, term) {
				continue
			}
			if boundary[i].MatchString(lower) {
				total += weight * 1.5
			} else {
				total += weight
			}
			if strings.HasPrefix(lower, term) {
				total += weight * 0.5
			}
		}
	}
	return total
}

func fieldWeight(name string, overrides map[string]float64) float64 {
	if w, ok := overrides[name]; ok {
		return w
	}
	if w, ok := DefaultWeights[name]; ok {
		return w
	}
	return 1
}
