// Package analytics records search behavior behind an injectable Store so
// the "popular queries" and "popular tags" pages have data to show. The
// store is a capability handed to the API server, never package state, which
// keeps scoring and rendering pure and testable without a backend.
package analytics

import (
	"context"
	"strings"
)

// Filter kinds recorded alongside searches.
const (
	FilterTag    = "tag"
	FilterStatus = "status"
)

// AnonymousSession is used when a caller supplies no session identifier.
const AnonymousSession = "anonymous"

// Entry is one counted value in a popularity report.
type Entry struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Store records queries and filter selections keyed by session, and reports
// the most frequent ones.
type Store interface {
	RecordSearch(ctx context.Context, session, query string, results int) error
	RecordFilter(ctx context.Context, session, kind, value string) error
	TopQueries(ctx context.Context, n int) ([]Entry, error)
	TopFilters(ctx context.Context, kind string, n int) ([]Entry, error)
	Close() error
}

// normalize folds a recorded value so "Dune " and "dune" count together.
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
