// Package library holds the in-memory review index and the ranked-search
// facade the API serves from.
package library

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shelfline/backend/internal/relevance"
	"github.com/shelfline/backend/internal/review"
)

// DefaultLimit bounds a search when the caller does not ask for one.
const DefaultLimit = 20

// Result is one ranked search hit, decorated for display.
type Result struct {
	Review    *review.Review
	Score     float64
	TitleHTML string
	Snippets  []string
}

// SearchOptions tunes one search call. Zero values mean defaults.
type SearchOptions struct {
	Limit         int
	Tag           string             // pre-filter: only reviews carrying this tag
	Status        string             // pre-filter: only reviews on this shelf
	Weights       map[string]float64 // merged over relevance.DefaultWeights
	SnippetLength int
	MaxSnippets   int
	MarkerClass   string
}

// TagCount is one entry of the tag browse page.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Library is the concurrency-safe review index.
type Library struct {
	logger *logrus.Entry

	mu      sync.RWMutex
	reviews []*review.Review
	bySlug  map[string]*review.Review
	loaded  time.Time
}

// New creates an empty library.
func New(logger *logrus.Entry) *Library {
	return &Library{
		logger: logger,
		bySlug: make(map[string]*review.Review),
	}
}

// SetReviews replaces the indexed review set atomically.
func (l *Library) SetReviews(reviews []*review.Review) {
	bySlug := make(map[string]*review.Review, len(reviews))
	for _, r := range reviews {
		bySlug[r.Slug] = r
	}

	l.mu.Lock()
	l.reviews = reviews
	l.bySlug = bySlug
	l.loaded = time.Now()
	l.mu.Unlock()
}

// Reload rescans the content directory and swaps the review set.
func (l *Library) Reload(dir string) error {
	reviews, err := review.LoadDir(dir, l.logger)
	if err != nil {
		return err
	}
	l.SetReviews(reviews)
	if l.logger != nil {
		l.logger.WithField("reviews", len(reviews)).Info("Review index loaded")
	}
	return nil
}

// Get returns the review with the given slug.
func (l *Library) Get(slug string) (*review.Review, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.bySlug[slug]
	return r, ok
}

// All returns the indexed reviews, newest first.
func (l *Library) All() []*review.Review {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*review.Review, len(l.reviews))
	copy(out, l.reviews)
	return out
}

// ByStatus returns the reviews on one shelf, newest first.
func (l *Library) ByStatus(status string) []*review.Review {
	return l.filter(func(r *review.Review) bool {
		return strings.EqualFold(r.Status, status)
	})
}

// ByTag returns the reviews carrying a tag, newest first.
func (l *Library) ByTag(tag string) []*review.Review {
	return l.filter(func(r *review.Review) bool { return r.HasTag(tag) })
}

// Tags returns every tag with its review count, most used first.
func (l *Library) Tags() []TagCount {
	l.mu.RLock()
	counts := make(map[string]int)
	for _, r := range l.reviews {
		for _, tag := range r.Tags {
			counts[strings.ToLower(tag)]++
		}
	}
	l.mu.RUnlock()

	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	return tags
}

// Statuses returns the shelf sizes.
func (l *Library) Statuses() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	counts := map[string]int{
		review.StatusRead:    0,
		review.StatusReading: 0,
		review.StatusToRead:  0,
	}
	for _, r := range l.reviews {
		counts[r.Status]++
	}
	return counts
}

// Len returns the number of indexed reviews.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reviews)
}

// LoadedAt returns the time of the last index swap.
func (l *Library) LoadedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Search ranks the indexed reviews against query and decorates the returned
// page with highlighted titles and content snippets. A blank query returns
// nil; browsing is served by the listing endpoints instead.
func (l *Library) Search(query string, opts SearchOptions) []Result {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := l.candidates(opts)

	results := make([]Result, 0, len(candidates))
	for _, r := range candidates {
		score := relevance.Score(r.Fields(), query, opts.Weights)
		if score <= 0 {
			continue
		}
		results = append(results, Result{Review: r, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Review.Date.Equal(results[j].Review.Date) {
			return results[i].Review.Date.After(results[j].Review.Date)
		}
		return results[i].Review.Slug < results[j].Review.Slug
	})

	if len(results) > limit {
		results = results[:limit]
	}

	// Decorate only the returned page; highlighting the losers is wasted work.
	for i := range results {
		r := results[i].Review
		results[i].TitleHTML = relevance.Highlight(r.Title, query, opts.MarkerClass)
		results[i].Snippets = relevance.ExtractSnippets(r.Content, query, opts.SnippetLength, opts.MaxSnippets)
	}
	return results
}

func (l *Library) candidates(opts SearchOptions) []*review.Review {
	return l.filter(func(r *review.Review) bool {
		if opts.Tag != "" && !r.HasTag(opts.Tag) {
			return false
		}
		if opts.Status != "" && !strings.EqualFold(r.Status, opts.Status) {
			return false
		}
		return true
	})
}

func (l *Library) filter(keep func(*review.Review) bool) []*review.Review {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*review.Review
	for _, r := range l.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
