package analytics

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the default Store: process-local counters, lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	queries  map[string]int64
	filters  map[string]map[string]int64 // kind -> value -> count
	sessions map[string]struct{}
}

// NewMemoryStore creates an empty in-memory analytics store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		queries:  make(map[string]int64),
		filters:  make(map[string]map[string]int64),
		sessions: make(map[string]struct{}),
	}
}

// RecordSearch counts one search. Blank queries are ignored.
func (m *MemoryStore) RecordSearch(_ context.Context, session, query string, _ int) error {
	query = normalize(query)
	if query == "" {
		return nil
	}

	m.mu.Lock()
	m.queries[query]++
	m.trackSession(session)
	m.mu.Unlock()
	return nil
}

// RecordFilter counts one filter selection. Blank values are ignored.
func (m *MemoryStore) RecordFilter(_ context.Context, session, kind, value string) error {
	value = normalize(value)
	if kind == "" || value == "" {
		return nil
	}

	m.mu.Lock()
	if m.filters[kind] == nil {
		m.filters[kind] = make(map[string]int64)
	}
	m.filters[kind][value]++
	m.trackSession(session)
	m.mu.Unlock()
	return nil
}

// TopQueries returns the n most frequent queries, count descending.
func (m *MemoryStore) TopQueries(_ context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return topEntries(m.queries, n), nil
}

// TopFilters returns the n most frequent values recorded for a filter kind.
func (m *MemoryStore) TopFilters(_ context.Context, kind string, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return topEntries(m.filters[kind], n), nil
}

// Sessions returns how many distinct sessions have been seen.
func (m *MemoryStore) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) trackSession(session string) {
	if session == "" {
		session = AnonymousSession
	}
	m.sessions[session] = struct{}{}
}

func topEntries(counts map[string]int64, n int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, Entry{Value: value, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
