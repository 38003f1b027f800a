package ahocorasick

import "errors"

// ErrStoreFinalized is returned when inserting into a Store after Finalize.
var ErrStoreFinalized = errors.New("ahocorasick: insert into finalized pattern store")

// Entry is a unique pattern together with every identifier that produced it.
type Entry struct {
	Pattern string
	IDs     []string
}

// Store deduplicates patterns and accumulates their source identifiers.
// Entries keep first-seen pattern order; identifiers keep insertion order and
// repeated identifiers are kept so counts reflect the input.
type Store struct {
	index     map[string]int
	entries   []Entry
	idCount   int
	finalized bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Insert appends id to the entry for pattern, creating the entry if needed.
// Empty patterns are skipped since they would match at every position.
func (s *Store) Insert(pattern, id string) error {
	if s.finalized {
		return ErrStoreFinalized
	}
	if pattern == "" {
		return nil
	}

	if idx, exists := s.index[pattern]; exists {
		s.entries[idx].IDs = append(s.entries[idx].IDs, id)
	} else {
		s.index[pattern] = len(s.entries)
		s.entries = append(s.entries, Entry{Pattern: pattern, IDs: []string{id}})
	}
	s.idCount++
	return nil
}

// Finalize closes the store and returns its entries in first-seen order.
// Calling Finalize again returns the same entries.
func (s *Store) Finalize() []Entry {
	s.finalized = true
	return s.entries
}

// Len returns the number of unique patterns.
func (s *Store) Len() int {
	return len(s.entries)
}

// IdentifierCount returns the number of identifiers inserted across all entries.
func (s *Store) IdentifierCount() int {
	return s.idCount
}

// Lookup returns the identifiers recorded for pattern.
func (s *Store) Lookup(pattern string) ([]string, bool) {
	idx, exists := s.index[pattern]
	if !exists {
		return nil, false
	}
	return s.entries[idx].IDs, true
}
