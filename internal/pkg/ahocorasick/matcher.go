// Package ahocorasick provides an implementation of the Aho-Corasick string matching algorithm.
// The Aho-Corasick algorithm allows matching multiple patterns simultaneously against an input
// string in O(n + z) time after construction, where n is the input length and z is the number
// of matches, independent of how many patterns were loaded or how long they are.
//
// This implementation is designed for scanning protein sequences against large peptide sets:
// a Store collapses duplicate peptides onto one entry carrying every source identifier, a
// Builder turns the entries into an immutable Automaton, and the Automaton (or its compiled
// DenseAutomaton form) reports every occurrence, overlapping ones included.
package ahocorasick

import "iter"

// Match represents a single occurrence of a pattern in a scanned text.
type Match struct {
	// End is the 0-based offset of the last symbol of the match.
	End int

	// Length is the length of the matched pattern.
	Length int

	// PatternIndex is the index of the pattern in automaton order.
	PatternIndex int

	// Pattern is the matched pattern text.
	Pattern string

	// IDs are the source identifiers attached to the pattern, in insertion order.
	// The slice is shared with the automaton and must not be modified.
	IDs []string
}

// Start returns the 0-based offset of the first symbol of the match.
func (m Match) Start() int {
	return m.End - m.Length + 1
}

// Start1 returns the 1-based inclusive start position used in reports.
func (m Match) Start1() int {
	return m.End - m.Length + 2
}

// End1 returns the 1-based inclusive end position used in reports.
func (m Match) End1() int {
	return m.End + 1
}

// Scanner is the interface for pattern matching implementations.
// Both the sparse Automaton and the DenseAutomaton satisfy this interface
// and produce identical match sequences for the same input.
type Scanner interface {
	// Scan returns a lazy sequence of matches in text, ordered by end offset.
	// Matches ending at the same offset are ordered longest pattern first.
	// Stopping iteration early leaves the scanner untouched.
	Scan(text []byte) iter.Seq[Match]

	// FindAll collects every match in text.
	FindAll(text []byte) []Match

	// PatternCount returns the number of unique patterns in the scanner.
	PatternCount() int
}

// collect drains a match sequence into a slice.
func collect(seq iter.Seq[Match]) []Match {
	var results []Match
	for m := range seq {
		results = append(results, m)
	}
	return results
}
